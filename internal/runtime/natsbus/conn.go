// Package natsbus owns the NATS connection lifecycle and the consumer and
// producer built on top of it. The broker itself (stream provisioning,
// retention, durable-consumer administration) is treated as a black box.
package natsbus

import (
	"fmt"
	"strings"
	"sync"

	"github.com/nats-io/nats.go"

	"github.com/rfgrid/rfbus/internal/runtime/config"
	rferrors "github.com/rfgrid/rfbus/internal/runtime/errors"
	"github.com/rfgrid/rfbus/internal/runtime/logging"
)

// State tracks the connection lifecycle. Closed is terminal: a closed Conn is
// not reusable, callers construct a new one to reconnect.
type State int

const (
	StateDisconnected State = iota
	StateConnected
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnected:
		return "connected"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// connectFn and jetStreamNew are swapped out in tests to avoid a live NATS
// server.
var (
	connectFn = func(url string, opts ...nats.Option) (*nats.Conn, error) {
		return nats.Connect(url, opts...)
	}
	jetStreamNew = func(nc *nats.Conn) (nats.JetStreamContext, error) {
		return nc.JetStream()
	}
)

// Conn manages one broker connection and, when required, a JetStream context
// derived from it. A Conn is exclusively owned by the Consumer or Producer
// that created it.
type Conn struct {
	cfg    config.Config
	logger logging.Logger

	mu    sync.Mutex
	state State
	nc    *nats.Conn
	js    nats.JetStreamContext
}

// NewConn returns a Conn in the Disconnected state. A nil logger is replaced
// by a no-op logger.
func NewConn(cfg config.Config, logger logging.Logger) *Conn {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Conn{cfg: cfg.WithDefaults(), logger: logger}
}

// Connect establishes the broker connection. On transport failure the Conn
// stays Disconnected and the error propagates: retry policy belongs to the
// caller. Connecting an already-connected Conn is a no-op; a closed Conn
// cannot be reconnected.
func (c *Conn) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case StateConnected:
		return nil
	case StateClosed:
		return rferrors.ErrConnClosed
	}

	nc, err := connectFn(strings.Join(c.cfg.Servers, ","), c.options()...)
	if err != nil {
		return fmt.Errorf("connecting to NATS: %w", err)
	}

	c.nc = nc
	c.state = StateConnected
	return nil
}

// JetStream lazily derives the persistent-stream context from the live
// connection. It has no lifecycle of its own.
func (c *Conn) JetStream() (nats.JetStreamContext, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateConnected {
		return nil, rferrors.ErrNotConnected
	}
	if c.js == nil {
		js, err := jetStreamNew(c.nc)
		if err != nil {
			return nil, fmt.Errorf("deriving JetStream context: %w", err)
		}
		c.js = js
	}
	return c.js, nil
}

// Core returns the live core connection.
func (c *Conn) Core() (*nats.Conn, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateConnected {
		return nil, rferrors.ErrNotConnected
	}
	return c.nc, nil
}

// Close tears the connection down. Safe to call on an already-closed or
// never-connected Conn.
func (c *Conn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateClosed {
		return
	}
	if c.nc != nil {
		c.nc.Close()
	}
	c.nc = nil
	c.js = nil
	c.state = StateClosed
}

// State returns the current lifecycle state.
func (c *Conn) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Conn) options() []nats.Option {
	var opts []nats.Option
	if c.cfg.Name != "" {
		opts = append(opts, nats.Name(c.cfg.Name))
	}
	if c.cfg.Username != "" {
		opts = append(opts, nats.UserInfo(c.cfg.Username, c.cfg.Password))
	}
	if c.cfg.Token != "" {
		opts = append(opts, nats.Token(c.cfg.Token))
	}
	return opts
}
