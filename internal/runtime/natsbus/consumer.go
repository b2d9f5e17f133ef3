package natsbus

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/rfgrid/rfbus/internal/runtime/busmetrics"
	"github.com/rfgrid/rfbus/internal/runtime/config"
	rferrors "github.com/rfgrid/rfbus/internal/runtime/errors"
	"github.com/rfgrid/rfbus/internal/runtime/logging"
)

// Handler processes one pushed message. Returning an error marks the message
// as failed; the failure is logged and never terminates the subscription.
type Handler func(msg *ReceivedMessage) error

// FetchFunc performs one bounded-time pull against a durable subscription.
// A timeout with no message available returns (nil, nil): an expected,
// non-exceptional outcome. Genuine transport failures are returned so callers
// can tell a quiet subject from a broken subscription. A non-positive timeout
// falls back to the configured default.
type FetchFunc func(timeout time.Duration) (*ReceivedMessage, error)

// pullFetcher is the slice of *nats.Subscription the fetch path needs; tests
// substitute their own implementation.
type pullFetcher interface {
	Fetch(batch int, opts ...nats.PullOpt) ([]*nats.Msg, error)
}

// Consumer receives messages over one exclusively-owned connection, through
// durable pull-subscriptions or push-style core subscriptions.
type Consumer struct {
	conn    *Conn
	cfg     config.Config
	logger  logging.Logger
	metrics busmetrics.Metrics

	mu   sync.Mutex
	subs []*nats.Subscription
}

// NewConsumer builds a Consumer around a fresh connection. Nil logger and
// metrics fall back to no-op implementations.
func NewConsumer(cfg config.Config, logger logging.Logger, metrics busmetrics.Metrics) *Consumer {
	if logger == nil {
		logger = logging.Nop()
	}
	if metrics == nil {
		metrics = busmetrics.Nop()
	}
	return &Consumer{
		conn:    NewConn(cfg, logger),
		cfg:     cfg.WithDefaults(),
		logger:  logger,
		metrics: metrics,
	}
}

// Connect establishes the underlying connection. Transport failures are
// fatal and propagate.
func (c *Consumer) Connect() error {
	if err := c.conn.Connect(); err != nil {
		c.logger.Error("NATS connection failed", err, logging.LogFields{"servers": c.cfg.Servers})
		return err
	}
	c.logger.Info("connected to NATS", logging.LogFields{"servers": c.cfg.Servers})
	return nil
}

// JetStreamSubscribe binds a durable pull-subscription against an existing
// stream and returns the fetch function for it. Stream and consumer
// provisioning is the broker's concern; this only binds.
func (c *Consumer) JetStreamSubscribe(stream, subject, durable string) (FetchFunc, error) {
	if subject == "" {
		return nil, rferrors.ErrSubjectRequired
	}
	js, err := c.conn.JetStream()
	if err != nil {
		return nil, err
	}

	sub, err := js.PullSubscribe(subject, durable, nats.BindStream(stream))
	if err != nil {
		c.logger.Error("pull subscription failed", err, logging.LogFields{
			"stream":  stream,
			"subject": subject,
			"durable": durable,
		})
		return nil, fmt.Errorf("binding pull subscription: %w", err)
	}

	c.mu.Lock()
	c.subs = append(c.subs, sub)
	c.mu.Unlock()

	c.logger.Info("subscribed to stream", logging.LogFields{
		"stream":  stream,
		"subject": subject,
		"durable": durable,
	})

	return c.fetchFunc(sub, subject), nil
}

func (c *Consumer) fetchFunc(sub pullFetcher, subject string) FetchFunc {
	return func(timeout time.Duration) (*ReceivedMessage, error) {
		if timeout <= 0 {
			timeout = c.cfg.FetchTimeout
		}

		msgs, err := sub.Fetch(1, nats.MaxWait(timeout))
		if err != nil {
			if errors.Is(err, nats.ErrTimeout) || errors.Is(err, context.DeadlineExceeded) {
				c.metrics.IncFetchTimeout(subject)
				return nil, nil
			}
			c.metrics.IncFetchError(subject)
			c.logger.Error("NATS fetch error", err, logging.LogFields{"subject": subject})
			return nil, fmt.Errorf("fetching message: %w", err)
		}
		if len(msgs) == 0 {
			c.metrics.IncFetchTimeout(subject)
			return nil, nil
		}

		c.metrics.IncFetched(subject)
		return NewReceivedMessage(msgs[0].Data, c.ackFunc(msgs[0], subject)), nil
	}
}

// ackFunc closes over the in-flight transport message. Acknowledgement
// failures are logged and swallowed so they never escape the consumer loop.
func (c *Consumer) ackFunc(msg *nats.Msg, subject string) AckFunc {
	return func() {
		if err := msg.Ack(); err != nil {
			c.metrics.IncAckError(subject)
			c.logger.Error("failed to ack message", err, logging.LogFields{"subject": subject})
			return
		}
		c.metrics.IncAcked(subject)
	}
}

// CoreSubscribe registers a push-style handler invoked once per inbound
// message on subject for the lifetime of the subscription. Push delivery has
// no per-message acknowledgement, so handlers get a no-op ack.
func (c *Consumer) CoreSubscribe(subject string, handler Handler) error {
	if subject == "" {
		return rferrors.ErrSubjectRequired
	}
	if handler == nil {
		return rferrors.ErrHandlerRequired
	}
	nc, err := c.conn.Core()
	if err != nil {
		return err
	}

	sub, err := nc.Subscribe(subject, func(m *nats.Msg) {
		c.dispatch(subject, NewReceivedMessage(m.Data, nil), handler)
	})
	if err != nil {
		c.logger.Error("core subscription failed", err, logging.LogFields{"subject": subject})
		return fmt.Errorf("subscribing to %s: %w", subject, err)
	}

	c.mu.Lock()
	c.subs = append(c.subs, sub)
	c.mu.Unlock()

	c.logger.Info("subscribed to subject", logging.LogFields{"subject": subject})
	return nil
}

// dispatch invokes handler with per-message isolation: an error return or a
// panic is logged and absorbed so delivery of subsequent messages is never
// affected.
func (c *Consumer) dispatch(subject string, msg *ReceivedMessage, handler Handler) {
	defer func() {
		if r := recover(); r != nil {
			c.metrics.IncHandlerError(subject)
			c.logger.Error("message handler panicked", fmt.Errorf("%v", r), logging.LogFields{"subject": subject})
		}
	}()

	if err := handler(msg); err != nil {
		c.metrics.IncHandlerError(subject)
		c.logger.Error("message handler failed", err, logging.LogFields{"subject": subject})
	}
}

// Close idempotently drains the subscriptions and tears down the connection.
func (c *Consumer) Close() {
	c.mu.Lock()
	for _, sub := range c.subs {
		if err := sub.Unsubscribe(); err != nil {
			c.logger.Warning("failed to unsubscribe", logging.LogFields{"error": err.Error()})
		}
	}
	c.subs = nil
	c.mu.Unlock()

	c.conn.Close()
	c.logger.Info("NATS consumer connection closed", nil)
}
