package natsbus

import (
	"fmt"
	"time"

	"github.com/rfgrid/rfbus/internal/runtime/busmetrics"
	"github.com/rfgrid/rfbus/internal/runtime/config"
	"github.com/rfgrid/rfbus/internal/runtime/envelope"
	"github.com/rfgrid/rfbus/internal/runtime/logging"
	"github.com/rfgrid/rfbus/internal/runtime/record"
)

// Producer publishes raw bytes or metadata records over one
// exclusively-owned connection.
type Producer struct {
	conn    *Conn
	cfg     config.Config
	logger  logging.Logger
	metrics busmetrics.Metrics
}

// NewProducer builds a Producer around a fresh connection. Nil logger and
// metrics fall back to no-op implementations.
func NewProducer(cfg config.Config, logger logging.Logger, metrics busmetrics.Metrics) *Producer {
	if logger == nil {
		logger = logging.Nop()
	}
	if metrics == nil {
		metrics = busmetrics.Nop()
	}
	return &Producer{
		conn:    NewConn(cfg, logger),
		cfg:     cfg.WithDefaults(),
		logger:  logger,
		metrics: metrics,
	}
}

// Connect establishes the underlying connection. Transport failures are
// fatal and propagate.
func (p *Producer) Connect() error {
	if err := p.conn.Connect(); err != nil {
		p.logger.Error("NATS connection failed", err, logging.LogFields{"servers": p.cfg.Servers})
		return err
	}
	p.logger.Info("connected to NATS", logging.LogFields{"servers": p.cfg.Servers})
	return nil
}

// PublishRaw forwards bytes to the transport under subject. Success is
// fire-and-forget from the caller's perspective. Calling before a successful
// Connect is a programming error and fails with ErrNotConnected.
func (p *Producer) PublishRaw(subject string, data []byte) error {
	js, err := p.conn.JetStream()
	if err != nil {
		return err
	}

	start := time.Now()
	if _, err := js.Publish(subject, data); err != nil {
		p.metrics.IncPublishError(subject)
		p.logger.Error("publish failed", err, logging.LogFields{"subject": subject})
		return fmt.Errorf("publishing to %s: %w", subject, err)
	}

	p.metrics.IncPublished(subject)
	p.metrics.ObservePublishLatency(subject, time.Since(start))
	return nil
}

// PublishMetadata wraps the record in a fresh envelope, serializes it to
// JSON, and publishes it on the producer's configured subject.
func (p *Producer) PublishMetadata(r record.MetadataRecord) error {
	env := envelope.FromRecord(r)
	data, err := env.Encode()
	if err != nil {
		return fmt.Errorf("encoding envelope: %w", err)
	}

	p.logger.Debug("publishing metadata record", logging.LogFields{
		"subject":    p.cfg.Subject,
		"message_id": env.MessageID,
		"source":     env.SourcePath,
	})
	return p.PublishRaw(p.cfg.Subject, data)
}

// Close idempotently tears down the connection.
func (p *Producer) Close() {
	p.conn.Close()
	p.logger.Info("NATS producer connection closed", nil)
}
