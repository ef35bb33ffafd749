package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Config holds the run event settings. Publishing is disabled when no broker is set.
type Config struct {
	// Brokers is a comma separated list of kafka brokers.
	Brokers []string `mapstructure:"brokers" default:""`
	// Topic receives one message per successful run.
	Topic string `mapstructure:"topic" default:"auction-snapshots"`
	// MaxAttempts bounds delivery attempts of a message.
	MaxAttempts int `mapstructure:"max_attempts" default:"3"`
}

// Enabled reports whether run events should be published.
func (c Config) Enabled() bool {
	return len(c.Brokers) > 0 && c.Topic != ""
}

// RunEvent announces that a new aggregated snapshot is available.
type RunEvent struct {
	RunID      string    `json:"run_id"`
	Records    int       `json:"records"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// Publisher delivers run events.
type Publisher interface {
	Publish(ctx context.Context, event RunEvent) error
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher publishes run events to a kafka topic keyed by run id.
type KafkaPublisher struct {
	writer messageWriter
	topic  string
	logger *zap.Logger
}

// NewKafkaPublisher creates a publisher for cfg. Connections are opened lazily on first publish.
func NewKafkaPublisher(cfg Config, logger *zap.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		RequiredAcks:           kafka.RequireOne,
		MaxAttempts:            cfg.MaxAttempts,
	}
	return &KafkaPublisher{writer: writer, topic: cfg.Topic, logger: logger}
}

// Publish sends one run event.
func (p *KafkaPublisher) Publish(ctx context.Context, event RunEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal run event: %w", err)
	}

	if err := p.writer.WriteMessages(ctx, kafka.Message{Key: []byte(event.RunID), Value: data}); err != nil {
		return fmt.Errorf("failed to publish run event to %s: %w", p.topic, err)
	}

	p.logger.Debug("Run event published", zap.String("topic", p.topic), zap.String("run_id", event.RunID))
	return nil
}

// Close flushes and closes the underlying writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// Nop discards every event.
type Nop struct{}

// Publish does nothing.
func (Nop) Publish(context.Context, RunEvent) error { return nil }

// Close does nothing.
func (Nop) Close() error { return nil }

// New returns a KafkaPublisher when cfg is enabled and Nop otherwise.
func New(cfg Config, logger *zap.Logger) Publisher {
	if !cfg.Enabled() {
		return Nop{}
	}
	return NewKafkaPublisher(cfg, logger)
}
