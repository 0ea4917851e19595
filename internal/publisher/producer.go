package publisher

import (
	"context"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// DefaultBatchTimeout bounds how long a quick action waits for its single-message batch to flush.
const DefaultBatchTimeout = 10 * time.Millisecond

// ProducerOption configures optional behaviour for the KafkaProducer.
type ProducerOption func(*KafkaProducer)

// WithProducerLogger routes writer errors and writer lifecycle logs to logger.
func WithProducerLogger(logger *zap.Logger) ProducerOption {
	return func(p *KafkaProducer) {
		p.logger = logger
	}
}

// WithBatchTimeout overrides DefaultBatchTimeout.
func WithBatchTimeout(d time.Duration) ProducerOption {
	return func(p *KafkaProducer) {
		p.batchTimeout = d
	}
}

// KafkaProducer keeps one synchronous writer per activity topic, created on first use.
type KafkaProducer struct {
	brokers      []string
	batchTimeout time.Duration
	logger       *zap.Logger

	mu      sync.Mutex
	writers map[string]*kafka.Writer
}

// NewKafkaProducer creates a KafkaProducer.
func NewKafkaProducer(brokers []string, opts ...ProducerOption) *KafkaProducer {
	p := &KafkaProducer{
		brokers:      brokers,
		batchTimeout: DefaultBatchTimeout,
		logger:       zap.NewNop(),
		writers:      make(map[string]*kafka.Writer),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// WriteMessages writes msgs to topic and blocks until the brokers acknowledge them.
func (p *KafkaProducer) WriteMessages(ctx context.Context, topic string, msgs ...kafka.Message) error {
	return p.writerForTopic(topic).WriteMessages(ctx, msgs...)
}

func (p *KafkaProducer) writerForTopic(topic string) *kafka.Writer {
	p.mu.Lock()
	defer p.mu.Unlock()

	if writer, ok := p.writers[topic]; ok {
		return writer
	}

	// Records keyed by tenant land on one partition, keeping a tenant's feed in order.
	writer := &kafka.Writer{
		Addr:         kafka.TCP(p.brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Compression:  kafka.Snappy,
		BatchSize:    1,
		BatchTimeout: p.batchTimeout,
		ErrorLogger:  kafka.LoggerFunc(p.logger.Sugar().Warnf),
	}
	p.writers[topic] = writer
	p.logger.Debug("kafka writer created", zap.String("topic", topic), zap.Strings("brokers", p.brokers))
	return writer
}

// Close flushes and releases all writers.
func (p *KafkaProducer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var firstErr error
	for topic, writer := range p.writers {
		if err := writer.Close(); err != nil {
			p.logger.Warn("kafka writer close failed", zap.String("topic", topic), zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		}
		delete(p.writers, topic)
	}
	return firstErr
}
