// Package publisher emits feed activity to Kafka so every dashboard instance sees it.
package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"example.com/dashboard/internal/auth"
	"example.com/dashboard/internal/domain"
	"example.com/dashboard/internal/events"
)

type messageWriter interface {
	WriteMessages(context.Context, string, ...kafka.Message) error
}

type schemaRegistrar interface {
	EnsureSchema(context.Context, string, string) (int, error)
}

// Publisher implements dashboard.ActivityRecorder on top of Kafka.
type Publisher struct {
	producer messageWriter
	registry schemaRegistrar
	topic    string
	subject  string

	mu       sync.Mutex
	schemaID int
	resolved bool
}

// NewPublisher constructs a Publisher. A nil registry frames every message with schema id 0.
func NewPublisher(producer messageWriter, registry schemaRegistrar, topic string) *Publisher {
	return &Publisher{
		producer: producer,
		registry: registry,
		topic:    topic,
		subject:  topic + "-value",
	}
}

// Record publishes record as an ActivityRecorded event. The tenant is taken from the
// caller's claims when present.
func (p *Publisher) Record(ctx context.Context, record domain.ActivityRecord) error {
	tenantID := ""
	if claims, ok := auth.FromContext(ctx); ok {
		tenantID = claims.TenantID
	}

	payload, err := json.Marshal(events.FromRecord(tenantID, record))
	if err != nil {
		return err
	}

	schemaID, err := p.resolveSchema(ctx)
	if err != nil {
		failedCounter.Inc()
		return fmt.Errorf("resolve schema: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(tenantID),
		Value: events.EncodeWireFormat(schemaID, payload),
		Time:  time.Now().UTC(),
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(events.ActivityRecordedType)},
			{Key: "tenant_id", Value: []byte(tenantID)},
			{Key: "schema_subject", Value: []byte(p.subject)},
		},
	}
	if err := p.producer.WriteMessages(ctx, p.topic, msg); err != nil {
		failedCounter.Inc()
		return err
	}
	publishedCounter.Inc()
	return nil
}

func (p *Publisher) resolveSchema(ctx context.Context) (int, error) {
	if p.registry == nil {
		return 0, nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.resolved {
		return p.schemaID, nil
	}
	id, err := p.registry.EnsureSchema(ctx, p.subject, events.ActivityRecordedSchema)
	if err != nil {
		return 0, err
	}
	p.schemaID, p.resolved = id, true
	return id, nil
}
