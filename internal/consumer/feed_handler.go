package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"example.com/dashboard/internal/events"
	"example.com/dashboard/internal/feed"
)

// FeedHandler turns ActivityRecorded events into feed records. Other event types are ignored.
type FeedHandler struct {
	sink feed.Sink
}

// NewFeedHandler constructs a handler delivering to sink.
func NewFeedHandler(sink feed.Sink) *FeedHandler {
	return &FeedHandler{sink: sink}
}

// Handle implements Handler. A payload that cannot be converted leaves the feed untouched.
func (h *FeedHandler) Handle(_ context.Context, msg Message) error {
	if msg.EventType != events.ActivityRecordedType {
		return nil
	}

	var evt events.ActivityRecorded
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		return fmt.Errorf("decode activity: %w", err)
	}
	record, err := evt.Record()
	if err != nil {
		return err
	}
	if record.OccurredAt.IsZero() {
		record.OccurredAt = msg.Timestamp
	}

	h.sink.OnNewActivity(record)
	return nil
}
