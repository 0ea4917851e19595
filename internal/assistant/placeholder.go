package assistant

import (
	"context"
	"time"
)

// PlaceholderReply is the canned answer used until a real model is configured.
const PlaceholderReply = "I'm here to help! This is a placeholder response."

// PlaceholderResponder answers every prompt with PlaceholderReply after a fixed delay.
type PlaceholderResponder struct {
	Latency time.Duration
}

// Name implements Responder.
func (PlaceholderResponder) Name() string { return "placeholder" }

// Respond implements Responder.
func (p PlaceholderResponder) Respond(ctx context.Context, _ []Message, _ string) (string, error) {
	if p.Latency <= 0 {
		return PlaceholderReply, nil
	}
	timer := time.NewTimer(p.Latency)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-timer.C:
		return PlaceholderReply, nil
	}
}
