package feed

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"

	"example.com/dashboard/internal/domain"
)

// NewID returns a time-ordered identifier for a record created at t.
func NewID(t time.Time) string {
	return ulid.MustNew(ulid.Timestamp(t), ulid.DefaultEntropy()).String()
}

// SeedRecords returns the initial batch shown before the first tick, newest first.
func SeedRecords(now time.Time) []domain.ActivityRecord {
	sarahAt := now.Add(-15 * time.Minute)
	alexAt := now.Add(-30 * time.Minute)

	return []domain.ActivityRecord{
		{
			ID:         NewID(now),
			Kind:       domain.KindAIInsight,
			Actor:      domain.Actor{Name: "AI Assistant", Avatar: "/icons/ai-avatar.svg"},
			Action:     "detected a potential bottleneck",
			Target:     "Q4 Marketing Campaign",
			OccurredAt: now,
			Note:       "Current task dependencies might delay launch by 2 days",
		},
		{
			ID:         NewID(sarahAt),
			Kind:       domain.KindTask,
			Actor:      domain.Actor{Name: "Sarah Chen", Avatar: "/avatars/sarah.jpg"},
			Action:     "completed",
			Target:     "Update landing page copy",
			OccurredAt: sarahAt,
		},
		{
			ID:         NewID(alexAt),
			Kind:       domain.KindMeeting,
			Actor:      domain.Actor{Name: "Alex Kim", Avatar: "/avatars/alex.jpg"},
			Action:     "scheduled",
			Target:     "Design Review Meeting",
			OccurredAt: alexAt,
		},
	}
}

// CommentGenerator synthesizes the placeholder comment the ticker inserts on every firing.
func CommentGenerator() Generator {
	return func(_ context.Context, now time.Time) (domain.ActivityRecord, error) {
		return domain.ActivityRecord{
			ID:         NewID(now),
			Kind:       domain.KindComment,
			Actor:      domain.Actor{Name: "Jamie Wilson", Avatar: "/avatars/jamie.jpg"},
			Action:     "commented on",
			Target:     "Brand Guidelines Document",
			OccurredAt: now,
		}, nil
	}
}
