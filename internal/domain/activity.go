// Package domain defines the records shared across the dashboard service.
package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnknownKind is returned when an activity kind outside the closed set is supplied.
var ErrUnknownKind = errors.New("unknown activity kind")

// Kind classifies an activity record.
type Kind string

const (
	KindTask      Kind = "task"
	KindComment   Kind = "comment"
	KindProject   Kind = "project"
	KindMeeting   Kind = "meeting"
	KindAIInsight Kind = "ai_insight"
)

var kindIcons = map[Kind]string{
	KindTask:      "/icons/task.svg",
	KindComment:   "/icons/comment.svg",
	KindProject:   "/icons/project.svg",
	KindMeeting:   "/icons/meeting.svg",
	KindAIInsight: "/icons/ai-insight.svg",
}

// ParseKind validates raw against the closed set of kinds.
func ParseKind(raw string) (Kind, error) {
	k := Kind(raw)
	if _, ok := kindIcons[k]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, raw)
	}
	return k, nil
}

// Icon returns the icon reference rendered next to records of this kind.
func (k Kind) Icon() string {
	return kindIcons[k]
}

// Highlighted reports whether the presentation layer should call out records of this kind.
func (k Kind) Highlighted() bool {
	return k == KindAIInsight
}

// Actor identifies who performed an activity. Both fields are opaque.
type Actor struct {
	Name   string
	Avatar string
}

// ActivityRecord is one entry of the team activity feed. Records are never mutated after creation.
type ActivityRecord struct {
	ID         string
	Kind       Kind
	Actor      Actor
	Action     string
	Target     string
	OccurredAt time.Time
	// Note is only meaningful for ai_insight records.
	Note string
}
