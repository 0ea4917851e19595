// Package events defines the payloads exchanged over Kafka and their wire framing.
package events

import (
	"encoding/binary"
	"fmt"
	"strings"
	"time"

	"example.com/dashboard/internal/domain"
)

// ActivityRecordedType is the event_type header value for ActivityRecorded.
const ActivityRecordedType = "dashboard.activity_recorded"

// ActivityRecorded is emitted whenever something happens that belongs in the team feed.
type ActivityRecorded struct {
	ActivityID  string    `json:"activity_id"`
	TenantID    string    `json:"tenant_id"`
	Kind        string    `json:"kind"`
	ActorName   string    `json:"actor_name"`
	ActorAvatar string    `json:"actor_avatar"`
	Action      string    `json:"action"`
	Target      string    `json:"target"`
	OccurredAt  time.Time `json:"occurred_at"`
	Note        string    `json:"note,omitempty"`
}

// ActivityRecordedSchema is the JSON schema registered for ActivityRecorded.
const ActivityRecordedSchema = `{
  "type": "object",
  "title": "ActivityRecorded",
  "properties": {
    "activity_id": {"type": "string"},
    "tenant_id": {"type": "string"},
    "kind": {"type": "string", "enum": ["task", "comment", "project", "meeting", "ai_insight"]},
    "actor_name": {"type": "string"},
    "actor_avatar": {"type": "string"},
    "action": {"type": "string"},
    "target": {"type": "string"},
    "occurred_at": {"type": "string", "format": "date-time"},
    "note": {"type": "string"}
  },
  "required": ["activity_id", "kind", "actor_name", "action", "target", "occurred_at"],
  "additionalProperties": false
}`

// FromRecord builds the event payload for record.
func FromRecord(tenantID string, record domain.ActivityRecord) ActivityRecorded {
	return ActivityRecorded{
		ActivityID:  record.ID,
		TenantID:    tenantID,
		Kind:        string(record.Kind),
		ActorName:   record.Actor.Name,
		ActorAvatar: record.Actor.Avatar,
		Action:      record.Action,
		Target:      record.Target,
		OccurredAt:  record.OccurredAt.UTC(),
		Note:        record.Note,
	}
}

// Record converts the payload back into a feed record, rejecting kinds outside the closed set.
func (e ActivityRecorded) Record() (domain.ActivityRecord, error) {
	kind, err := domain.ParseKind(e.Kind)
	if err != nil {
		return domain.ActivityRecord{}, err
	}
	if strings.TrimSpace(e.ActivityID) == "" {
		return domain.ActivityRecord{}, fmt.Errorf("activity_id is required")
	}
	return domain.ActivityRecord{
		ID:         e.ActivityID,
		Kind:       kind,
		Actor:      domain.Actor{Name: e.ActorName, Avatar: e.ActorAvatar},
		Action:     e.Action,
		Target:     e.Target,
		OccurredAt: e.OccurredAt,
		Note:       e.Note,
	}, nil
}

// EncodeWireFormat applies Confluent framing: a zero magic byte, the big-endian schema id,
// then the payload.
func EncodeWireFormat(schemaID int, payload []byte) []byte {
	frame := make([]byte, 5+len(payload))
	frame[0] = 0
	binary.BigEndian.PutUint32(frame[1:5], uint32(schemaID))
	copy(frame[5:], payload)
	return frame
}

// DecodeWireFormat splits a framed value into schema id and payload.
func DecodeWireFormat(value []byte) (int, []byte, error) {
	if len(value) < 5 {
		return 0, nil, fmt.Errorf("invalid payload length: %d", len(value))
	}
	if value[0] != 0 {
		return 0, nil, fmt.Errorf("unexpected magic byte: %d", value[0])
	}
	schemaID := int(binary.BigEndian.Uint32(value[1:5]))
	return schemaID, append([]byte(nil), value[5:]...), nil
}
