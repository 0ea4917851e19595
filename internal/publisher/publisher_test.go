package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"

	"example.com/dashboard/internal/auth"
	"example.com/dashboard/internal/domain"
	"example.com/dashboard/internal/events"
)

type stubWriter struct {
	topic    string
	messages []kafka.Message
	err      error
}

func (w *stubWriter) WriteMessages(_ context.Context, topic string, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.topic = topic
	w.messages = append(w.messages, msgs...)
	return nil
}

type stubRegistry struct {
	calls int
}

func (r *stubRegistry) EnsureSchema(context.Context, string, string) (int, error) {
	r.calls++
	return 7, nil
}

func header(msg kafka.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestRecordFramesAndHeadersMessage(t *testing.T) {
	writer := &stubWriter{}
	registry := &stubRegistry{}
	pub := NewPublisher(writer, registry, "dashboard_activity")

	ctx := auth.WithClaims(context.Background(), &auth.Claims{Subject: "u", TenantID: "acme"})
	rec := domain.ActivityRecord{
		ID:         "act-1",
		Kind:       domain.KindMeeting,
		Actor:      domain.Actor{Name: "Alex Kim"},
		Action:     "started",
		Target:     "Team Meeting",
		OccurredAt: time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC),
	}

	before := testutil.ToFloat64(publishedCounter)
	require.NoError(t, pub.Record(ctx, rec))
	require.NoError(t, pub.Record(ctx, rec))

	require.Equal(t, 1, registry.calls)
	require.Equal(t, "dashboard_activity", writer.topic)
	require.Len(t, writer.messages, 2)
	require.Equal(t, before+2, testutil.ToFloat64(publishedCounter))

	msg := writer.messages[0]
	require.Equal(t, events.ActivityRecordedType, header(msg, "event_type"))
	require.Equal(t, "acme", header(msg, "tenant_id"))
	require.Equal(t, "dashboard_activity-value", header(msg, "schema_subject"))

	schemaID, payload, err := events.DecodeWireFormat(msg.Value)
	require.NoError(t, err)
	require.Equal(t, 7, schemaID)

	var evt events.ActivityRecorded
	require.NoError(t, json.Unmarshal(payload, &evt))
	require.Equal(t, "act-1", evt.ActivityID)
	require.Equal(t, "meeting", evt.Kind)
}

func TestRecordWithoutRegistryUsesSchemaZero(t *testing.T) {
	writer := &stubWriter{}
	pub := NewPublisher(writer, nil, "dashboard_activity")

	require.NoError(t, pub.Record(context.Background(), domain.ActivityRecord{ID: "a", Kind: domain.KindTask}))
	schemaID, _, err := events.DecodeWireFormat(writer.messages[0].Value)
	require.NoError(t, err)
	require.Zero(t, schemaID)
}

func TestRecordSurfacesWriterErrors(t *testing.T) {
	before := testutil.ToFloat64(failedCounter)
	pub := NewPublisher(&stubWriter{err: errors.New("leader not available")}, nil, "dashboard_activity")

	err := pub.Record(context.Background(), domain.ActivityRecord{ID: "a", Kind: domain.KindTask})
	require.Error(t, err)
	require.Equal(t, before+1, testutil.ToFloat64(failedCounter))
}

func TestSchemaRegistryRegistersMissingSubject(t *testing.T) {
	var registered bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error_code":40401}`))
		case r.Method == http.MethodPost && r.URL.Path == "/subjects/dashboard_activity-value/versions":
			registered = true
			_, _ = w.Write([]byte(`{"id":12}`))
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	}))
	defer srv.Close()

	id, err := NewSchemaRegistryClient(srv.URL+"/").EnsureSchema(context.Background(), "dashboard_activity-value", events.ActivityRecordedSchema)
	require.NoError(t, err)
	require.True(t, registered)
	require.Equal(t, 12, id)
}

func TestSchemaRegistryReturnsLatest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/subjects/s/versions/latest", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":3}`))
	}))
	defer srv.Close()

	id, err := NewSchemaRegistryClient(srv.URL).EnsureSchema(context.Background(), "s", "{}")
	require.NoError(t, err)
	require.Equal(t, 3, id)
}
