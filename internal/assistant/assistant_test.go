package assistant

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

type scriptedResponder struct {
	mu      sync.Mutex
	reply   string
	err     error
	gate    chan struct{}
	history [][]Message
}

func (s *scriptedResponder) Name() string { return "scripted" }

func (s *scriptedResponder) Respond(ctx context.Context, history []Message, _ string) (string, error) {
	s.mu.Lock()
	s.history = append(s.history, history)
	gate := s.gate
	s.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return s.reply, s.err
}

func TestSendAppendsUserThenAssistant(t *testing.T) {
	responder := &scriptedResponder{reply: "Here is your summary."}
	conv := NewConversations(responder).For("user-1")

	reply, err := conv.Send(context.Background(), "  summarize Q4  ")
	require.NoError(t, err)
	require.Equal(t, RoleAssistant, reply.Role)

	msgs := conv.Messages()
	require.Len(t, msgs, 2)
	require.Equal(t, RoleUser, msgs[0].Role)
	require.Equal(t, "summarize Q4", msgs[0].Content)
	require.Equal(t, "Here is your summary.", msgs[1].Content)
	require.NotEqual(t, msgs[0].ID, msgs[1].ID)

	_, err = conv.Send(context.Background(), "thanks")
	require.NoError(t, err)
	require.Len(t, responder.history[1], 2)
}

func TestSendRejectsBlank(t *testing.T) {
	conv := NewConversations(&scriptedResponder{}).For("user-1")
	_, err := conv.Send(context.Background(), " \n\t")
	require.ErrorIs(t, err, ErrEmptyMessage)
	require.Empty(t, conv.Messages())
}

func TestResponderFailureKeepsUserMessage(t *testing.T) {
	before := testutil.ToFloat64(repliesCounter.WithLabelValues("scripted", "error"))
	conv := NewConversations(&scriptedResponder{err: errors.New("model unavailable")}).For("user-1")

	_, err := conv.Send(context.Background(), "hello")
	require.Error(t, err)

	msgs := conv.Messages()
	require.Len(t, msgs, 1)
	require.Equal(t, RoleUser, msgs[0].Role)
	require.False(t, conv.Typing())
	require.Equal(t, before+1, testutil.ToFloat64(repliesCounter.WithLabelValues("scripted", "error")))
}

func TestTypingWhileReplyPending(t *testing.T) {
	responder := &scriptedResponder{reply: "done", gate: make(chan struct{})}
	conv := NewConversations(responder).For("user-1")

	errCh := make(chan error, 1)
	go func() {
		_, err := conv.Send(context.Background(), "hello")
		errCh <- err
	}()

	require.Eventually(t, conv.Typing, time.Second, time.Millisecond)
	close(responder.gate)
	require.NoError(t, <-errCh)
	require.False(t, conv.Typing())
	require.Len(t, conv.Messages(), 2)
}

func TestCloseDiscardsInFlightReply(t *testing.T) {
	responder := &scriptedResponder{reply: "late", gate: make(chan struct{})}
	conv := NewConversations(responder).For("user-1")

	errCh := make(chan error, 1)
	go func() {
		_, err := conv.Send(context.Background(), "hello")
		errCh <- err
	}()

	require.Eventually(t, conv.Typing, time.Second, time.Millisecond)
	conv.Close()
	close(responder.gate)
	require.NoError(t, <-errCh)
	require.Empty(t, conv.Messages())
}

func TestConversationsArePerUser(t *testing.T) {
	convs := NewConversations(&scriptedResponder{reply: "ok"})
	_, err := convs.For("a").Send(context.Background(), "hi")
	require.NoError(t, err)

	require.Len(t, convs.For("a").Messages(), 2)
	require.Empty(t, convs.For("b").Messages())
}

func TestPlaceholderResponderWaitsThenReplies(t *testing.T) {
	start := time.Now()
	reply, err := PlaceholderResponder{Latency: 20 * time.Millisecond}.Respond(context.Background(), nil, "hi")
	require.NoError(t, err)
	require.Equal(t, PlaceholderReply, reply)
	require.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestPlaceholderResponderHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := PlaceholderResponder{Latency: time.Hour}.Respond(ctx, nil, "hi")
	require.ErrorIs(t, err, context.Canceled)
}
