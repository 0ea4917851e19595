// Package assistant implements the AI assistant chat panel: per-user conversations and the
// responders that answer them.
package assistant

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrEmptyMessage is returned when the user sends only whitespace.
var ErrEmptyMessage = errors.New("message is empty")

// Role identifies who wrote a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one chat bubble.
type Message struct {
	ID        string
	Role      Role
	Content   string
	Timestamp time.Time
}

// Responder produces the assistant's reply. history excludes prompt.
type Responder interface {
	Name() string
	Respond(ctx context.Context, history []Message, prompt string) (string, error)
}

// Conversation is one user's chat transcript.
type Conversation struct {
	responder Responder
	logger    *zap.Logger
	now       func() time.Time

	mu         sync.Mutex
	messages   []Message
	pending    int
	generation int
}

// Messages returns a copy of the transcript in send order.
func (c *Conversation) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Typing reports whether a reply is outstanding.
func (c *Conversation) Typing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending > 0
}

// Send appends the user's message, waits for the responder and appends its reply.
// When the responder fails the user message stays in the transcript, no reply is
// appended and the error is returned.
func (c *Conversation) Send(ctx context.Context, text string) (Message, error) {
	content := strings.TrimSpace(text)
	if content == "" {
		return Message{}, ErrEmptyMessage
	}

	c.mu.Lock()
	history := make([]Message, len(c.messages))
	copy(history, c.messages)
	c.messages = append(c.messages, Message{
		ID:        uuid.NewString(),
		Role:      RoleUser,
		Content:   content,
		Timestamp: c.now(),
	})
	c.pending++
	generation := c.generation
	c.mu.Unlock()

	start := time.Now()
	reply, err := c.responder.Respond(ctx, history, content)
	recordReply(c.responder.Name(), time.Since(start), err)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending--

	if err != nil {
		c.logger.Warn("assistant reply failed", zap.String("responder", c.responder.Name()), zap.Error(err))
		return Message{}, err
	}

	msg := Message{
		ID:        uuid.NewString(),
		Role:      RoleAssistant,
		Content:   reply,
		Timestamp: c.now(),
	}
	// A Close while the reply was in flight discards it.
	if generation == c.generation {
		c.messages = append(c.messages, msg)
	}
	return msg, nil
}

// Close clears the transcript, as when the panel is dismissed.
func (c *Conversation) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = nil
	c.generation++
}

// Option configures optional behaviour for Conversations.
type Option func(*Conversations)

// WithLogger overrides the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Conversations) {
		c.logger = logger
	}
}

// WithClock overrides the time source used for message timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Conversations) {
		c.now = now
	}
}

// Conversations indexes transcripts by user subject. Transcripts live in memory only.
type Conversations struct {
	responder Responder
	logger    *zap.Logger
	now       func() time.Time

	mu    sync.Mutex
	convs map[string]*Conversation
}

// NewConversations constructs a registry answering with responder.
func NewConversations(responder Responder, opts ...Option) *Conversations {
	c := &Conversations{
		responder: responder,
		logger:    zap.NewNop(),
		now:       func() time.Time { return time.Now().UTC() },
		convs:     make(map[string]*Conversation),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// For returns subject's conversation, creating it on first use.
func (c *Conversations) For(subject string) *Conversation {
	c.mu.Lock()
	defer c.mu.Unlock()
	conv, ok := c.convs[subject]
	if !ok {
		conv = &Conversation{responder: c.responder, logger: c.logger, now: c.now}
		c.convs[subject] = conv
	}
	return conv
}
