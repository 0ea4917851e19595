package feed

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"example.com/dashboard/internal/domain"
	"example.com/dashboard/internal/observability"
)

// DefaultTickInterval is how often the ticker synthesizes a new record.
const DefaultTickInterval = 30 * time.Second

// Generator produces the record delivered on a tick. A returned error skips the tick.
type Generator func(ctx context.Context, now time.Time) (domain.ActivityRecord, error)

// TickerOption configures optional behaviour for the Ticker.
type TickerOption func(*Ticker)

// WithGenerator overrides the record generator.
func WithGenerator(g Generator) TickerOption {
	return func(t *Ticker) {
		t.generate = g
	}
}

// WithClock overrides the time source handed to the generator.
func WithClock(now func() time.Time) TickerOption {
	return func(t *Ticker) {
		t.now = now
	}
}

// WithLogger overrides the logger used to report skipped ticks.
func WithLogger(logger *zap.Logger) TickerOption {
	return func(t *Ticker) {
		t.logger = logger
	}
}

// Ticker fires on a fixed period and delivers one generated record to its sink per firing.
type Ticker struct {
	period   time.Duration
	sink     Sink
	generate Generator
	now      func() time.Time
	logger   *zap.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewTicker constructs a stopped Ticker. A non-positive period falls back to DefaultTickInterval.
func NewTicker(period time.Duration, sink Sink, opts ...TickerOption) *Ticker {
	if period <= 0 {
		period = DefaultTickInterval
	}
	t := &Ticker{
		period:   period,
		sink:     sink,
		generate: CommentGenerator(),
		now:      func() time.Time { return time.Now().UTC() },
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Start launches the firing loop. Calling Start on a running Ticker is a no-op.
// The loop also ends when ctx is cancelled.
func (t *Ticker) Start(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.done != nil {
		return
	}
	loopCtx, cancel := context.WithCancel(ctx)
	t.cancel = cancel
	t.done = make(chan struct{})
	go t.run(loopCtx, t.done)
}

// Stop cancels the loop and waits for it to exit. Once Stop returns the sink receives
// no further records. Stopping a stopped Ticker is a no-op.
func (t *Ticker) Stop() {
	t.mu.Lock()
	cancel, done := t.cancel, t.done
	t.cancel, t.done = nil, nil
	t.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Run starts the ticker and blocks until ctx is cancelled.
func (t *Ticker) Run(ctx context.Context) error {
	t.Start(ctx)
	<-ctx.Done()
	t.Stop()
	return nil
}

func (t *Ticker) run(ctx context.Context, done chan struct{}) {
	ticker := time.NewTicker(t.period)
	defer func() {
		ticker.Stop()
		close(done)
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// Both channels may be ready at once; cancellation wins.
			if ctx.Err() != nil {
				return
			}
			t.fire(ctx)
		}
	}
}

func (t *Ticker) fire(ctx context.Context) {
	record, err := t.generate(ctx, t.now())
	if err != nil {
		t.logger.Warn("feed tick skipped", zap.Error(err))
		return
	}
	observability.RecordTickerFired()
	t.sink.OnNewActivity(record)
}
