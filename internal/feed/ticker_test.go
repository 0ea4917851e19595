package feed

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"example.com/dashboard/internal/domain"
)

type countingSink struct {
	mu      sync.Mutex
	records []domain.ActivityRecord
}

func (s *countingSink) OnNewActivity(record domain.ActivityRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
}

func (s *countingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

func TestTickerDeliversCommentRecords(t *testing.T) {
	defer goleak.VerifyNone(t)

	store := NewStore(DefaultBound)
	ticker := NewTicker(5*time.Millisecond, store)
	ticker.Start(context.Background())

	require.Eventually(t, func() bool { return store.Len() >= 2 }, time.Second, time.Millisecond)
	ticker.Stop()

	head := store.Snapshot()[0]
	require.Equal(t, domain.KindComment, head.Kind)
	require.Equal(t, "Jamie Wilson", head.Actor.Name)
	require.Equal(t, "commented on", head.Action)
	require.NotEmpty(t, head.ID)
}

func TestStopPreventsFurtherDeliveries(t *testing.T) {
	defer goleak.VerifyNone(t)

	sink := &countingSink{}
	ticker := NewTicker(2*time.Millisecond, sink)
	ticker.Start(context.Background())

	require.Eventually(t, func() bool { return sink.count() >= 3 }, time.Second, time.Millisecond)
	ticker.Stop()

	stopped := sink.count()
	time.Sleep(30 * time.Millisecond)
	require.Equal(t, stopped, sink.count())
}

func TestCancellingParentContextStopsTicker(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	sink := &countingSink{}
	ticker := NewTicker(2*time.Millisecond, sink)

	errCh := make(chan error, 1)
	go func() { errCh <- ticker.Run(ctx) }()

	require.Eventually(t, func() bool { return sink.count() >= 1 }, time.Second, time.Millisecond)
	cancel()
	require.NoError(t, <-errCh)

	stopped := sink.count()
	time.Sleep(20 * time.Millisecond)
	require.Equal(t, stopped, sink.count())
}

func TestStopIsIdempotent(t *testing.T) {
	defer goleak.VerifyNone(t)

	ticker := NewTicker(time.Hour, &countingSink{})
	ticker.Stop()

	ticker.Start(context.Background())
	ticker.Start(context.Background())
	ticker.Stop()
	ticker.Stop()
}

func TestGeneratorFailureLeavesFeedUnchangedAndKeepsFiring(t *testing.T) {
	defer goleak.VerifyNone(t)

	store := NewStore(DefaultBound)
	store.Seed(SeedRecords(time.Now().UTC()))
	before := store.Snapshot()

	var mu sync.Mutex
	calls := 0
	fixed := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	gen := func(ctx context.Context, now time.Time) (domain.ActivityRecord, error) {
		mu.Lock()
		defer mu.Unlock()
		calls++
		if calls == 3 {
			return CommentGenerator()(ctx, now)
		}
		return domain.ActivityRecord{}, errors.New("upstream unavailable")
	}

	ticker := NewTicker(2*time.Millisecond, store, WithGenerator(gen), WithClock(func() time.Time { return fixed }))
	ticker.Start(context.Background())

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return calls >= 5
	}, time.Second, time.Millisecond)
	ticker.Stop()

	snap := store.Snapshot()
	require.Len(t, snap, len(before)+1)
	require.Equal(t, fixed, snap[0].OccurredAt)
	require.Equal(t, before, snap[1:])
}

func TestSeedRecordsMatchInitialBatch(t *testing.T) {
	now := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	seed := SeedRecords(now)

	require.Len(t, seed, 3)
	require.Equal(t, domain.KindAIInsight, seed[0].Kind)
	require.NotEmpty(t, seed[0].Note)
	require.Equal(t, "15m ago", TimeAgo(seed[1].OccurredAt, now))
	require.Equal(t, "30m ago", TimeAgo(seed[2].OccurredAt, now))
}
