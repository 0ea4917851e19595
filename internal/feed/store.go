// Package feed holds the bounded team activity feed and the ticker that keeps it moving.
package feed

import (
	"sync"

	"example.com/dashboard/internal/domain"
	"example.com/dashboard/internal/observability"
)

// DefaultBound is the maximum number of records the feed retains.
const DefaultBound = 10

// Sink receives newly observed activity records. The ticker, the Kafka consumer and
// quick actions all deliver through it.
type Sink interface {
	OnNewActivity(record domain.ActivityRecord)
}

// Store is an ordered, bounded sequence of activity records, newest first.
type Store struct {
	mu      sync.RWMutex
	bound   int
	records []domain.ActivityRecord
}

// NewStore constructs an empty Store. A non-positive bound falls back to DefaultBound.
func NewStore(bound int) *Store {
	if bound <= 0 {
		bound = DefaultBound
	}
	return &Store{bound: bound}
}

// Bound reports the retention limit.
func (s *Store) Bound() int {
	return s.bound
}

// Seed replaces the sequence wholesale. Records are expected newest first; anything past
// the bound is dropped.
func (s *Store) Seed(records []domain.ActivityRecord) {
	n := len(records)
	if n > s.bound {
		n = s.bound
	}
	next := make([]domain.ActivityRecord, n, s.bound)
	copy(next, records[:n])

	s.mu.Lock()
	s.records = next
	s.mu.Unlock()

	observability.RecordFeedSize(n)
	observability.RecordFeedEvicted(len(records) - n)
}

// Prepend inserts record at the head and truncates the sequence to the bound.
func (s *Store) Prepend(record domain.ActivityRecord) {
	s.mu.Lock()
	keep := s.records
	evicted := 0
	if len(keep) > s.bound-1 {
		evicted = len(keep) - (s.bound - 1)
		keep = keep[:s.bound-1]
	}
	next := make([]domain.ActivityRecord, 0, s.bound)
	next = append(next, record)
	next = append(next, keep...)
	s.records = next
	size := len(next)
	s.mu.Unlock()

	observability.RecordFeedSize(size)
	observability.RecordFeedEvicted(evicted)
	observability.RecordFeedActivity(record.OccurredAt)
}

// OnNewActivity implements Sink.
func (s *Store) OnNewActivity(record domain.ActivityRecord) {
	s.Prepend(record)
}

// Snapshot returns a copy of the current records, newest first.
func (s *Store) Snapshot() []domain.ActivityRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.ActivityRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Len reports the number of retained records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
