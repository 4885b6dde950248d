// Package cache provides a caller-owned memo store for finished stability
// reports.
//
// The analysis pipeline is a pure function of (snapshot, strategy), so a
// report can be memoized safely by content fingerprint plus strategy name.
// The engine core never touches this store; the composing service owns it.
package cache

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/okian/keel/internal/domain/report"
)

// Default cache configuration constants.
const defaultMaxEntries = 256

// Store holds finished reports keyed by (snapshot fingerprint, strategy name).
type Store interface {
	// Get returns the cached report for key, if any.
	Get(ctx context.Context, key string) (*report.StabilityReport, bool)

	// Put stores a finished report under key, evicting the oldest entry when
	// the store is full.
	Put(ctx context.Context, key string, rpt *report.StabilityReport)

	Size() int64
}

// Option applies a configuration option to the in-memory store.
type Option func(*inMemoryStore)

// WithMaxEntries bounds the number of cached reports.
// Zero or negative means unbounded.
func WithMaxEntries(maxEntries int) Option {
	return func(s *inMemoryStore) {
		s.maxEntries = maxEntries
	}
}

// inMemoryStore implements Store with a map plus insertion-order eviction.
type inMemoryStore struct {
	mu         sync.RWMutex
	entries    map[string]*report.StabilityReport
	order      []string // insertion order, oldest first
	maxEntries int
	size       atomic.Int64
}

// NewInMemoryStore creates a bounded in-memory report store.
func NewInMemoryStore(opts ...Option) Store {
	s := &inMemoryStore{
		entries:    make(map[string]*report.StabilityReport),
		maxEntries: defaultMaxEntries,
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Get returns the cached report for key, if any.
func (s *inMemoryStore) Get(_ context.Context, key string) (*report.StabilityReport, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rpt, ok := s.entries[key]
	return rpt, ok
}

// Put stores a finished report, evicting the oldest entry when full.
func (s *inMemoryStore) Put(_ context.Context, key string, rpt *report.StabilityReport) {
	if rpt == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[key]; exists {
		s.entries[key] = rpt
		return
	}

	if s.maxEntries > 0 && len(s.entries) >= s.maxEntries {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.entries, oldest)
		s.size.Add(-1)
	}

	s.entries[key] = rpt
	s.order = append(s.order, key)
	s.size.Add(1)
}

// Size returns the current number of cached reports.
func (s *inMemoryStore) Size() int64 {
	return s.size.Load()
}
