// Package session stores the per-visitor state kept between contact form
// submissions. The only value tracked is the time of the last accepted
// submission.
package session

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrClosed is returned by stores used after Close.
var ErrClosed = errors.New("session: store closed")

// Store persists the last successful submission time per session id.
type Store interface {
	// LastSubmission returns the recorded time and whether one exists.
	LastSubmission(ctx context.Context, id string) (time.Time, bool, error)
	// SetLastSubmission records t for id.
	SetLastSubmission(ctx context.Context, id string, t time.Time) error
	Ping(ctx context.Context) error
	Close() error
}

type memoryEntry struct {
	last      time.Time
	expiresAt time.Time
}

// Sweeper is implemented by stores that need expired entries removed
// periodically.
type Sweeper interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

// MemoryStore keeps sessions in process memory. Entries expire after ttl.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
	closed  bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]memoryEntry),
	}
}

func (s *MemoryStore) LastSubmission(_ context.Context, id string) (time.Time, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return time.Time{}, false, ErrClosed
	}
	e, ok := s.entries[id]
	if !ok || !s.now().Before(e.expiresAt) {
		return time.Time{}, false, nil
	}
	return e.last, true, nil
}

func (s *MemoryStore) SetLastSubmission(_ context.Context, id string, t time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.entries[id] = memoryEntry{last: t, expiresAt: s.now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Ping(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	return nil
}

// DeleteExpired drops entries whose lifetime has ended.
func (s *MemoryStore) DeleteExpired(context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	var removed int64
	for id, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed, nil
}

// Len returns the number of stored entries, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.entries = map[string]memoryEntry{}
	return nil
}
