package tasks

import (
	"context"
	"sync"
	"time"

	"github.com/osa911/apexdrive/internal/logging"
	"github.com/osa911/apexdrive/internal/session"
)

// DefaultCleanupInterval is how often expired state is removed.
const DefaultCleanupInterval = 10 * time.Minute

// SweepFunc adapts a function to session.Sweeper.
type SweepFunc func(ctx context.Context) (int64, error)

func (f SweepFunc) DeleteExpired(ctx context.Context) (int64, error) {
	return f(ctx)
}

// Sweep is one named target of the cleanup task.
type Sweep struct {
	Name    string
	Sweeper session.Sweeper
}

// SessionCleanup handles periodic cleaning of expired sessions and
// other per-visitor state.
type SessionCleanup struct {
	sweeps   []Sweep
	interval time.Duration
	logger   *logging.Logger
	done     chan struct{}
	wg       sync.WaitGroup
	once     sync.Once
}

// NewSessionCleanup creates a new session cleanup task
func NewSessionCleanup(interval time.Duration, logger *logging.Logger, sweeps ...Sweep) *SessionCleanup {
	if interval <= 0 {
		interval = DefaultCleanupInterval
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &SessionCleanup{
		sweeps:   sweeps,
		interval: interval,
		logger:   logger,
		done:     make(chan struct{}),
	}
}

// Start begins the cleanup task in the background
func (sc *SessionCleanup) Start() {
	if len(sc.sweeps) == 0 {
		return
	}
	sc.wg.Add(1)
	go sc.runPeriodically()
}

// Stop gracefully stops the cleanup task
func (sc *SessionCleanup) Stop() {
	sc.once.Do(func() { close(sc.done) })
	sc.wg.Wait()
}

// runPeriodically runs the cleanup task at regular intervals
func (sc *SessionCleanup) runPeriodically() {
	defer sc.wg.Done()

	// Run immediately on startup
	sc.RunOnce(context.Background())

	ticker := time.NewTicker(sc.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			sc.RunOnce(context.Background())
		case <-sc.done:
			sc.logger.Debug("Session cleanup task stopped")
			return
		}
	}
}

// RunOnce sweeps every target once and returns the number of removed
// entries. A failing target does not stop the others.
func (sc *SessionCleanup) RunOnce(ctx context.Context) int64 {
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	var total int64
	for _, s := range sc.sweeps {
		n, err := s.Sweeper.DeleteExpired(ctx)
		if err != nil {
			sc.logger.Error("Session cleanup (%s) failed: %v", s.Name, err)
			continue
		}
		if n > 0 {
			sc.logger.Debug("Session cleanup (%s): removed %d expired entries", s.Name, n)
		}
		total += n
	}
	return total
}
