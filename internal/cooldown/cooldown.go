// Package cooldown enforces the minimum delay between two accepted contact
// form submissions from the same session.
package cooldown

import (
	"context"
	"time"

	"github.com/osa911/apexdrive/internal/logging"
	"github.com/osa911/apexdrive/internal/session"
)

// Tracker answers "how long until this session may submit again".
type Tracker struct {
	window time.Duration
	store  session.Store
	now    func() time.Time
	logger *logging.Logger
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithLogger sets the logger used for store failures.
func WithLogger(l *logging.Logger) Option {
	return func(t *Tracker) { t.logger = l }
}

// NewTracker creates a tracker. A zero window disables the cooldown.
func NewTracker(window time.Duration, store session.Store, opts ...Option) *Tracker {
	t := &Tracker{
		window: window,
		store:  store,
		now:    time.Now,
		logger: logging.GetGlobalLogger(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Window returns the configured cooldown.
func (t *Tracker) Window() time.Duration {
	return t.window
}

// Enabled reports whether a cooldown is configured.
func (t *Tracker) Enabled() bool {
	return t.window > 0
}

// Remaining returns the time left before sessionID may submit again, or 0.
// Elapsed time is counted in whole unix seconds so every store backend
// agrees. A store read failure is logged and treated as no previous
// submission.
func (t *Tracker) Remaining(ctx context.Context, sessionID string) time.Duration {
	if !t.Enabled() || sessionID == "" {
		return 0
	}

	last, ok, err := t.store.LastSubmission(ctx, sessionID)
	if err != nil {
		t.logger.With("session", sessionID).Warn("cooldown: reading session: %v", err)
		return 0
	}
	if !ok {
		return 0
	}

	elapsed := t.now().Unix() - last.Unix()
	left := int64(t.window/time.Second) - elapsed
	if left <= 0 {
		return 0
	}
	return time.Duration(left) * time.Second
}

// RemainingSeconds is Remaining in the whole seconds shown to visitors.
func (t *Tracker) RemainingSeconds(ctx context.Context, sessionID string) int {
	return int(t.Remaining(ctx, sessionID) / time.Second)
}

// Record marks now, truncated to the second, as the last accepted
// submission for sessionID.
func (t *Tracker) Record(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return t.store.SetLastSubmission(ctx, sessionID, t.now().Truncate(time.Second))
}
