// Package potion tracks the session's active XP buff. The active potion is
// deliberately not persisted: a restart clears it, matching the in-memory
// lifetime of the buff.
package potion

import (
	"context"
	"sync"
	"time"

	"github.com/Puneet-Ratnu/murim/internal/app/notify"
	"github.com/Puneet-Ratnu/murim/internal/domain"
)

// Tracker holds at most one active potion and answers multiplier queries.
// Safe for concurrent use.
type Tracker struct {
	mu     sync.Mutex
	active *domain.Potion
	notify *notify.Service
}

// NewTracker creates an empty tracker.
func NewTracker(n *notify.Service) *Tracker {
	return &Tracker{notify: n}
}

// Multiplier returns the active potion's multiplier, or 1.
func (t *Tracker) Multiplier() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active == nil {
		return 1
	}
	return t.active.Multiplier
}

// Activate arms a potion. An already-active potion blocks the purchase
// rather than stacking or overwriting.
func (t *Tracker) Activate(p domain.Potion, now time.Time) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active != nil && !t.active.Expired(now) {
		return domain.ErrPotionActive
	}
	p.ActiveUntil = now.Add(p.Duration)
	t.active = &p
	return nil
}

// Active returns a copy of the active potion, or nil.
func (t *Tracker) Active() *domain.Potion {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active == nil {
		return nil
	}
	p := *t.active
	return &p
}

// Clear drops the active potion without notification.
func (t *Tracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.active = nil
}

// Sweep expires a lapsed potion. Idempotent: only the sweep that actually
// clears the potion emits the expiry notification.
func (t *Tracker) Sweep(now time.Time) {
	t.mu.Lock()
	expired := t.active != nil && t.active.Expired(now)
	var name string
	if expired {
		name = t.active.Name
		t.active = nil
	}
	t.mu.Unlock()

	if expired {
		t.notify.Notify(domain.NotifyPotion, "Potion Expired",
			name+" has worn off. XP gains return to normal.")
	}
}

// Watch polls for expiry until ctx is cancelled.
func (t *Tracker) Watch(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			t.Sweep(now)
		}
	}
}
