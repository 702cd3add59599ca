package domain

import "time"

// Potion is a time-limited XP multiplier bought with gold. At most one is
// active at a time; the active potion lives in memory for the session and
// expiry is detected by polling, not by an event.
type Potion struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Multiplier  float64       `json:"multiplier"` // > 1
	Duration    time.Duration `json:"duration"`
	CostGold    int64         `json:"cost_gold"`
	ActiveUntil time.Time     `json:"active_until"`
}

// Expired reports whether the potion has lapsed at the given instant.
func (p Potion) Expired(now time.Time) bool {
	return now.After(p.ActiveUntil)
}
