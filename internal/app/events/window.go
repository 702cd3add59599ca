// Package events holds the pure calendar predicates for timed game events.
package events

import (
	"time"

	"github.com/Puneet-Ratnu/murim/internal/domain"
)

// IsEssayDay reports whether now falls on the weekly essay day (Wednesday).
func IsEssayDay(now time.Time) bool {
	return now.Weekday() == time.Wednesday
}

// BossWindowActive reports whether now falls inside the boss challenge
// window: Wednesday from noon up to (but excluding) 3 PM, local time.
func BossWindowActive(now time.Time) bool {
	if now.Weekday() != time.Wednesday {
		return false
	}
	h := now.Hour()
	return h >= domain.BossStartHour && h < domain.BossEndHour
}

// BossPending reports whether a boss challenge should fire now: the window
// is open and no challenge was issued today.
func BossPending(p domain.Progress, now time.Time) bool {
	return BossWindowActive(now) && p.LastBossDate != domain.DateOf(now)
}
