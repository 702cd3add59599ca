// Package revision implements the spaced-repetition scheduler and the
// check-in lottery for completed study tasks.
package revision

import (
	"time"

	"github.com/Puneet-Ratnu/murim/internal/domain"
)

// Stage is how many times a task has been revised, bucketed.
type Stage int

const (
	StageUnreviewed Stage = iota
	StageReviewed1
	StageReviewed2
	StageReviewed3
	StageReviewed4Plus
)

// StageOf buckets a revision count.
func StageOf(revisions int) Stage {
	switch {
	case revisions <= 0:
		return StageUnreviewed
	case revisions == 1:
		return StageReviewed1
	case revisions == 2:
		return StageReviewed2
	case revisions == 3:
		return StageReviewed3
	default:
		return StageReviewed4Plus
	}
}

// interval returns the wait in days before the next revision is due.
func (s Stage) interval() int {
	switch s {
	case StageUnreviewed:
		return 1
	case StageReviewed1:
		return 2
	case StageReviewed2:
		return 3
	case StageReviewed3:
		return 7
	default:
		return 15
	}
}

// DueDate computes when a task next becomes due. For the first four
// revisions the interval counts from the task's completion; from the
// fourth revision on it counts from the most recent check-in. Both
// anchors are truncated to midnight so dueness flips at day boundaries.
func DueDate(t domain.Task) time.Time {
	if t.CompletedAt.IsZero() {
		return time.Time{}
	}
	stage := StageOf(len(t.Revisions))
	anchor := t.CompletedAt
	if stage == StageReviewed4Plus {
		anchor = t.Revisions[len(t.Revisions)-1]
	}
	return domain.Midnight(anchor).AddDate(0, 0, stage.interval())
}

// IsDue reports whether the task can be checked in at now.
func IsDue(t domain.Task, now time.Time) bool {
	due := DueDate(t)
	return !due.IsZero() && !now.Before(due)
}
