package progression

import (
	"fmt"
	"time"

	"github.com/Puneet-Ratnu/murim/internal/app/notify"
	"github.com/Puneet-Ratnu/murim/internal/domain"
	"github.com/Puneet-Ratnu/murim/internal/infra/metrics"
	"github.com/Puneet-Ratnu/murim/internal/infra/sqlite"
)

// milestoneXPBase scales the fractional milestone bonus: 500 × streak ÷ 7.
const milestoneXPBase = 500.0

// streakMilestones are the streak lengths that pay a bonus.
var streakMilestones = []int{7, 14, 30, 60, 100}

// StreakService maintains the consecutive-day session counter.
type StreakService struct {
	db     *sqlite.DB
	ledger *Ledger
	notify *notify.Service
}

// NewStreakService creates a streak tracker.
func NewStreakService(db *sqlite.DB, ledger *Ledger, n *notify.Service) *StreakService {
	return &StreakService{db: db, ledger: ledger, notify: n}
}

// RecordSession registers activity for the calendar day of now.
//
// Same-day calls after the first are no-ops. A gap of exactly one day
// extends the streak and resets the daily task counter (plus the weekly
// counter when the new day is a Monday). Any longer gap restarts the
// streak at 1 and resets both counters. Milestone bonuses are paid only
// on the increment that lands exactly on a milestone length.
func (s *StreakService) RecordSession(now time.Time) (int, error) {
	p, err := s.db.LoadProgress()
	if err != nil {
		return 0, fmt.Errorf("load progress: %w", err)
	}

	today := domain.DateOf(now)
	if p.LastSessionDate == today {
		return p.StreakDays, nil
	}

	// First session ever: stamp the date, the streak starts counting
	// from the next consecutive day.
	if p.LastSessionDate == "" {
		p.LastSessionDate = today
		if err := s.db.SaveProgress(p); err != nil {
			return 0, fmt.Errorf("save progress: %w", err)
		}
		return p.StreakDays, nil
	}

	last := domain.ParseDate(p.LastSessionDate)
	gap := domain.DaysBetween(last, now)

	milestone := false
	switch {
	case gap == 1:
		p.StreakDays++
		p.DailyTasks = 0
		if now.Weekday() == time.Monday {
			p.WeeklyTasks = 0
		}
		milestone = isMilestone(p.StreakDays)
	default:
		p.StreakDays = 1
		p.DailyTasks = 0
		p.WeeklyTasks = 0
	}
	p.LastSessionDate = today

	if err := s.db.SaveProgress(p); err != nil {
		return 0, fmt.Errorf("save progress: %w", err)
	}
	metrics.StreakDays.Set(float64(p.StreakDays))

	if milestone {
		s.notify.Notify(domain.NotifyMilestone, fmt.Sprintf("%d-Day Streak!", p.StreakDays),
			fmt.Sprintf("Your dedication burns bright. %d consecutive days of cultivation.", p.StreakDays))
		bonus := milestoneXPBase * float64(p.StreakDays) / 7
		if _, err := s.ledger.GrantXP(bonus, domain.XPStreak); err != nil {
			return p.StreakDays, fmt.Errorf("milestone bonus: %w", err)
		}
	}

	return p.StreakDays, nil
}

func isMilestone(streak int) bool {
	for _, m := range streakMilestones {
		if streak == m {
			return true
		}
	}
	return false
}
