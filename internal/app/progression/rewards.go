package progression

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/Puneet-Ratnu/murim/internal/app/events"
	"github.com/Puneet-Ratnu/murim/internal/app/notify"
	"github.com/Puneet-Ratnu/murim/internal/domain"
	"github.com/Puneet-Ratnu/murim/internal/infra/metrics"
	"github.com/Puneet-Ratnu/murim/internal/infra/sqlite"
)

// Reward tariffs.
const (
	taskXP           = 100
	essayXPPerEssay  = 500
	essayXPPerMark   = 2
	mainsXPPerAnswer = 50
	hobbyXP          = 50

	totalTaskNotifyEvery = 150
	dailyTaskThreshold   = 50
	weeklyTaskThreshold  = 200
	thresholdIronReward  = 10
	thresholdFireReward  = 10
)

// PetFeeder receives spillover XP for the active pet.
type PetFeeder interface {
	FeedActive(xp int64) error
}

// Dispatcher converts study events into ledger grants, material drops,
// counter bumps, and timed-event triggers.
type Dispatcher struct {
	db     *sqlite.DB
	ledger *Ledger
	notify *notify.Service
	feeder PetFeeder
}

// NewDispatcher creates a reward dispatcher. feeder may be nil.
func NewDispatcher(db *sqlite.DB, ledger *Ledger, n *notify.Service, feeder PetFeeder) *Dispatcher {
	return &Dispatcher{db: db, ledger: ledger, notify: n, feeder: feeder}
}

// TaskCompleted pays out a finished study task: flat XP, the three task
// counters, threshold material bonuses, and the per-category material drop.
// Only the incomplete → complete transition pays; re-completing is the
// caller's bug to prevent.
func (d *Dispatcher) TaskCompleted(task domain.Task) error {
	if !task.Completed {
		return fmt.Errorf("task %s: %w", task.ID, domain.ErrTaskNotCompleted)
	}

	if _, err := d.ledger.GrantXP(taskXP, domain.XPTask); err != nil {
		return err
	}

	p, err := d.db.LoadProgress()
	if err != nil {
		return fmt.Errorf("load progress: %w", err)
	}
	p.TotalTasks++
	p.DailyTasks++
	p.WeeklyTasks++
	if err := d.db.SaveProgress(p); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	metrics.TasksCompleted.WithLabelValues(string(task.Category)).Inc()

	if p.TotalTasks%totalTaskNotifyEvery == 0 {
		d.notify.Notify(domain.NotifyMilestone, "Relentless Cultivator",
			fmt.Sprintf("%d tasks completed in total. The path continues.", p.TotalTasks))
	}
	if p.DailyTasks == dailyTaskThreshold {
		if err := d.db.AdjustMaterial(domain.MaterialIron, thresholdIronReward); err != nil {
			return fmt.Errorf("daily threshold reward: %w", err)
		}
		d.notify.Notify(domain.NotifyMilestone, "Daily Grind Rewarded",
			fmt.Sprintf("%d tasks in one day. %d Iron Ingots earned.", dailyTaskThreshold, thresholdIronReward))
	}
	if p.WeeklyTasks == weeklyTaskThreshold {
		if err := d.db.AdjustMaterial(domain.MaterialFire, thresholdFireReward); err != nil {
			return fmt.Errorf("weekly threshold reward: %w", err)
		}
		d.notify.Notify(domain.NotifyMilestone, "Weekly Conquest",
			fmt.Sprintf("%d tasks this week. %d Fire Essences earned.", weeklyTaskThreshold, thresholdFireReward))
	}

	// Category drop: GS work yields iron, optional-subject work yields wood.
	switch task.Category {
	case domain.CategoryGS:
		err = d.db.AdjustMaterial(domain.MaterialIron, 1)
	case domain.CategoryOptional:
		err = d.db.AdjustMaterial(domain.MaterialWood, 1)
	}
	if err != nil {
		return fmt.Errorf("category drop: %w", err)
	}
	return nil
}

// EssaySubmitted pays out a Wednesday essay session: XP scaled by essay
// count and marks, one Fire Essence per essay, and the boss-window check.
func (d *Dispatcher) EssaySubmitted(now time.Time, count int, marks int) (domain.GrantResult, error) {
	if count <= 0 {
		return domain.GrantResult{}, domain.ErrNonPositiveAmount
	}
	if !events.IsEssayDay(now) {
		return domain.GrantResult{}, domain.ErrNotEssayDay
	}

	xp := float64(count*essayXPPerEssay + marks*essayXPPerMark)
	res, err := d.ledger.GrantXP(xp, domain.XPEssay)
	if err != nil {
		return domain.GrantResult{}, err
	}
	if err := d.db.AdjustMaterial(domain.MaterialFire, count); err != nil {
		return res, fmt.Errorf("essay material: %w", err)
	}

	p, err := d.db.LoadProgress()
	if err != nil {
		return res, fmt.Errorf("load progress: %w", err)
	}
	if events.BossPending(p, now) {
		p.LastBossDate = domain.DateOf(now)
		if err := d.db.SaveProgress(p); err != nil {
			return res, fmt.Errorf("stamp boss date: %w", err)
		}
		d.notify.Notify(domain.NotifyBoss, "Boss Challenge!",
			"A demonic beast blocks your path. Face it before the window closes.")
	}
	return res, nil
}

// MainsLogged records a batch of mains answers: the day's count merges
// into one log row, XP is granted per answer, and the active pet is fed
// an equal base amount. Ledger and pet each apply the multiplier to their
// own grant independently.
func (d *Dispatcher) MainsLogged(now time.Time, count int) (domain.GrantResult, error) {
	if count <= 0 {
		return domain.GrantResult{}, domain.ErrNonPositiveAmount
	}
	if err := d.db.AddMainsCount(domain.DateOf(now), count); err != nil {
		return domain.GrantResult{}, fmt.Errorf("mains log: %w", err)
	}

	res, err := d.ledger.GrantXP(float64(count*mainsXPPerAnswer), domain.XPMains)
	if err != nil {
		return domain.GrantResult{}, err
	}
	if d.feeder != nil {
		if err := d.feeder.FeedActive(int64(count * mainsXPPerAnswer)); err != nil {
			log.Printf("[rewards] pet feed after mains: %v", err)
		}
	}
	return res, nil
}

// HobbyLogged records a leisure session for a flat grant.
func (d *Dispatcher) HobbyLogged(typ domain.HobbyType, title, content string, now time.Time) (domain.GrantResult, error) {
	err := d.db.InsertHobbyLog(domain.HobbyLog{
		ID:      uuid.NewString(),
		Type:    typ,
		Title:   title,
		Content: content,
		Date:    now,
	})
	if err != nil {
		return domain.GrantResult{}, fmt.Errorf("hobby log: %w", err)
	}
	return d.ledger.GrantXP(hobbyXP, domain.XPHobby)
}

// BossReward applies the payout of a completed boss fight.
func (d *Dispatcher) BossReward(xp float64, gold int64) (domain.GrantResult, error) {
	res, err := d.ledger.GrantXP(xp, domain.XPBossFight)
	if err != nil {
		return domain.GrantResult{}, err
	}
	if gold > 0 {
		if err := d.ledger.GrantGold(gold); err != nil {
			return res, err
		}
	}
	return res, nil
}
