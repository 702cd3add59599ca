package revision

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/Puneet-Ratnu/murim/internal/app/notify"
	"github.com/Puneet-Ratnu/murim/internal/app/progression"
	"github.com/Puneet-Ratnu/murim/internal/domain"
	"github.com/Puneet-Ratnu/murim/internal/infra/metrics"
	"github.com/Puneet-Ratnu/murim/internal/infra/sqlite"
)

// Service schedules revisions and pays out the check-in lottery.
type Service struct {
	db     *sqlite.DB
	ledger *progression.Ledger
	notify *notify.Service
	rng    *rand.Rand
}

// NewService creates a revision scheduler. rng drives the lottery; tests
// inject a seeded source.
func NewService(db *sqlite.DB, ledger *progression.Ledger, n *notify.Service, rng *rand.Rand) *Service {
	return &Service{db: db, ledger: ledger, notify: n, rng: rng}
}

// Due returns the completed tasks whose next revision date has arrived.
func (s *Service) Due(now time.Time) ([]domain.Task, error) {
	tasks, err := s.db.ListTasks()
	if err != nil {
		return nil, err
	}
	var due []domain.Task
	for _, t := range tasks {
		if t.Completed && IsDue(t, now) {
			due = append(due, t)
		}
	}
	return due, nil
}

// CheckIn records one revision of a task and draws a lottery reward.
// Dueness is re-validated against storage so a stale client cannot farm
// the lottery by replaying check-ins.
func (s *Service) CheckIn(taskID string, now time.Time) (domain.Reward, error) {
	t, err := s.db.GetTask(taskID)
	if err != nil {
		return domain.Reward{}, err
	}
	if t == nil {
		return domain.Reward{}, fmt.Errorf("task %s: %w", taskID, domain.ErrTaskNotFound)
	}
	if !t.Completed {
		return domain.Reward{}, fmt.Errorf("task %s: %w", taskID, domain.ErrTaskNotCompleted)
	}
	if !IsDue(*t, now) {
		return domain.Reward{}, fmt.Errorf("task %s: %w", taskID, domain.ErrRevisionNotDue)
	}

	if err := s.db.AppendRevision(taskID, now); err != nil {
		return domain.Reward{}, fmt.Errorf("append revision: %w", err)
	}

	reward := DrawReward(s.rng.Float64())
	if err := s.apply(reward); err != nil {
		return domain.Reward{}, err
	}
	metrics.RevisionDraws.WithLabelValues(reward.Label).Inc()
	s.notify.Notify(domain.NotifyRevision, "Revision Complete",
		fmt.Sprintf("You revisited %q and found: %s", t.Title, reward.Label))
	return reward, nil
}

// DrawReward maps a uniform roll in [0,1) to a lottery prize. Boundaries
// are strict: 0.95 itself lands in the iron bucket, 0.8 in the scripture
// bucket, 0.6 in the orb bucket.
func DrawReward(roll float64) domain.Reward {
	switch {
	case roll > 0.95:
		return domain.Reward{Kind: domain.RewardGold, Amount: 50, Label: "Pot of Gold"}
	case roll > 0.8:
		return domain.Reward{Kind: domain.RewardItem, Amount: 1, Label: "Iron Ingot"}
	case roll > 0.6:
		return domain.Reward{Kind: domain.RewardXP, Amount: 500, Label: "Ancient Scripture"}
	default:
		return domain.Reward{Kind: domain.RewardXP, Amount: 100, Label: "Small Spirit Orb"}
	}
}

func (s *Service) apply(r domain.Reward) error {
	switch r.Kind {
	case domain.RewardXP:
		_, err := s.ledger.GrantXP(float64(r.Amount), domain.XPRevision)
		return err
	case domain.RewardGold:
		return s.ledger.GrantGold(r.Amount)
	case domain.RewardItem:
		return s.db.AdjustMaterial(domain.MaterialIron, int(r.Amount))
	}
	return fmt.Errorf("unknown reward kind %q", r.Kind)
}
