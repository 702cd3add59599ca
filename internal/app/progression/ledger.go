// Package progression implements the reward engine core: the XP/currency
// ledger, the login streak tracker, and the reward dispatcher that turns
// study events into ledger mutations.
package progression

import (
	"fmt"
	"math"

	"github.com/Puneet-Ratnu/murim/internal/app/notify"
	"github.com/Puneet-Ratnu/murim/internal/domain"
	"github.com/Puneet-Ratnu/murim/internal/infra/metrics"
	"github.com/Puneet-Ratnu/murim/internal/infra/sqlite"
)

// Buffs supplies the current XP multiplier (1 when no potion is active).
type Buffs interface {
	Multiplier() float64
}

// Ledger owns level, XP, and the two currencies.
type Ledger struct {
	db     *sqlite.DB
	buffs  Buffs
	notify *notify.Service
}

// NewLedger creates a progression ledger. buffs may be nil (multiplier 1).
func NewLedger(db *sqlite.DB, buffs Buffs, n *notify.Service) *Ledger {
	return &Ledger{db: db, buffs: buffs, notify: n}
}

// Progress returns the current ledger state.
func (l *Ledger) Progress() (domain.Progress, error) {
	return l.db.LoadProgress()
}

// GrantXP applies an XP grant. The active potion multiplier is applied and
// the result floored; both the level-bound XP and the lifetime spendable
// balance increase by the effective amount. Level-ups cascade, so one large
// grant can cross several levels, but the level-up celebration fires at
// most once per call. At level 500 surplus XP is retained as-is; no
// clamping, no further leveling.
func (l *Ledger) GrantXP(base float64, source domain.XPSource) (domain.GrantResult, error) {
	if base <= 0 {
		return domain.GrantResult{}, fmt.Errorf("grant xp: %w", domain.ErrNonPositiveAmount)
	}

	mult := 1.0
	if l.buffs != nil {
		mult = l.buffs.Multiplier()
	}
	effective := int64(math.Floor(base * mult))

	p, err := l.db.LoadProgress()
	if err != nil {
		return domain.GrantResult{}, fmt.Errorf("load progress: %w", err)
	}

	p.XP += effective
	p.SpendableXP += effective

	leveledUp := false
	for p.XP >= int64(p.Level)*domain.XPPerLevel && p.Level < domain.MaxLevel {
		p.XP -= int64(p.Level) * domain.XPPerLevel
		p.Level++
		leveledUp = true
	}

	if err := l.db.SaveProgress(p); err != nil {
		return domain.GrantResult{}, fmt.Errorf("save progress: %w", err)
	}

	metrics.XPGranted.WithLabelValues(string(source)).Add(float64(effective))
	metrics.Level.Set(float64(p.Level))
	metrics.SpendableBalance.Set(float64(p.SpendableXP))

	if leveledUp {
		l.notify.Notify(domain.NotifyLevelUp, "Level Up!",
			fmt.Sprintf("Your cultivation base has reached level %d.", p.Level))
	}

	return domain.GrantResult{Amount: effective, Level: p.Level, LeveledUp: leveledUp}, nil
}

// GrantGold adds premium currency. No multiplier applies to gold.
func (l *Ledger) GrantGold(amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("grant gold: %w", domain.ErrNonPositiveAmount)
	}
	p, err := l.db.LoadProgress()
	if err != nil {
		return fmt.Errorf("load progress: %w", err)
	}
	p.Gold += amount
	if err := l.db.SaveProgress(p); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	metrics.GoldBalance.Set(float64(p.Gold))
	return nil
}

// Spend decrements a currency pool. The balance is re-validated here even
// when the caller pre-checked; an insufficient balance leaves state
// unchanged.
func (l *Ledger) Spend(pool domain.Pool, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("spend: %w", domain.ErrNonPositiveAmount)
	}
	p, err := l.db.LoadProgress()
	if err != nil {
		return fmt.Errorf("load progress: %w", err)
	}

	switch pool {
	case domain.PoolSpendable:
		if p.SpendableXP < amount {
			return fmt.Errorf("spend %d from %s: %w", amount, pool, domain.ErrInsufficientFunds)
		}
		p.SpendableXP -= amount
	case domain.PoolGold:
		if p.Gold < amount {
			return fmt.Errorf("spend %d from %s: %w", amount, pool, domain.ErrInsufficientFunds)
		}
		p.Gold -= amount
	default:
		return fmt.Errorf("spend from %q: %w", pool, domain.ErrUnknownPool)
	}

	if err := l.db.SaveProgress(p); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	metrics.SpendableBalance.Set(float64(p.SpendableXP))
	metrics.GoldBalance.Set(float64(p.Gold))
	return nil
}

// CanSpend reports whether a pool holds at least amount.
func (l *Ledger) CanSpend(pool domain.Pool, amount int64) (bool, error) {
	p, err := l.db.LoadProgress()
	if err != nil {
		return false, err
	}
	switch pool {
	case domain.PoolSpendable:
		return p.SpendableXP >= amount, nil
	case domain.PoolGold:
		return p.Gold >= amount, nil
	}
	return false, domain.ErrUnknownPool
}

// ToggleMastery flips the frozen flag on a sub-category and returns the
// new state. Mastered categories reject new task creation.
func (l *Ledger) ToggleMastery(category string) (bool, error) {
	p, err := l.db.LoadProgress()
	if err != nil {
		return false, err
	}

	if p.IsMastered(category) {
		kept := p.Mastered[:0]
		for _, c := range p.Mastered {
			if c != category {
				kept = append(kept, c)
			}
		}
		p.Mastered = kept
	} else {
		p.Mastered = append(p.Mastered, category)
	}

	if err := l.db.SaveProgress(p); err != nil {
		return false, err
	}
	return p.IsMastered(category), nil
}
