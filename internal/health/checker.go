// Package health provides periodic self-checks over the engine's state.
package health

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Puneet-Ratnu/murim/internal/domain"
	"github.com/Puneet-Ratnu/murim/internal/infra/metrics"
	"github.com/Puneet-Ratnu/murim/internal/infra/sqlite"
)

// Check defines a single health check.
type Check struct {
	Name    string
	CheckFn func(ctx context.Context) error
}

// Status represents the result of a health check.
type Status struct {
	Name      string    `json:"name"`
	Healthy   bool      `json:"healthy"`
	Error     string    `json:"error,omitempty"`
	CheckedAt time.Time `json:"checked_at"`
}

// Checker runs periodic health checks.
type Checker struct {
	mu       sync.RWMutex
	checks   []Check
	statuses []Status
	interval time.Duration
}

// NewChecker creates a checker over the game database: connectivity,
// ledger invariants, and material non-negativity.
func NewChecker(db *sqlite.DB, interval time.Duration) *Checker {
	return &Checker{
		interval: interval,
		checks: []Check{
			{
				Name: "sqlite",
				CheckFn: func(ctx context.Context) error {
					return db.Ping()
				},
			},
			{
				Name: "ledger",
				CheckFn: func(ctx context.Context) error {
					return checkLedger(db)
				},
			},
			{
				Name: "materials",
				CheckFn: func(ctx context.Context) error {
					return checkMaterials(db)
				},
			},
		},
	}
}

// Run starts the health check loop. Call in a goroutine.
func (c *Checker) Run(ctx context.Context) {
	c.runAll(ctx)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.runAll(ctx)
		}
	}
}

func (c *Checker) runAll(ctx context.Context) {
	statuses := make([]Status, len(c.checks))
	for i, check := range c.checks {
		s := Status{Name: check.Name, CheckedAt: time.Now()}
		if err := check.CheckFn(ctx); err != nil {
			s.Error = err.Error()
			metrics.HealthCheckStatus.WithLabelValues(check.Name).Set(0)
		} else {
			s.Healthy = true
			metrics.HealthCheckStatus.WithLabelValues(check.Name).Set(1)
		}
		statuses[i] = s
	}

	c.mu.Lock()
	c.statuses = statuses
	c.mu.Unlock()
}

// Statuses returns the latest health check results.
func (c *Checker) Statuses() []Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make([]Status, len(c.statuses))
	copy(result, c.statuses)
	return result
}

// IsHealthy returns true if all checks pass.
func (c *Checker) IsHealthy() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, s := range c.statuses {
		if !s.Healthy {
			return false
		}
	}
	return true
}

// ─── Check Implementations ──────────────────────────────────────────────────

func checkLedger(db *sqlite.DB) error {
	p, err := db.LoadProgress()
	if err != nil {
		return fmt.Errorf("load progress: %w", err)
	}
	if p.Level < 1 || p.Level > domain.MaxLevel {
		return fmt.Errorf("level %d out of range", p.Level)
	}
	if p.XP < 0 || p.SpendableXP < 0 || p.Gold < 0 {
		return fmt.Errorf("negative balance: xp=%d spendable=%d gold=%d", p.XP, p.SpendableXP, p.Gold)
	}
	return nil
}

func checkMaterials(db *sqlite.DB) error {
	materials, err := db.ListMaterials()
	if err != nil {
		return fmt.Errorf("list materials: %w", err)
	}
	for _, m := range materials {
		if m.Count < 0 {
			return fmt.Errorf("material %s has negative count %d", m.ID, m.Count)
		}
	}
	return nil
}
