// Package metrics provides Prometheus metrics for Murim.
// Counters and gauges for the progression ledger, study activity,
// crafting, the revision lottery, the narrative client, and health.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Progression ────────────────────────────────────────────────────────────

// XPGranted tracks effective XP granted by source.
var XPGranted = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "murim",
	Name:      "xp_granted_total",
	Help:      "Total effective XP granted, by source.",
}, []string{"source"})

// Level tracks the current cultivator level.
var Level = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "murim",
	Name:      "level_current",
	Help:      "Current level.",
})

// SpendableBalance tracks the spendable XP balance.
var SpendableBalance = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "murim",
	Name:      "spendable_xp_balance",
	Help:      "Current spendable XP balance.",
})

// GoldBalance tracks the gold balance.
var GoldBalance = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "murim",
	Name:      "gold_balance",
	Help:      "Current gold balance.",
})

// StreakDays tracks the consecutive-day streak.
var StreakDays = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "murim",
	Name:      "streak_days",
	Help:      "Current consecutive-day study streak.",
})

// ─── Activity ───────────────────────────────────────────────────────────────

// TasksCompleted tracks completed study tasks by category.
var TasksCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "murim",
	Name:      "tasks_completed_total",
	Help:      "Total completed study tasks, by category.",
}, []string{"category"})

// RevisionDraws tracks revision lottery outcomes by prize.
var RevisionDraws = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "murim",
	Name:      "revision_draws_total",
	Help:      "Total revision lottery draws, by prize.",
}, []string{"prize"})

// ItemsForged tracks crafted items by rarity.
var ItemsForged = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "murim",
	Name:      "items_forged_total",
	Help:      "Total items produced by the forge, by rarity.",
}, []string{"rarity"})

// ─── Narrative ──────────────────────────────────────────────────────────────

// NarrativeRequests tracks narrative generation calls by kind and outcome.
var NarrativeRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "murim",
	Name:      "narrative_requests_total",
	Help:      "Narrative generation requests, by kind and outcome.",
}, []string{"kind", "outcome"})

// ─── Health ─────────────────────────────────────────────────────────────────

// HealthCheckStatus tracks health check results (1=healthy, 0=unhealthy).
var HealthCheckStatus = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "murim",
	Name:      "health_check_status",
	Help:      "Health check result per component (1=healthy, 0=unhealthy).",
}, []string{"check"})
