// Package domain holds the pure types of the Murim progression engine.
// Domain types have no infrastructure dependency; services in internal/app
// mutate them and internal/infra/sqlite persists them.
package domain

// Leveling constants. The curve is linear-per-level: reaching the next
// level costs level × XPPerLevel, so level 1→2 costs 1000, 2→3 costs 2000.
const (
	MaxLevel   = 500
	XPPerLevel = 1000
)

// Boss window: Wednesday, noon to 3 PM (end exclusive).
const (
	BossStartHour = 12
	BossEndHour   = 15
)

// Progress is the single-user progression ledger.
// XP is level-bound and partially consumed on level-up; SpendableXP is the
// lifetime balance used by the shop and is never reduced by leveling.
type Progress struct {
	Level           int      `json:"level"`
	XP              int64    `json:"xp"`
	SpendableXP     int64    `json:"spendable_xp"`
	Gold            int64    `json:"gold"`
	StreakDays      int      `json:"streak_days"`
	LastSessionDate string   `json:"last_session_date"` // YYYY-MM-DD
	TotalTasks      int      `json:"total_tasks"`
	DailyTasks      int      `json:"daily_tasks"`
	WeeklyTasks     int      `json:"weekly_tasks"`
	LastBossDate    string   `json:"last_boss_date"` // YYYY-MM-DD, "" if never
	Mastered        []string `json:"mastered"`       // frozen sub-categories
}

// IsMastered reports whether a sub-category is frozen for new tasks.
func (p Progress) IsMastered(category string) bool {
	for _, c := range p.Mastered {
		if c == category {
			return true
		}
	}
	return false
}

// Pool names a spendable balance.
type Pool string

const (
	PoolSpendable Pool = "spendable" // lifetime XP currency, basic shop
	PoolGold      Pool = "gold"      // premium currency, potions only
)

// XPSource categorizes how XP was earned.
type XPSource string

const (
	XPTask      XPSource = "TASK_COMPLETED"
	XPEssay     XPSource = "ESSAY"
	XPMains     XPSource = "MAINS"
	XPHobby     XPSource = "HOBBY"
	XPStreak    XPSource = "STREAK_MILESTONE"
	XPRevision  XPSource = "REVISION"
	XPBossFight XPSource = "BOSS_FIGHT"
)

// GrantResult reports the outcome of an XP grant.
// LeveledUp is true at most once per grant no matter how many levels the
// grant crossed.
type GrantResult struct {
	Amount    int64 `json:"amount"` // effective amount after multiplier
	Level     int   `json:"level"`
	LeveledUp bool  `json:"leveled_up"`
}
