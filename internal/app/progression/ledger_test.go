package progression_test

import (
	"errors"
	"testing"

	"github.com/Puneet-Ratnu/murim/internal/app/notify"
	"github.com/Puneet-Ratnu/murim/internal/app/progression"
	"github.com/Puneet-Ratnu/murim/internal/domain"
	"github.com/Puneet-Ratnu/murim/internal/infra/sqlite"
)

// testDB creates a temporary SQLite database for testing.
func testDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dir := t.TempDir()
	db, err := sqlite.Open(dir)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// fixedBuffs is a stub multiplier source.
type fixedBuffs float64

func (f fixedBuffs) Multiplier() float64 { return float64(f) }

func newLedger(t *testing.T, db *sqlite.DB, buffs progression.Buffs) *progression.Ledger {
	t.Helper()
	return progression.NewLedger(db, buffs, notify.NewService(db))
}

func TestGrantXP_SingleLevelUp(t *testing.T) {
	db := testDB(t)
	l := newLedger(t, db, nil)

	res, err := l.GrantXP(2500, domain.XPTask)
	if err != nil {
		t.Fatalf("grant: %v", err)
	}
	if res.Amount != 2500 {
		t.Errorf("amount = %d, want 2500", res.Amount)
	}
	if res.Level != 2 || !res.LeveledUp {
		t.Errorf("level = %d leveledUp = %v, want 2/true", res.Level, res.LeveledUp)
	}

	p, _ := l.Progress()
	if p.XP != 1500 {
		t.Errorf("remaining xp = %d, want 1500", p.XP)
	}
	if p.SpendableXP != 2500 {
		t.Errorf("spendable = %d, want 2500 (never consumed by leveling)", p.SpendableXP)
	}
}

func TestGrantXP_MultiLevelCascade(t *testing.T) {
	db := testDB(t)
	l := newLedger(t, db, nil)

	// 6000 XP from level 1: costs 1000+2000+3000, lands exactly on level 4.
	res, err := l.GrantXP(6000, domain.XPEssay)
	if err != nil {
		t.Fatalf("grant: %v", err)
	}
	if res.Level != 4 {
		t.Errorf("level = %d, want 4", res.Level)
	}
	p, _ := l.Progress()
	if p.XP != 0 {
		t.Errorf("xp = %d, want 0", p.XP)
	}
}

func TestGrantXP_MultiplierFloors(t *testing.T) {
	db := testDB(t)
	l := newLedger(t, db, fixedBuffs(2))

	res, err := l.GrantXP(50.5, domain.XPStreak)
	if err != nil {
		t.Fatalf("grant: %v", err)
	}
	if res.Amount != 101 {
		t.Errorf("amount = %d, want floor(50.5*2) = 101", res.Amount)
	}
}

func TestGrantXP_FractionalBaseFloors(t *testing.T) {
	db := testDB(t)
	l := newLedger(t, db, nil)

	// Streak milestone base for a 30-day streak: 500*30/7 = 2142.857...
	res, err := l.GrantXP(500*30.0/7, domain.XPStreak)
	if err != nil {
		t.Fatalf("grant: %v", err)
	}
	if res.Amount != 2142 {
		t.Errorf("amount = %d, want 2142", res.Amount)
	}
}

func TestGrantXP_MaxLevelCap(t *testing.T) {
	db := testDB(t)
	l := newLedger(t, db, nil)

	p, _ := db.LoadProgress()
	p.Level = domain.MaxLevel
	if err := db.SaveProgress(p); err != nil {
		t.Fatalf("seed: %v", err)
	}

	res, err := l.GrantXP(2_000_000, domain.XPTask)
	if err != nil {
		t.Fatalf("grant: %v", err)
	}
	if res.Level != domain.MaxLevel || res.LeveledUp {
		t.Errorf("level = %d leveledUp = %v, want cap at %d with no level-up",
			res.Level, res.LeveledUp, domain.MaxLevel)
	}
	got, _ := l.Progress()
	if got.XP != 2_000_000 {
		t.Errorf("surplus xp = %d, want retained 2000000", got.XP)
	}
}

func TestGrantXP_RejectsNonPositive(t *testing.T) {
	db := testDB(t)
	l := newLedger(t, db, nil)

	if _, err := l.GrantXP(0, domain.XPTask); !errors.Is(err, domain.ErrNonPositiveAmount) {
		t.Errorf("err = %v, want ErrNonPositiveAmount", err)
	}
	if _, err := l.GrantXP(-5, domain.XPTask); !errors.Is(err, domain.ErrNonPositiveAmount) {
		t.Errorf("err = %v, want ErrNonPositiveAmount", err)
	}
}

func TestSpend(t *testing.T) {
	db := testDB(t)
	l := newLedger(t, db, nil)

	if _, err := l.GrantXP(500, domain.XPTask); err != nil {
		t.Fatalf("grant: %v", err)
	}
	if err := l.GrantGold(60); err != nil {
		t.Fatalf("grant gold: %v", err)
	}

	if err := l.Spend(domain.PoolSpendable, 300); err != nil {
		t.Fatalf("spend: %v", err)
	}
	if err := l.Spend(domain.PoolGold, 50); err != nil {
		t.Fatalf("spend gold: %v", err)
	}

	p, _ := l.Progress()
	if p.SpendableXP != 200 || p.Gold != 10 {
		t.Errorf("balances = %d/%d, want 200/10", p.SpendableXP, p.Gold)
	}
}

func TestSpend_InsufficientLeavesStateUnchanged(t *testing.T) {
	db := testDB(t)
	l := newLedger(t, db, nil)

	if _, err := l.GrantXP(100, domain.XPTask); err != nil {
		t.Fatalf("grant: %v", err)
	}

	err := l.Spend(domain.PoolSpendable, 101)
	if !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("err = %v, want ErrInsufficientFunds", err)
	}
	p, _ := l.Progress()
	if p.SpendableXP != 100 {
		t.Errorf("balance = %d, want untouched 100", p.SpendableXP)
	}
}

func TestSpend_UnknownPool(t *testing.T) {
	db := testDB(t)
	l := newLedger(t, db, nil)

	if err := l.Spend(domain.Pool("karma"), 1); !errors.Is(err, domain.ErrUnknownPool) {
		t.Errorf("err = %v, want ErrUnknownPool", err)
	}
}

func TestToggleMastery(t *testing.T) {
	db := testDB(t)
	l := newLedger(t, db, nil)

	on, err := l.ToggleMastery("Polity")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !on {
		t.Error("first toggle should master")
	}

	off, err := l.ToggleMastery("Polity")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if off {
		t.Error("second toggle should unmaster")
	}
}
