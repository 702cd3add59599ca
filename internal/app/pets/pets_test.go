package pets_test

import (
	"errors"
	"testing"
	"time"

	"github.com/Puneet-Ratnu/murim/internal/app/notify"
	"github.com/Puneet-Ratnu/murim/internal/app/pets"
	"github.com/Puneet-Ratnu/murim/internal/domain"
	"github.com/Puneet-Ratnu/murim/internal/infra/sqlite"
)

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

type fixedBuffs float64

func (f fixedBuffs) Multiplier() float64 { return float64(f) }

func newService(t *testing.T, db *sqlite.DB, buffs pets.Buffs, atLeast bool) *pets.Service {
	t.Helper()
	return pets.NewService(db, buffs, notify.NewService(db), atLeast)
}

func adopt(t *testing.T, svc *pets.Service) *domain.Pet {
	t.Helper()
	p, err := svc.Adopt("Hwalan", domain.SpeciesPhoenix, time.Date(2025, 7, 1, 10, 0, 0, 0, time.Local))
	if err != nil {
		t.Fatalf("adopt: %v", err)
	}
	return p
}

func TestAdopt_FirstPetBecomesActive(t *testing.T) {
	db := testDB(t)
	svc := newService(t, db, nil, false)

	p := adopt(t, svc)
	if p.Stage != domain.StageEgg || p.Level != 1 || p.MaxXP != domain.NewPetMaxXP {
		t.Errorf("fresh pet = stage %s level %d maxXP %d", p.Stage, p.Level, p.MaxXP)
	}

	active, err := svc.Active()
	if err != nil {
		t.Fatalf("active: %v", err)
	}
	if active == nil || active.ID != p.ID {
		t.Error("first adopted pet should be active")
	}
}

func TestAdopt_SecondPetDoesNotStealActive(t *testing.T) {
	db := testDB(t)
	svc := newService(t, db, nil, false)

	first := adopt(t, svc)
	if _, err := svc.Adopt("Bi-Ryong", domain.SpeciesDragon, time.Now()); err != nil {
		t.Fatalf("adopt second: %v", err)
	}

	active, _ := svc.Active()
	if active.ID != first.ID {
		t.Error("active pet should remain the first")
	}
}

func TestFeed_BelowThresholdAccumulates(t *testing.T) {
	db := testDB(t)
	svc := newService(t, db, nil, false)
	p := adopt(t, svc)

	got, err := svc.Feed(p.ID, 90)
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if got.Level != 1 || got.XP != 90 {
		t.Errorf("pet = level %d xp %d, want 1/90", got.Level, got.XP)
	}
}

func TestFeed_LevelUpCarriesRemainderAndScalesThreshold(t *testing.T) {
	db := testDB(t)
	svc := newService(t, db, nil, false)
	p := adopt(t, svc)

	if _, err := svc.Feed(p.ID, 90); err != nil {
		t.Fatalf("feed: %v", err)
	}
	got, err := svc.Feed(p.ID, 30)
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if got.Level != 2 || got.XP != 20 {
		t.Errorf("pet = level %d xp %d, want 2/20", got.Level, got.XP)
	}
	if got.MaxXP != 150 {
		t.Errorf("maxXP = %d, want floor(100*1.5) = 150", got.MaxXP)
	}
}

func TestFeed_MultiplierApplies(t *testing.T) {
	db := testDB(t)
	svc := newService(t, db, fixedBuffs(2), false)
	p := adopt(t, svc)

	got, err := svc.Feed(p.ID, 60)
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	// 60*2 = 120 >= 100, level up with 20 left over.
	if got.Level != 2 || got.XP != 20 {
		t.Errorf("pet = level %d xp %d, want 2/20", got.Level, got.XP)
	}
}

// XP needed to go from level 1 to exactly level 5 with zero left over:
// 100 + 150 + 225 + 337 = 812.
const xpToLevel5 = 812

func TestFeed_ExactStagePromotion(t *testing.T) {
	db := testDB(t)
	svc := newService(t, db, nil, false)
	p := adopt(t, svc)

	got, err := svc.Feed(p.ID, xpToLevel5)
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if got.Level != 5 || got.XP != 0 {
		t.Fatalf("pet = level %d xp %d, want exactly 5/0", got.Level, got.XP)
	}
	if got.Stage != domain.StageHatchling {
		t.Errorf("stage = %s, want Hatchling on exact landing", got.Stage)
	}
}

func TestFeed_ExactModeSkipsOvershotStage(t *testing.T) {
	db := testDB(t)
	svc := newService(t, db, nil, false)
	p := adopt(t, svc)

	// Level 5→6 costs 505 more, so this lands on level 6, skipping the
	// exact level-5 check.
	got, err := svc.Feed(p.ID, xpToLevel5+505)
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if got.Level != 6 {
		t.Fatalf("level = %d, want 6", got.Level)
	}
	if got.Stage != domain.StageEgg {
		t.Errorf("stage = %s, want Egg (exact mode skips overshoot)", got.Stage)
	}
}

func TestFeed_AtLeastModePromotesOvershoot(t *testing.T) {
	db := testDB(t)
	svc := newService(t, db, nil, true)
	p := adopt(t, svc)

	got, err := svc.Feed(p.ID, xpToLevel5+505)
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if got.Level != 6 {
		t.Fatalf("level = %d, want 6", got.Level)
	}
	if got.Stage != domain.StageHatchling {
		t.Errorf("stage = %s, want Hatchling in at-least mode", got.Stage)
	}
}

func TestFeed_UnknownPet(t *testing.T) {
	db := testDB(t)
	svc := newService(t, db, nil, false)

	if _, err := svc.Feed("ghost", 100); !errors.Is(err, domain.ErrPetNotFound) {
		t.Errorf("err = %v, want ErrPetNotFound", err)
	}
}

func TestFeedActive_NoActivePetIsSilent(t *testing.T) {
	db := testDB(t)
	svc := newService(t, db, nil, false)

	if err := svc.FeedActive(100); err != nil {
		t.Errorf("feed with no active pet should no-op, got %v", err)
	}
}

func TestFeedActive_FeedsTheActivePet(t *testing.T) {
	db := testDB(t)
	svc := newService(t, db, nil, false)
	p := adopt(t, svc)

	if err := svc.FeedActive(40); err != nil {
		t.Fatalf("feed active: %v", err)
	}
	got, _ := db.GetPet(p.ID)
	if got.XP != 40 {
		t.Errorf("xp = %d, want 40", got.XP)
	}
}

func TestAddAccessory_Deduplicates(t *testing.T) {
	db := testDB(t)
	svc := newService(t, db, nil, false)
	p := adopt(t, svc)

	if _, err := svc.AddAccessory(p.ID, "Jade Pendant"); err != nil {
		t.Fatalf("add: %v", err)
	}
	got, err := svc.AddAccessory(p.ID, "Jade Pendant")
	if err != nil {
		t.Fatalf("add dup: %v", err)
	}
	if len(got.Accessories) != 1 {
		t.Errorf("accessories = %v, want 1 entry", got.Accessories)
	}
}

func TestSetActive_UnknownPet(t *testing.T) {
	db := testDB(t)
	svc := newService(t, db, nil, false)

	if err := svc.SetActive("ghost"); !errors.Is(err, domain.ErrPetNotFound) {
		t.Errorf("err = %v, want ErrPetNotFound", err)
	}
}
