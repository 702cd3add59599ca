package tasks_test

import (
	"errors"
	"testing"
	"time"

	"github.com/Puneet-Ratnu/murim/internal/app/notify"
	"github.com/Puneet-Ratnu/murim/internal/app/progression"
	"github.com/Puneet-Ratnu/murim/internal/app/tasks"
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

func newService(t *testing.T, db *sqlite.DB) *tasks.Service {
	t.Helper()
	n := notify.NewService(db)
	ledger := progression.NewLedger(db, nil, n)
	return tasks.NewService(db, progression.NewDispatcher(db, ledger, n, nil))
}

func TestCreateAndGet(t *testing.T) {
	db := testDB(t)
	svc := newService(t, db)

	created, err := svc.Create("Read Laxmikanth Ch. 4", domain.CategoryGS, "Polity", time.Now())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.Get(created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != created.Title || got.Completed {
		t.Errorf("got %+v", got)
	}
}

func TestCreate_MasteredCategoryRejected(t *testing.T) {
	db := testDB(t)
	svc := newService(t, db)

	p, _ := db.LoadProgress()
	p.Mastered = []string{"Polity"}
	if err := db.SaveProgress(p); err != nil {
		t.Fatalf("seed: %v", err)
	}

	_, err := svc.Create("More Polity", domain.CategoryGS, "Polity", time.Now())
	if !errors.Is(err, domain.ErrCategoryMastered) {
		t.Errorf("err = %v, want ErrCategoryMastered", err)
	}
}

func TestComplete_PaysOnce(t *testing.T) {
	db := testDB(t)
	svc := newService(t, db)

	created, err := svc.Create("Answer writing drill", domain.CategoryOptional, "PSIR", time.Now())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	done, err := svc.Complete(created.ID, time.Now())
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if !done.Completed || done.CompletedAt.IsZero() {
		t.Error("task not stamped complete")
	}

	p, _ := db.LoadProgress()
	if p.SpendableXP != 100 || p.TotalTasks != 1 {
		t.Errorf("progress = %d xp / %d tasks, want 100/1", p.SpendableXP, p.TotalTasks)
	}

	// Completing again pays nothing.
	if _, err := svc.Complete(created.ID, time.Now()); err != nil {
		t.Fatalf("re-complete: %v", err)
	}
	p, _ = db.LoadProgress()
	if p.SpendableXP != 100 || p.TotalTasks != 1 {
		t.Errorf("re-completion paid again: %d xp / %d tasks", p.SpendableXP, p.TotalTasks)
	}
}

func TestUncomplete_NoRewardReversal(t *testing.T) {
	db := testDB(t)
	svc := newService(t, db)

	created, err := svc.Create("Map work", domain.CategoryGS, "Geography", time.Now())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Complete(created.ID, time.Now()); err != nil {
		t.Fatalf("complete: %v", err)
	}

	got, err := svc.Uncomplete(created.ID)
	if err != nil {
		t.Fatalf("uncomplete: %v", err)
	}
	if got.Completed || !got.CompletedAt.IsZero() {
		t.Errorf("task still stamped: %+v", got)
	}

	// The XP and counters paid on completion stay paid.
	p, _ := db.LoadProgress()
	if p.SpendableXP != 100 || p.TotalTasks != 1 {
		t.Errorf("rewards reversed: %d xp / %d tasks", p.SpendableXP, p.TotalTasks)
	}

	// Re-completing pays again: only the completed->true transition pays.
	if _, err := svc.Complete(created.ID, time.Now()); err != nil {
		t.Fatalf("re-complete: %v", err)
	}
	p, _ = db.LoadProgress()
	if p.SpendableXP != 200 || p.TotalTasks != 2 {
		t.Errorf("second transition unpaid: %d xp / %d tasks", p.SpendableXP, p.TotalTasks)
	}
}

func TestComplete_UnknownTask(t *testing.T) {
	db := testDB(t)
	svc := newService(t, db)

	if _, err := svc.Complete("ghost", time.Now()); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Errorf("err = %v, want ErrTaskNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	db := testDB(t)
	svc := newService(t, db)

	created, err := svc.Create("Temp", domain.CategoryGS, "History", time.Now())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(created.ID); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Errorf("err = %v, want ErrTaskNotFound after delete", err)
	}
}
