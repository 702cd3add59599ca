package revision_test

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/Puneet-Ratnu/murim/internal/app/notify"
	"github.com/Puneet-Ratnu/murim/internal/app/progression"
	"github.com/Puneet-Ratnu/murim/internal/app/revision"
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

func newService(t *testing.T, db *sqlite.DB) *revision.Service {
	t.Helper()
	n := notify.NewService(db)
	ledger := progression.NewLedger(db, nil, n)
	return revision.NewService(db, ledger, n, rand.New(rand.NewSource(42)))
}

func seedTask(t *testing.T, db *sqlite.DB, completedAt time.Time, revisions ...time.Time) domain.Task {
	t.Helper()
	task := domain.Task{
		ID:          "task-1",
		Title:       "Modern History Ch. 2",
		Category:    domain.CategoryGS,
		SubCategory: "History",
		Completed:   true,
		CreatedAt:   completedAt.Add(-time.Hour),
		CompletedAt: completedAt,
	}
	if err := db.InsertTask(task); err != nil {
		t.Fatalf("insert task: %v", err)
	}
	for _, r := range revisions {
		if err := db.AppendRevision(task.ID, r); err != nil {
			t.Fatalf("append revision: %v", err)
		}
	}
	task.Revisions = revisions
	return task
}

func TestDueDate_Intervals(t *testing.T) {
	completed := time.Date(2025, 7, 1, 14, 0, 0, 0, time.Local)
	midnight := time.Date(2025, 7, 1, 0, 0, 0, 0, time.Local)

	rev := func(n int) []time.Time {
		out := make([]time.Time, n)
		for i := range out {
			out[i] = completed.AddDate(0, 0, i+1)
		}
		return out
	}

	cases := []struct {
		name      string
		revisions []time.Time
		want      time.Time
	}{
		{"unreviewed: +1d from completion", nil, midnight.AddDate(0, 0, 1)},
		{"one revision: +2d from completion", rev(1), midnight.AddDate(0, 0, 2)},
		{"two revisions: +3d from completion", rev(2), midnight.AddDate(0, 0, 3)},
		{"three revisions: +7d from completion", rev(3), midnight.AddDate(0, 0, 7)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			task := domain.Task{Completed: true, CompletedAt: completed, Revisions: tc.revisions}
			if got := revision.DueDate(task); !got.Equal(tc.want) {
				t.Errorf("DueDate = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDueDate_FourPlusAnchorsOnLastCheckIn(t *testing.T) {
	completed := time.Date(2025, 7, 1, 14, 0, 0, 0, time.Local)
	last := time.Date(2025, 8, 10, 20, 30, 0, 0, time.Local)
	task := domain.Task{
		Completed:   true,
		CompletedAt: completed,
		Revisions: []time.Time{
			completed.AddDate(0, 0, 1),
			completed.AddDate(0, 0, 3),
			completed.AddDate(0, 0, 7),
			last,
		},
	}
	want := time.Date(2025, 8, 10, 0, 0, 0, 0, time.Local).AddDate(0, 0, 15)
	if got := revision.DueDate(task); !got.Equal(want) {
		t.Errorf("DueDate = %v, want %v (+15d from last check-in)", got, want)
	}
}

func TestDueDate_IncompleteTaskNeverDue(t *testing.T) {
	task := domain.Task{Completed: false}
	if !revision.DueDate(task).IsZero() {
		t.Error("incomplete task should have no due date")
	}
	if revision.IsDue(task, time.Now()) {
		t.Error("incomplete task should not be due")
	}
}

func TestDrawReward_Boundaries(t *testing.T) {
	cases := []struct {
		roll  float64
		label string
	}{
		{0.96, "Pot of Gold"},
		{0.951, "Pot of Gold"},
		{0.95, "Iron Ingot"}, // boundary is strict
		{0.81, "Iron Ingot"},
		{0.8, "Ancient Scripture"},
		{0.61, "Ancient Scripture"},
		{0.6, "Small Spirit Orb"},
		{0.0, "Small Spirit Orb"},
	}
	for _, tc := range cases {
		if got := revision.DrawReward(tc.roll); got.Label != tc.label {
			t.Errorf("DrawReward(%v) = %q, want %q", tc.roll, got.Label, tc.label)
		}
	}
}

func TestDrawReward_Payouts(t *testing.T) {
	gold := revision.DrawReward(0.99)
	if gold.Kind != domain.RewardGold || gold.Amount != 50 {
		t.Errorf("gold prize = %+v", gold)
	}
	iron := revision.DrawReward(0.9)
	if iron.Kind != domain.RewardItem || iron.Amount != 1 {
		t.Errorf("iron prize = %+v", iron)
	}
	scripture := revision.DrawReward(0.7)
	if scripture.Kind != domain.RewardXP || scripture.Amount != 500 {
		t.Errorf("scripture prize = %+v", scripture)
	}
	orb := revision.DrawReward(0.1)
	if orb.Kind != domain.RewardXP || orb.Amount != 100 {
		t.Errorf("orb prize = %+v", orb)
	}
}

func TestCheckIn_AppendsAndPays(t *testing.T) {
	db := testDB(t)
	svc := newService(t, db)

	completed := time.Date(2025, 7, 1, 14, 0, 0, 0, time.Local)
	task := seedTask(t, db, completed)

	now := completed.AddDate(0, 0, 2)
	reward, err := svc.CheckIn(task.ID, now)
	if err != nil {
		t.Fatalf("check in: %v", err)
	}
	if reward.Label == "" {
		t.Error("expected a drawn reward")
	}

	got, err := db.GetTask(task.ID)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if len(got.Revisions) != 1 {
		t.Errorf("revisions = %d, want 1", len(got.Revisions))
	}

	// XP and gold prizes both land somewhere observable.
	p, _ := db.LoadProgress()
	iron, _ := db.GetMaterial(domain.MaterialIron)
	if p.SpendableXP == 0 && p.Gold == 0 && iron.Count == 0 {
		t.Error("reward was drawn but nothing was credited")
	}
}

func TestCheckIn_NotDue(t *testing.T) {
	db := testDB(t)
	svc := newService(t, db)

	completed := time.Date(2025, 7, 1, 14, 0, 0, 0, time.Local)
	task := seedTask(t, db, completed)

	_, err := svc.CheckIn(task.ID, completed.Add(2*time.Hour))
	if !errors.Is(err, domain.ErrRevisionNotDue) {
		t.Errorf("err = %v, want ErrRevisionNotDue", err)
	}

	got, _ := db.GetTask(task.ID)
	if len(got.Revisions) != 0 {
		t.Errorf("revisions = %d, want none recorded", len(got.Revisions))
	}
}

func TestCheckIn_UnknownTask(t *testing.T) {
	db := testDB(t)
	svc := newService(t, db)

	_, err := svc.CheckIn("nope", time.Now())
	if !errors.Is(err, domain.ErrTaskNotFound) {
		t.Errorf("err = %v, want ErrTaskNotFound", err)
	}
}

func TestDue_FiltersByDateAndCompletion(t *testing.T) {
	db := testDB(t)
	svc := newService(t, db)

	completed := time.Date(2025, 7, 1, 14, 0, 0, 0, time.Local)
	seedTask(t, db, completed)

	incomplete := domain.Task{
		ID:        "task-2",
		Title:     "Unfinished",
		Category:  domain.CategoryGS,
		CreatedAt: completed,
	}
	if err := db.InsertTask(incomplete); err != nil {
		t.Fatalf("insert: %v", err)
	}

	due, err := svc.Due(completed.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("due: %v", err)
	}
	if len(due) != 1 || due[0].ID != "task-1" {
		t.Errorf("due = %v, want only the completed task", due)
	}

	due, _ = svc.Due(completed.Add(time.Hour))
	if len(due) != 0 {
		t.Errorf("due = %d tasks before the interval elapsed, want 0", len(due))
	}
}

func TestDrawReward_Distribution(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	counts := map[string]int{}
	const n = 100000
	for i := 0; i < n; i++ {
		counts[revision.DrawReward(rng.Float64()).Label]++
	}

	// Expected shares: 5% gold, 15% iron, 20% scripture, 60% orb.
	within := func(label string, want float64) {
		got := float64(counts[label]) / n
		if got < want-0.01 || got > want+0.01 {
			t.Errorf("%s share = %.3f, want ~%.2f", label, got, want)
		}
	}
	within("Pot of Gold", 0.05)
	within("Iron Ingot", 0.15)
	within("Ancient Scripture", 0.20)
	within("Small Spirit Orb", 0.60)
}
