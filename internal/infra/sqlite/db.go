// Package sqlite provides SQLite-based persistent storage for Murim.
// Uses WAL mode for crash-safe writes. Progress state lives in a key-value
// table; tasks, materials, items, pets, logs, and notifications have their
// own tables.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)

	"github.com/Puneet-Ratnu/murim/internal/domain"
)

// DB wraps a SQLite connection with WAL mode and migrations.
type DB struct {
	db *sql.DB
}

// Open creates or opens the SQLite database at dir/state.db.
// Enables WAL mode, foreign keys, and a 5-second busy timeout.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "state.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// SQLite is single-writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	d := &DB{db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if err := d.seedMaterials(); err != nil {
		db.Close()
		return nil, fmt.Errorf("seed materials: %w", err)
	}

	return d, nil
}

// Close cleanly shuts down the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Ping checks database connectivity.
func (d *DB) Ping() error {
	return d.db.Ping()
}

// migrate runs idempotent schema migrations.
func (d *DB) migrate() error {
	migrations := []string{
		// Progression ledger state (level, xp, currencies, streak, counters)
		`CREATE TABLE IF NOT EXISTS progress (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		// Study tasks
		`CREATE TABLE IF NOT EXISTS tasks (
			id           TEXT PRIMARY KEY,
			title        TEXT NOT NULL,
			category     TEXT NOT NULL,
			sub_category TEXT NOT NULL,
			completed    BOOLEAN DEFAULT 0,
			created_at   INTEGER NOT NULL,
			completed_at INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_category ON tasks(category, sub_category)`,

		// Spaced-repetition check-ins, append-only per task
		`CREATE TABLE IF NOT EXISTS revisions (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			task_id    TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
			checked_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_revisions_task ON revisions(task_id, checked_at)`,

		// Crafting materials (fixed pool, counts mutate)
		`CREATE TABLE IF NOT EXISTS materials (
			id     TEXT PRIMARY KEY,
			name   TEXT NOT NULL,
			count  INTEGER NOT NULL DEFAULT 0,
			source TEXT NOT NULL DEFAULT ''
		)`,

		// Forged items
		`CREATE TABLE IF NOT EXISTS items (
			id          TEXT PRIMARY KEY,
			name        TEXT NOT NULL,
			rarity      TEXT NOT NULL,
			acquired_at INTEGER NOT NULL,
			equipped    BOOLEAN DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_items_rarity ON items(rarity, acquired_at)`,

		// Companions
		`CREATE TABLE IF NOT EXISTS pets (
			id          TEXT PRIMARY KEY,
			name        TEXT NOT NULL,
			species     TEXT NOT NULL,
			stage       TEXT NOT NULL,
			level       INTEGER NOT NULL,
			xp          INTEGER NOT NULL,
			max_xp      INTEGER NOT NULL,
			accessories TEXT NOT NULL DEFAULT '[]',
			created_at  INTEGER NOT NULL
		)`,

		// Activity logs
		`CREATE TABLE IF NOT EXISTS hobby_logs (
			id      TEXT PRIMARY KEY,
			type    TEXT NOT NULL,
			title   TEXT NOT NULL,
			content TEXT NOT NULL DEFAULT '',
			date    INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS mains_logs (
			date  TEXT PRIMARY KEY,
			count INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS mood_logs (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			date        TEXT NOT NULL,
			kind        TEXT NOT NULL,
			mood        TEXT NOT NULL,
			advice      TEXT NOT NULL DEFAULT '',
			personality TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS chat_history (
			id        TEXT PRIMARY KEY,
			sender    TEXT NOT NULL,
			text      TEXT NOT NULL,
			timestamp INTEGER NOT NULL
		)`,

		// Notification log
		`CREATE TABLE IF NOT EXISTS notifications (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			type       TEXT NOT NULL,
			title      TEXT NOT NULL,
			body       TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			shown      BOOLEAN DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_notif_created ON notifications(created_at)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

// seedMaterials inserts the fixed material pool if missing.
func (d *DB) seedMaterials() error {
	for _, m := range domain.DefaultMaterials() {
		_, err := d.db.Exec(
			`INSERT OR IGNORE INTO materials (id, name, count, source) VALUES (?, ?, ?, ?)`,
			m.ID, m.Name, m.Count, m.Source,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// ─── Progress Key-Value ─────────────────────────────────────────────────────

// SetProgress stores a progress key-value pair.
func (d *DB) SetProgress(key, value string) error {
	_, err := d.db.Exec(
		`INSERT INTO progress (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value=excluded.value`,
		key, value,
	)
	return err
}

// GetProgress retrieves a progress value by key. Returns "" if not found.
func (d *DB) GetProgress(key string) (string, error) {
	var value string
	err := d.db.QueryRow(`SELECT value FROM progress WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

// LoadProgress reconstructs the full ledger state. Missing keys yield the
// fresh-install defaults (level 1, everything else zero).
func (d *DB) LoadProgress() (domain.Progress, error) {
	p := domain.Progress{Level: 1}

	rows, err := d.db.Query(`SELECT key, value FROM progress`)
	if err != nil {
		return p, err
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return p, err
		}
		switch key {
		case "level":
			p.Level, _ = strconv.Atoi(value)
		case "xp":
			p.XP, _ = strconv.ParseInt(value, 10, 64)
		case "spendable_xp":
			p.SpendableXP, _ = strconv.ParseInt(value, 10, 64)
		case "gold":
			p.Gold, _ = strconv.ParseInt(value, 10, 64)
		case "streak_days":
			p.StreakDays, _ = strconv.Atoi(value)
		case "last_session_date":
			p.LastSessionDate = value
		case "total_tasks":
			p.TotalTasks, _ = strconv.Atoi(value)
		case "daily_tasks":
			p.DailyTasks, _ = strconv.Atoi(value)
		case "weekly_tasks":
			p.WeeklyTasks, _ = strconv.Atoi(value)
		case "last_boss_date":
			p.LastBossDate = value
		case "mastered":
			_ = json.Unmarshal([]byte(value), &p.Mastered)
		}
	}
	if p.Level < 1 {
		p.Level = 1
	}
	return p, rows.Err()
}

// SaveProgress persists the full ledger state in one transaction, so a
// mutation either lands entirely or not at all.
func (d *DB) SaveProgress(p domain.Progress) error {
	mastered, err := json.Marshal(p.Mastered)
	if err != nil {
		return fmt.Errorf("marshal mastered: %w", err)
	}

	pairs := map[string]string{
		"level":             strconv.Itoa(p.Level),
		"xp":                strconv.FormatInt(p.XP, 10),
		"spendable_xp":      strconv.FormatInt(p.SpendableXP, 10),
		"gold":              strconv.FormatInt(p.Gold, 10),
		"streak_days":       strconv.Itoa(p.StreakDays),
		"last_session_date": p.LastSessionDate,
		"total_tasks":       strconv.Itoa(p.TotalTasks),
		"daily_tasks":       strconv.Itoa(p.DailyTasks),
		"weekly_tasks":      strconv.Itoa(p.WeeklyTasks),
		"last_boss_date":    p.LastBossDate,
		"mastered":          string(mastered),
	}

	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	for k, v := range pairs {
		if _, err := tx.Exec(
			`INSERT INTO progress (key, value) VALUES (?, ?)
			 ON CONFLICT(key) DO UPDATE SET value=excluded.value`, k, v,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("save %s: %w", k, err)
		}
	}
	return tx.Commit()
}

// ─── Helpers ────────────────────────────────────────────────────────────────

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}
