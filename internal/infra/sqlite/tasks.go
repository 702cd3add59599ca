package sqlite

import (
	"database/sql"
	"time"

	"github.com/Puneet-Ratnu/murim/internal/domain"
)

// ─── Tasks ──────────────────────────────────────────────────────────────────

// InsertTask creates a new study task.
func (d *DB) InsertTask(t domain.Task) error {
	_, err := d.db.Exec(
		`INSERT INTO tasks (id, title, category, sub_category, completed, created_at, completed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Title, string(t.Category), t.SubCategory, t.Completed,
		t.CreatedAt.Unix(), nullableUnix(t.CompletedAt),
	)
	return err
}

// GetTask retrieves a task with its revision history.
func (d *DB) GetTask(id string) (*domain.Task, error) {
	row := d.db.QueryRow(
		`SELECT id, title, category, sub_category, completed, created_at, completed_at
		 FROM tasks WHERE id = ?`, id,
	)
	t, err := scanTask(row)
	if err != nil || t == nil {
		return t, err
	}
	t.Revisions, err = d.listRevisions(t.ID)
	return t, err
}

// ListTasks returns all tasks (with revision history) ordered by creation.
func (d *DB) ListTasks() ([]domain.Task, error) {
	rows, err := d.db.Query(
		`SELECT id, title, category, sub_category, completed, created_at, completed_at
		 FROM tasks ORDER BY created_at ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range tasks {
		tasks[i].Revisions, err = d.listRevisions(tasks[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return tasks, nil
}

// SetTaskCompleted stamps or clears the completion timestamp.
func (d *DB) SetTaskCompleted(id string, completed bool, at time.Time) error {
	result, err := d.db.Exec(
		`UPDATE tasks SET completed = ?, completed_at = ? WHERE id = ?`,
		completed, nullableUnix(at), id,
	)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// DeleteTask removes a task and (via cascade) its revision history.
func (d *DB) DeleteTask(id string) error {
	result, err := d.db.Exec(`DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// AppendRevision records a spaced-repetition check-in.
func (d *DB) AppendRevision(taskID string, at time.Time) error {
	_, err := d.db.Exec(
		`INSERT INTO revisions (task_id, checked_at) VALUES (?, ?)`,
		taskID, at.Unix(),
	)
	return err
}

// listRevisions returns check-in timestamps in chronological order.
func (d *DB) listRevisions(taskID string) ([]time.Time, error) {
	rows, err := d.db.Query(
		`SELECT checked_at FROM revisions WHERE task_id = ? ORDER BY checked_at ASC, id ASC`,
		taskID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []time.Time
	for rows.Next() {
		var ts int64
		if err := rows.Scan(&ts); err != nil {
			return nil, err
		}
		out = append(out, time.Unix(ts, 0))
	}
	return out, rows.Err()
}

func scanTask(s scanner) (*domain.Task, error) {
	var t domain.Task
	var category string
	var createdAt int64
	var completedAt sql.NullInt64

	err := s.Scan(&t.ID, &t.Title, &category, &t.SubCategory, &t.Completed,
		&createdAt, &completedAt)
	if err == sql.ErrNoRows {
		return nil, nil // Not found, no error
	}
	if err != nil {
		return nil, err
	}

	t.Category = domain.TaskCategory(category)
	t.CreatedAt = time.Unix(createdAt, 0)
	if completedAt.Valid {
		t.CompletedAt = time.Unix(completedAt.Int64, 0)
	}
	return &t, nil
}

func nullableUnix(t time.Time) sql.NullInt64 {
	if t.IsZero() {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.Unix(), Valid: true}
}
