package sqlite

import (
	"time"

	"github.com/Puneet-Ratnu/murim/internal/domain"
)

// ─── Hobby Logs ─────────────────────────────────────────────────────────────

// InsertHobbyLog records a leisure session.
func (d *DB) InsertHobbyLog(h domain.HobbyLog) error {
	_, err := d.db.Exec(
		`INSERT INTO hobby_logs (id, type, title, content, date) VALUES (?, ?, ?, ?, ?)`,
		h.ID, string(h.Type), h.Title, h.Content, h.Date.Unix(),
	)
	return err
}

// ListHobbyLogs returns all hobby logs, newest first.
func (d *DB) ListHobbyLogs() ([]domain.HobbyLog, error) {
	rows, err := d.db.Query(
		`SELECT id, type, title, content, date FROM hobby_logs ORDER BY date DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.HobbyLog
	for rows.Next() {
		var h domain.HobbyLog
		var typ string
		var date int64
		if err := rows.Scan(&h.ID, &typ, &h.Title, &h.Content, &date); err != nil {
			return nil, err
		}
		h.Type = domain.HobbyType(typ)
		h.Date = time.Unix(date, 0)
		out = append(out, h)
	}
	return out, rows.Err()
}

// ─── Mains Logs ─────────────────────────────────────────────────────────────

// AddMainsCount accumulates answers written on a calendar day. Same-day
// logs merge into one row.
func (d *DB) AddMainsCount(date string, count int) error {
	_, err := d.db.Exec(
		`INSERT INTO mains_logs (date, count) VALUES (?, ?)
		 ON CONFLICT(date) DO UPDATE SET count = count + excluded.count`,
		date, count,
	)
	return err
}

// ListMainsLogs returns all mains logs, newest first.
func (d *DB) ListMainsLogs() ([]domain.MainsLog, error) {
	rows, err := d.db.Query(`SELECT date, count FROM mains_logs ORDER BY date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.MainsLog
	for rows.Next() {
		var m domain.MainsLog
		if err := rows.Scan(&m.Date, &m.Count); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// ─── Mood Logs ──────────────────────────────────────────────────────────────

// InsertMoodEntry records a clock-in/clock-out mood.
func (d *DB) InsertMoodEntry(m domain.MoodEntry) error {
	_, err := d.db.Exec(
		`INSERT INTO mood_logs (date, kind, mood, advice, personality) VALUES (?, ?, ?, ?, ?)`,
		m.Date, m.Kind, string(m.Mood), m.Advice, m.Personality,
	)
	return err
}

// HasMoodEntry reports whether a mood of the given kind exists for a date.
func (d *DB) HasMoodEntry(date, kind string) (bool, error) {
	var n int
	err := d.db.QueryRow(
		`SELECT COUNT(*) FROM mood_logs WHERE date = ? AND kind = ?`, date, kind,
	).Scan(&n)
	return n > 0, err
}

// ─── Chat History ───────────────────────────────────────────────────────────

// InsertChatMessage appends one mentor-chat turn.
func (d *DB) InsertChatMessage(m domain.ChatMessage) error {
	_, err := d.db.Exec(
		`INSERT INTO chat_history (id, sender, text, timestamp) VALUES (?, ?, ?, ?)`,
		m.ID, m.Sender, m.Text, m.Timestamp.Unix(),
	)
	return err
}

// ListChatHistory returns the chat transcript in order.
func (d *DB) ListChatHistory() ([]domain.ChatMessage, error) {
	rows, err := d.db.Query(
		`SELECT id, sender, text, timestamp FROM chat_history ORDER BY timestamp ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ChatMessage
	for rows.Next() {
		var m domain.ChatMessage
		var ts int64
		if err := rows.Scan(&m.ID, &m.Sender, &m.Text, &ts); err != nil {
			return nil, err
		}
		m.Timestamp = time.Unix(ts, 0)
		out = append(out, m)
	}
	return out, rows.Err()
}
