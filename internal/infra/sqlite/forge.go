package sqlite

import (
	"database/sql"
	"time"

	"github.com/Puneet-Ratnu/murim/internal/domain"
)

// ─── Materials ──────────────────────────────────────────────────────────────

// GetMaterial retrieves one material by ID.
func (d *DB) GetMaterial(id string) (*domain.Material, error) {
	var m domain.Material
	err := d.db.QueryRow(
		`SELECT id, name, count, source FROM materials WHERE id = ?`, id,
	).Scan(&m.ID, &m.Name, &m.Count, &m.Source)
	if err == sql.ErrNoRows {
		return nil, domain.ErrMaterialNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListMaterials returns the full material pool.
func (d *DB) ListMaterials() ([]domain.Material, error) {
	rows, err := d.db.Query(`SELECT id, name, count, source FROM materials ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Material
	for rows.Next() {
		var m domain.Material
		if err := rows.Scan(&m.ID, &m.Name, &m.Count, &m.Source); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// AdjustMaterial changes a material count by delta. A negative delta that
// would underflow leaves the count unchanged and reports the underflow.
func (d *DB) AdjustMaterial(id string, delta int) error {
	result, err := d.db.Exec(
		`UPDATE materials SET count = count + ? WHERE id = ? AND count + ? >= 0`,
		delta, id, delta,
	)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		if _, err := d.GetMaterial(id); err != nil {
			return err
		}
		return domain.ErrMaterialUnderflow
	}
	return nil
}

// ─── Crafted Items ──────────────────────────────────────────────────────────

// InsertItem stores a newly crafted item.
func (d *DB) InsertItem(it domain.CraftedItem) error {
	_, err := d.db.Exec(
		`INSERT INTO items (id, name, rarity, acquired_at, equipped) VALUES (?, ?, ?, ?, ?)`,
		it.ID, it.Name, string(it.Rarity), it.AcquiredAt.Unix(), it.Equipped,
	)
	return err
}

// ListItems returns all items, oldest first.
func (d *DB) ListItems() ([]domain.CraftedItem, error) {
	rows, err := d.db.Query(
		`SELECT id, name, rarity, acquired_at, equipped FROM items ORDER BY acquired_at ASC, id ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.CraftedItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *it)
	}
	return out, rows.Err()
}

// CountItems returns how many items exist in total.
func (d *DB) CountItems() (int, error) {
	var n int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM items`).Scan(&n)
	return n, err
}

// CountItemsByRarity returns how many items of a rarity are held.
func (d *DB) CountItemsByRarity(r domain.Rarity) (int, error) {
	var n int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM items WHERE rarity = ?`, string(r)).Scan(&n)
	return n, err
}

// ConsumeOldestByRarity deletes the n oldest items of a rarity and returns
// how many were actually removed.
func (d *DB) ConsumeOldestByRarity(r domain.Rarity, n int) (int64, error) {
	result, err := d.db.Exec(
		`DELETE FROM items WHERE id IN (
			SELECT id FROM items WHERE rarity = ? ORDER BY acquired_at ASC, id ASC LIMIT ?
		)`, string(r), n,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func scanItem(s scanner) (*domain.CraftedItem, error) {
	var it domain.CraftedItem
	var rarity string
	var acquiredAt int64
	err := s.Scan(&it.ID, &it.Name, &rarity, &acquiredAt, &it.Equipped)
	if err != nil {
		return nil, err
	}
	it.Rarity = domain.Rarity(rarity)
	it.AcquiredAt = time.Unix(acquiredAt, 0)
	return &it, nil
}
