package sqlite

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/Puneet-Ratnu/murim/internal/domain"
)

// ─── Pets ───────────────────────────────────────────────────────────────────

// UpsertPet inserts or updates a pet record.
func (d *DB) UpsertPet(p domain.Pet) error {
	accessories, err := json.Marshal(p.Accessories)
	if err != nil {
		return err
	}
	_, err = d.db.Exec(
		`INSERT INTO pets (id, name, species, stage, level, xp, max_xp, accessories, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			name=excluded.name,
			stage=excluded.stage,
			level=excluded.level,
			xp=excluded.xp,
			max_xp=excluded.max_xp,
			accessories=excluded.accessories`,
		p.ID, p.Name, string(p.Species), string(p.Stage), p.Level, p.XP, p.MaxXP,
		string(accessories), p.CreatedAt.Unix(),
	)
	return err
}

// GetPet retrieves a single pet by ID.
func (d *DB) GetPet(id string) (*domain.Pet, error) {
	row := d.db.QueryRow(
		`SELECT id, name, species, stage, level, xp, max_xp, accessories, created_at
		 FROM pets WHERE id = ?`, id,
	)
	return scanPet(row)
}

// ListPets returns all pets ordered by creation.
func (d *DB) ListPets() ([]domain.Pet, error) {
	rows, err := d.db.Query(
		`SELECT id, name, species, stage, level, xp, max_xp, accessories, created_at
		 FROM pets ORDER BY created_at ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pets []domain.Pet
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		pets = append(pets, *p)
	}
	return pets, rows.Err()
}

// SetActivePet stores the active-pet pointer.
func (d *DB) SetActivePet(id string) error {
	return d.SetProgress("active_pet", id)
}

// ActivePet returns the active-pet pointer ("" if none).
func (d *DB) ActivePet() (string, error) {
	return d.GetProgress("active_pet")
}

func scanPet(s scanner) (*domain.Pet, error) {
	var p domain.Pet
	var species, stage, accessories string
	var createdAt int64

	err := s.Scan(&p.ID, &p.Name, &species, &stage, &p.Level, &p.XP, &p.MaxXP,
		&accessories, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	p.Species = domain.PetSpecies(species)
	p.Stage = domain.PetStage(stage)
	p.CreatedAt = time.Unix(createdAt, 0)
	_ = json.Unmarshal([]byte(accessories), &p.Accessories)
	return &p, nil
}
