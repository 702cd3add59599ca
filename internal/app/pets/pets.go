// Package pets implements companion adoption, feeding, and growth.
package pets

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/Puneet-Ratnu/murim/internal/app/notify"
	"github.com/Puneet-Ratnu/murim/internal/domain"
	"github.com/Puneet-Ratnu/murim/internal/infra/sqlite"
)

// Buffs supplies the current XP multiplier (1 when no potion is active).
type Buffs interface {
	Multiplier() float64
}

// Service manages companions.
type Service struct {
	db     *sqlite.DB
	buffs  Buffs
	notify *notify.Service

	// atLeast switches stage promotion from exact level equality to a
	// level floor, so large feeds cannot skip a stage.
	atLeast bool
}

// NewService creates a pet service. buffs may be nil.
func NewService(db *sqlite.DB, buffs Buffs, n *notify.Service, atLeast bool) *Service {
	return &Service{db: db, buffs: buffs, notify: n, atLeast: atLeast}
}

// Adopt creates a new egg and makes it active if no pet is active yet.
func (s *Service) Adopt(name string, species domain.PetSpecies, now time.Time) (*domain.Pet, error) {
	p := domain.Pet{
		ID:        uuid.NewString(),
		Name:      name,
		Species:   species,
		Stage:     domain.StageEgg,
		Level:     1,
		XP:        0,
		MaxXP:     domain.NewPetMaxXP,
		CreatedAt: now,
	}
	if err := s.db.UpsertPet(p); err != nil {
		return nil, fmt.Errorf("store pet: %w", err)
	}

	active, err := s.db.ActivePet()
	if err != nil {
		return nil, err
	}
	if active == "" {
		if err := s.db.SetActivePet(p.ID); err != nil {
			return nil, err
		}
	}
	return &p, nil
}

// List returns all pets.
func (s *Service) List() ([]domain.Pet, error) {
	return s.db.ListPets()
}

// SetActive switches the active companion.
func (s *Service) SetActive(id string) error {
	p, err := s.db.GetPet(id)
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("pet %s: %w", id, domain.ErrPetNotFound)
	}
	return s.db.SetActivePet(id)
}

// Active returns the active companion, or nil if none is set.
func (s *Service) Active() (*domain.Pet, error) {
	id, err := s.db.ActivePet()
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, nil
	}
	return s.db.GetPet(id)
}

// Feed grants XP to a pet. The potion multiplier applies to the pet's
// grant independently of any ledger grant made for the same activity.
// Level-ups cascade while XP covers the threshold; each level multiplies
// the threshold by 1.5, floored. The growth stage is re-evaluated after
// the loop settles.
func (s *Service) Feed(id string, xp int64) (*domain.Pet, error) {
	if xp <= 0 {
		return nil, domain.ErrNonPositiveAmount
	}
	p, err := s.db.GetPet(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("pet %s: %w", id, domain.ErrPetNotFound)
	}

	mult := 1.0
	if s.buffs != nil {
		mult = s.buffs.Multiplier()
	}
	p.XP += int64(math.Floor(float64(xp) * mult))

	for p.XP >= p.MaxXP {
		p.XP -= p.MaxXP
		p.Level++
		p.MaxXP = int64(math.Floor(float64(p.MaxXP) * 1.5))
	}

	if next := s.stageFor(p.Level); next != "" && next != p.Stage {
		p.Stage = next
		s.notify.Notify(domain.NotifyMilestone, "Companion Evolved!",
			fmt.Sprintf("%s has grown into a %s.", p.Name, next))
	}

	if err := s.db.UpsertPet(*p); err != nil {
		return nil, fmt.Errorf("store pet: %w", err)
	}
	return p, nil
}

// FeedActive feeds the active companion. With no active companion the
// call silently succeeds, so reward spillover never fails an activity.
func (s *Service) FeedActive(xp int64) error {
	id, err := s.db.ActivePet()
	if err != nil {
		return err
	}
	if id == "" {
		return nil
	}
	_, err = s.Feed(id, xp)
	return err
}

// AddAccessory equips an accessory. Duplicates are ignored.
func (s *Service) AddAccessory(id, accessory string) (*domain.Pet, error) {
	p, err := s.db.GetPet(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("pet %s: %w", id, domain.ErrPetNotFound)
	}
	if p.HasAccessory(accessory) {
		return p, nil
	}
	p.Accessories = append(p.Accessories, accessory)
	if err := s.db.UpsertPet(*p); err != nil {
		return nil, err
	}
	return p, nil
}

// stageFor maps a level to the stage it promotes into, or "" when the
// level does not trigger a promotion. In exact mode only a landing
// precisely on a threshold promotes; in at-least mode any level at or
// past a threshold does.
func (s *Service) stageFor(level int) domain.PetStage {
	if s.atLeast {
		switch {
		case level >= domain.MythicLevel:
			return domain.StageMythic
		case level >= domain.AdultLevel:
			return domain.StageAdult
		case level >= domain.HatchlingLevel:
			return domain.StageHatchling
		}
		return ""
	}
	switch level {
	case domain.HatchlingLevel:
		return domain.StageHatchling
	case domain.AdultLevel:
		return domain.StageAdult
	case domain.MythicLevel:
		return domain.StageMythic
	}
	return ""
}
