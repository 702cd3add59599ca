// Package forge implements crafting and ascension of equipment from
// accumulated study materials.
package forge

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Puneet-Ratnu/murim/internal/app/notify"
	"github.com/Puneet-Ratnu/murim/internal/domain"
	"github.com/Puneet-Ratnu/murim/internal/infra/metrics"
	"github.com/Puneet-Ratnu/murim/internal/infra/sqlite"
)

// Service is the crafting engine.
type Service struct {
	db     *sqlite.DB
	notify *notify.Service
}

// NewService creates a forge.
func NewService(db *sqlite.DB, n *notify.Service) *Service {
	return &Service{db: db, notify: n}
}

// Materials returns the material pool.
func (s *Service) Materials() ([]domain.Material, error) {
	return s.db.ListMaterials()
}

// Items returns the crafted inventory, oldest first.
func (s *Service) Items() ([]domain.CraftedItem, error) {
	return s.db.ListItems()
}

// AddMaterial grants raw materials from an external source.
func (s *Service) AddMaterial(id string, count int) error {
	if count <= 0 {
		return domain.ErrNonPositiveAmount
	}
	return s.db.AdjustMaterial(id, count)
}

// CanForge reports whether the forge recipe is affordable.
func (s *Service) CanForge() (bool, error) {
	iron, err := s.db.GetMaterial(domain.MaterialIron)
	if err != nil {
		return false, err
	}
	fire, err := s.db.GetMaterial(domain.MaterialFire)
	if err != nil {
		return false, err
	}
	return iron.Count >= domain.ForgeIronCost && fire.Count >= domain.ForgeFireCost, nil
}

// Forge consumes 5 Iron Ingots and 5 Fire Essences to craft a Human-rarity
// sword. The sword is numbered by the lifetime item count, so the first
// craft yields "Iron Sword 1".
func (s *Service) Forge(now time.Time) (*domain.CraftedItem, error) {
	ok, err := s.CanForge()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrInsufficientMaterials
	}

	if err := s.db.AdjustMaterial(domain.MaterialIron, -domain.ForgeIronCost); err != nil {
		return nil, fmt.Errorf("consume iron: %w", err)
	}
	if err := s.db.AdjustMaterial(domain.MaterialFire, -domain.ForgeFireCost); err != nil {
		return nil, fmt.Errorf("consume fire: %w", err)
	}

	total, err := s.db.CountItems()
	if err != nil {
		return nil, err
	}
	item := domain.CraftedItem{
		ID:         uuid.NewString(),
		Name:       fmt.Sprintf("Iron Sword %d", total+1),
		Rarity:     domain.RarityHuman,
		AcquiredAt: now,
	}
	if err := s.db.InsertItem(item); err != nil {
		return nil, fmt.Errorf("store item: %w", err)
	}

	metrics.ItemsForged.WithLabelValues(string(item.Rarity)).Inc()
	s.notify.Notify(domain.NotifyForge, "Forging Complete",
		fmt.Sprintf("The furnace cools. %s has been forged.", item.Name))
	return &item, nil
}

// CanAscend reports whether enough Human-rarity items exist to ascend.
func (s *Service) CanAscend() (bool, error) {
	n, err := s.db.CountItemsByRarity(domain.RarityHuman)
	if err != nil {
		return false, err
	}
	return n >= domain.AscendHumanCost, nil
}

// Ascend consumes 50 Human-rarity items (oldest first) and produces one
// Epic Azure Dragon Blade. If the combined Divine and Transcendental
// inventory has reached the hidden threshold, a one-off hidden event
// notification also fires.
func (s *Service) Ascend(now time.Time) (*domain.CraftedItem, error) {
	ok, err := s.CanAscend()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrInsufficientItems
	}

	consumed, err := s.db.ConsumeOldestByRarity(domain.RarityHuman, domain.AscendHumanCost)
	if err != nil {
		return nil, fmt.Errorf("consume items: %w", err)
	}
	if consumed < domain.AscendHumanCost {
		return nil, domain.ErrInsufficientItems
	}

	item := domain.CraftedItem{
		ID:         uuid.NewString(),
		Name:       "Azure Dragon Blade",
		Rarity:     domain.RarityEpic,
		AcquiredAt: now,
	}
	if err := s.db.InsertItem(item); err != nil {
		return nil, fmt.Errorf("store item: %w", err)
	}

	metrics.ItemsForged.WithLabelValues(string(item.Rarity)).Inc()
	s.notify.Notify(domain.NotifyAscension, "Ascension!",
		"Fifty blades melt into one. The Azure Dragon Blade answers your call.")

	if err := s.checkHiddenEvent(); err != nil {
		return &item, err
	}
	return &item, nil
}

func (s *Service) checkHiddenEvent() error {
	divine, err := s.db.CountItemsByRarity(domain.RarityDivine)
	if err != nil {
		return err
	}
	trans, err := s.db.CountItemsByRarity(domain.RarityTranscendental)
	if err != nil {
		return err
	}
	if divine+trans >= domain.HiddenDivineMin {
		s.notify.Notify(domain.NotifyHidden, "Hidden Event",
			"The heavens stir. Your arsenal has drawn the attention of something ancient.")
	}
	return nil
}
