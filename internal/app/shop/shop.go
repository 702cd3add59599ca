// Package shop sells consumables and gear. Potions cost gold; everything
// else costs spendable XP.
package shop

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Puneet-Ratnu/murim/internal/app/pets"
	"github.com/Puneet-Ratnu/murim/internal/app/potion"
	"github.com/Puneet-Ratnu/murim/internal/app/progression"
	"github.com/Puneet-Ratnu/murim/internal/domain"
)

// Catalog prices.
const (
	SpiritBerryCost  = 100
	HeavenlyMeatCost = 300

	// Food payouts: the cheap berry feeds 200 pet XP, anything pricier
	// feeds 800.
	berryFeedXP   = 200
	premiumFeedXP = 800
)

// MinorXPPotion is the stock elixir: 2x XP for ten minutes, 50 gold.
func MinorXPPotion() domain.Potion {
	return domain.Potion{
		Name:       "Minor XP Potion",
		Multiplier: 2,
		Duration:   10 * time.Minute,
		CostGold:   50,
	}
}

// Service handles purchases.
type Service struct {
	ledger *progression.Ledger
	pets   *pets.Service
	potion *potion.Tracker
}

// NewService creates a shop.
func NewService(ledger *progression.Ledger, p *pets.Service, t *potion.Tracker) *Service {
	return &Service{ledger: ledger, pets: p, potion: t}
}

// BuyPotion charges gold and activates the elixir. An already-active
// potion blocks the purchase before any gold is spent.
func (s *Service) BuyPotion(p domain.Potion, now time.Time) error {
	if s.potion.Active() != nil {
		return domain.ErrPotionActive
	}
	if err := s.ledger.Spend(domain.PoolGold, p.CostGold); err != nil {
		return err
	}
	p.ID = uuid.NewString()
	if err := s.potion.Activate(p, now); err != nil {
		return fmt.Errorf("activate potion: %w", err)
	}
	return nil
}

// BuyFood charges spendable XP and feeds the active companion. The berry
// tier feeds 200 XP; any pricier food feeds 800.
func (s *Service) BuyFood(cost int64) error {
	if err := s.ledger.Spend(domain.PoolSpendable, cost); err != nil {
		return err
	}
	feed := int64(premiumFeedXP)
	if cost == SpiritBerryCost {
		feed = berryFeedXP
	}
	return s.pets.FeedActive(feed)
}

// BuyAccessory charges spendable XP and equips the active companion.
func (s *Service) BuyAccessory(name string, cost int64) error {
	active, err := s.pets.Active()
	if err != nil {
		return err
	}
	if active == nil {
		return domain.ErrNoActivePet
	}
	if err := s.ledger.Spend(domain.PoolSpendable, cost); err != nil {
		return err
	}
	_, err = s.pets.AddAccessory(active.ID, name)
	return err
}
