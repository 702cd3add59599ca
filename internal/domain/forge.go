package domain

import "time"

// Material is a crafting resource. The set is fixed at install time and
// only counts change. Counts never go negative; operations that would
// underflow are rejected.
type Material struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Count  int    `json:"count"`
	Source string `json:"source"` // which activity drops it
}

// Canonical material IDs.
const (
	MaterialIron = "iron"
	MaterialFire = "fire"
	MaterialWood = "wood"
)

// DefaultMaterials is the pool seeded on first run.
func DefaultMaterials() []Material {
	return []Material{
		{ID: MaterialIron, Name: "Iron Ingot", Count: 0, Source: "GS"},
		{ID: MaterialFire, Name: "Fire Essence", Count: 0, Source: "Essay"},
		{ID: MaterialWood, Name: "Spirit Wood", Count: 0, Source: "Optional"},
	}
}

// Rarity is the ordered item tier.
type Rarity string

const (
	RarityHuman          Rarity = "Human"
	RarityEpic           Rarity = "Epic"
	RarityLegend         Rarity = "Legend"
	RarityDivine         Rarity = "Divine"
	RarityTranscendental Rarity = "Transcendental"
)

// CraftedItem is produced by the forge and consumed by ascension.
// Items are fungible within a rarity.
type CraftedItem struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Rarity     Rarity    `json:"rarity"`
	AcquiredAt time.Time `json:"acquired_at"`
	Equipped   bool      `json:"equipped"`
}

// Forge recipe and ascension threshold.
const (
	ForgeIronCost   = 5
	ForgeFireCost   = 5
	AscendHumanCost = 50
	HiddenDivineMin = 50 // Divine + Transcendental count for the hidden event
)
