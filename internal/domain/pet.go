package domain

import "time"

// PetStage is the growth stage. Stages never regress.
type PetStage string

const (
	StageEgg       PetStage = "Egg"
	StageHatchling PetStage = "Hatchling"
	StageAdult     PetStage = "Adult"
	StageMythic    PetStage = "Mythic"
)

// Stage level thresholds.
const (
	HatchlingLevel = 5
	AdultLevel     = 20
	MythicLevel    = 50
)

// PetSpecies tags a companion.
type PetSpecies string

const (
	SpeciesPhoenix PetSpecies = "Phoenix"
	SpeciesDragon  PetSpecies = "Dragon"
	SpeciesTurtle  PetSpecies = "Turtle"
	SpeciesTiger   PetSpecies = "Tiger"
	SpeciesFox     PetSpecies = "Fox"
	SpeciesQilin   PetSpecies = "Qilin"
)

// Pet is a companion leveled by feeding. MaxXP grows geometrically
// (×1.5 per level, floored). Accessories is a set; duplicates are ignored.
type Pet struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Species     PetSpecies `json:"species"`
	Stage       PetStage   `json:"stage"`
	Level       int        `json:"level"`
	XP          int64      `json:"xp"`
	MaxXP       int64      `json:"max_xp"`
	Accessories []string   `json:"accessories"`
	CreatedAt   time.Time  `json:"created_at"`
}

// NewPetMaxXP is the feeding threshold for a freshly hatched egg.
const NewPetMaxXP = 100

// HasAccessory reports whether the pet already wears the named accessory.
func (p Pet) HasAccessory(name string) bool {
	for _, a := range p.Accessories {
		if a == name {
			return true
		}
	}
	return false
}
