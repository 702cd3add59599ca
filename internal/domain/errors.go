package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency. Mutating operations
// re-validate and return these unchanged-state errors even when the caller
// pre-checked eligibility.

var (
	// Ledger errors
	ErrInsufficientFunds = errors.New("insufficient balance")
	ErrUnknownPool       = errors.New("unknown currency pool")
	ErrNonPositiveAmount = errors.New("amount must be positive")

	// Task errors
	ErrTaskNotFound     = errors.New("task not found")
	ErrCategoryMastered = errors.New("category is mastered — new tasks frozen")

	// Revision errors
	ErrRevisionNotDue   = errors.New("revision not due yet")
	ErrTaskNotCompleted = errors.New("task not completed — revision unavailable")

	// Forge errors
	ErrInsufficientMaterials = errors.New("insufficient materials to forge")
	ErrInsufficientItems     = errors.New("insufficient items to ascend")
	ErrMaterialNotFound      = errors.New("material not found")
	ErrMaterialUnderflow     = errors.New("material count cannot go negative")

	// Pet errors
	ErrPetNotFound = errors.New("pet not found")
	ErrNoActivePet = errors.New("no active pet selected")

	// Event window errors
	ErrNotEssayDay = errors.New("essays can only be submitted on Wednesdays")

	// Potion errors
	ErrPotionActive = errors.New("a potion is already active")
)
