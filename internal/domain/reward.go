package domain

import "time"

// RewardKind classifies a revision lottery prize.
type RewardKind string

const (
	RewardXP   RewardKind = "XP"
	RewardGold RewardKind = "GOLD"
	RewardItem RewardKind = "ITEM"
)

// Reward is a drawn lottery prize, returned to the caller for display.
type Reward struct {
	Kind   RewardKind `json:"kind"`
	Amount int64      `json:"amount"`
	Label  string     `json:"label"`
}

// NotificationType categorizes notifications.
type NotificationType string

const (
	NotifyLevelUp     NotificationType = "level_up"
	NotifyStreak      NotificationType = "streak"
	NotifyMilestone   NotificationType = "milestone"
	NotifyForge       NotificationType = "forge"
	NotifyAscension   NotificationType = "ascension"
	NotifyHidden      NotificationType = "hidden"
	NotifyBoss        NotificationType = "boss"
	NotifyPotion      NotificationType = "potion"
	NotifyRevision    NotificationType = "revision"
)

// Notification is a (title, body) pair emitted for celebratory or blocking
// events. Rendering is the caller's concern; the engine only records them.
type Notification struct {
	ID        int64            `json:"id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Body      string           `json:"body"`
	CreatedAt time.Time        `json:"created_at"`
	Shown     bool             `json:"shown"`
}
