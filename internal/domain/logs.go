package domain

import "time"

// HobbyType is the kind of leisure activity logged.
type HobbyType string

const (
	HobbyLanguage HobbyType = "Language"
	HobbyPainting HobbyType = "Painting"
	HobbyPoetry   HobbyType = "Poetry"
	HobbyManhwa   HobbyType = "Manhwa"
)

// HobbyLog records one leisure session. Every hobby grants the same flat XP
// regardless of type.
type HobbyLog struct {
	ID      string    `json:"id"`
	Type    HobbyType `json:"type"`
	Title   string    `json:"title"`
	Content string    `json:"content,omitempty"`
	Date    time.Time `json:"date"`
}

// MainsLog counts mains answers written on a calendar day. Logs for the
// same day merge into one row.
type MainsLog struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int    `json:"count"`
}

// MoodType is a self-reported mood.
type MoodType string

const (
	MoodMotivated MoodType = "Motivated"
	MoodTired     MoodType = "Tired"
	MoodAnxious   MoodType = "Anxious"
	MoodConfident MoodType = "Confident"
	MoodLost      MoodType = "Lost"
)

// MoodEntry records a clock-in/clock-out mood with the mentor's advice.
type MoodEntry struct {
	Date        string   `json:"date"` // YYYY-MM-DD
	Kind        string   `json:"kind"` // CLOCK_IN or CLOCK_OUT
	Mood        MoodType `json:"mood"`
	Advice      string   `json:"advice"`
	Personality string   `json:"personality"`
}

// ChatMessage is one turn of the mentor chat. Sender is "user" or the
// mentor persona name.
type ChatMessage struct {
	ID        string    `json:"id"`
	Sender    string    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// MentorPersona selects the narrative voice of the game master.
type MentorPersona string

const (
	PersonaOrthodox      MentorPersona = "ORTHODOX"
	PersonaUnorthodox    MentorPersona = "UNORTHODOX"
	PersonaHeavenlyDemon MentorPersona = "HEAVENLY_DEMON"
	PersonaCommander     MentorPersona = "COMMANDER"
)
