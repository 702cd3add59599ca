// Package mentor runs the game-master persona: mood check-ins and the
// advice chat, backed by the narrative client and the chat transcript.
package mentor

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Puneet-Ratnu/murim/internal/domain"
	"github.com/Puneet-Ratnu/murim/internal/infra/narrative"
	"github.com/Puneet-Ratnu/murim/internal/infra/sqlite"
)

// Service is the mentor frontend.
type Service struct {
	db      *sqlite.DB
	client  *narrative.Client
	persona domain.MentorPersona
}

// NewService creates a mentor with a fixed persona for the session.
func NewService(db *sqlite.DB, client *narrative.Client, persona domain.MentorPersona) *Service {
	return &Service{db: db, client: client, persona: persona}
}

// Persona returns the active game-master persona.
func (s *Service) Persona() domain.MentorPersona {
	return s.persona
}

// ClockMood records a clock-in or clock-out mood and returns the mentor's
// advice. The second entry of the same kind on one day is rejected.
func (s *Service) ClockMood(ctx context.Context, mood domain.MoodType, kind string, now time.Time) (string, error) {
	date := domain.DateOf(now)
	exists, err := s.db.HasMoodEntry(date, kind)
	if err != nil {
		return "", err
	}
	if exists {
		return "", fmt.Errorf("mood already recorded for %s %s", date, kind)
	}

	advice := s.client.MoodAdvice(ctx, mood, s.persona)
	err = s.db.InsertMoodEntry(domain.MoodEntry{
		Date:        date,
		Kind:        kind,
		Mood:        mood,
		Advice:      advice,
		Personality: string(s.persona),
	})
	if err != nil {
		return "", fmt.Errorf("store mood: %w", err)
	}
	return advice, nil
}

// Chat sends one message to the mentor and appends both turns to the
// transcript.
func (s *Service) Chat(ctx context.Context, message string, now time.Time) (string, error) {
	history, err := s.db.ListChatHistory()
	if err != nil {
		return "", err
	}

	reply := s.client.MentorReply(ctx, history, message, s.persona)

	turns := []domain.ChatMessage{
		{ID: uuid.NewString(), Sender: "user", Text: message, Timestamp: now},
		{ID: uuid.NewString(), Sender: string(s.persona), Text: reply, Timestamp: now.Add(time.Millisecond)},
	}
	for _, t := range turns {
		if err := s.db.InsertChatMessage(t); err != nil {
			return "", fmt.Errorf("store chat turn: %w", err)
		}
	}
	return reply, nil
}

// History returns the full chat transcript.
func (s *Service) History() ([]domain.ChatMessage, error) {
	return s.db.ListChatHistory()
}
