// Package notify records celebratory and blocking events as (title, body)
// pairs. The engine only persists them; rendering is the frontend's job.
package notify

import (
	"log"
	"time"

	"github.com/Puneet-Ratnu/murim/internal/domain"
	"github.com/Puneet-Ratnu/murim/internal/infra/sqlite"
)

// Service persists notifications.
type Service struct {
	db *sqlite.DB
}

// NewService creates a notification service.
func NewService(db *sqlite.DB) *Service {
	return &Service{db: db}
}

// Notify records an event. A storage failure is logged, never propagated;
// a lost celebration must not abort the mutation that caused it.
func (s *Service) Notify(typ domain.NotificationType, title, body string) {
	if s == nil || s.db == nil {
		return
	}
	_, err := s.db.InsertNotification(domain.Notification{
		Type:      typ,
		Title:     title,
		Body:      body,
		CreatedAt: time.Now(),
	})
	if err != nil {
		log.Printf("[notify] drop %s notification: %v", typ, err)
	}
}

// Pending returns unshown notifications.
func (s *Service) Pending(limit int) ([]domain.Notification, error) {
	return s.db.ListPendingNotifications(limit)
}

// MarkShown marks a notification as shown.
func (s *Service) MarkShown(id int64) error {
	return s.db.MarkNotificationShown(id)
}
