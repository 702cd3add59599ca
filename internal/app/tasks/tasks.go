// Package tasks manages the study task lifecycle: creation against the
// syllabus catalog, completion, and removal.
package tasks

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Puneet-Ratnu/murim/internal/app/progression"
	"github.com/Puneet-Ratnu/murim/internal/domain"
	"github.com/Puneet-Ratnu/murim/internal/infra/sqlite"
)

// Service owns study tasks.
type Service struct {
	db         *sqlite.DB
	dispatcher *progression.Dispatcher
}

// NewService creates a task service.
func NewService(db *sqlite.DB, dispatcher *progression.Dispatcher) *Service {
	return &Service{db: db, dispatcher: dispatcher}
}

// Create adds a new task. Creation in a mastered sub-category is rejected.
func (s *Service) Create(title string, category domain.TaskCategory, subCategory string, now time.Time) (*domain.Task, error) {
	p, err := s.db.LoadProgress()
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}
	if p.IsMastered(subCategory) {
		return nil, fmt.Errorf("sub-category %s: %w", subCategory, domain.ErrCategoryMastered)
	}

	t := domain.Task{
		ID:          uuid.NewString(),
		Title:       title,
		Category:    category,
		SubCategory: subCategory,
		CreatedAt:   now,
	}
	if err := s.db.InsertTask(t); err != nil {
		return nil, fmt.Errorf("store task: %w", err)
	}
	return &t, nil
}

// Get returns one task, or ErrTaskNotFound.
func (s *Service) Get(id string) (*domain.Task, error) {
	t, err := s.db.GetTask(id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("task %s: %w", id, domain.ErrTaskNotFound)
	}
	return t, nil
}

// List returns all tasks ordered by creation.
func (s *Service) List() ([]domain.Task, error) {
	return s.db.ListTasks()
}

// Complete marks a task done and pays its rewards. Only the first
// completion pays; completing an already-complete task is a no-op.
func (s *Service) Complete(id string, now time.Time) (*domain.Task, error) {
	t, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if t.Completed {
		return t, nil
	}

	t.Completed = true
	t.CompletedAt = now
	if err := s.db.SetTaskCompleted(id, true, now); err != nil {
		return nil, fmt.Errorf("complete task: %w", err)
	}

	if err := s.dispatcher.TaskCompleted(*t); err != nil {
		return nil, fmt.Errorf("task reward: %w", err)
	}
	return t, nil
}

// Uncomplete clears the completion stamp. Rewards already paid are not
// reversed.
func (s *Service) Uncomplete(id string) (*domain.Task, error) {
	t, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if !t.Completed {
		return t, nil
	}

	t.Completed = false
	t.CompletedAt = time.Time{}
	if err := s.db.SetTaskCompleted(id, false, time.Time{}); err != nil {
		return nil, fmt.Errorf("uncomplete task: %w", err)
	}
	return t, nil
}

// Delete removes a task and its revision history.
func (s *Service) Delete(id string) error {
	return s.db.DeleteTask(id)
}
