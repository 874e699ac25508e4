package question

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Service errors.
var (
	// ErrNotFound indicates the referenced question does not exist.
	ErrNotFound = errors.New("question not found")

	// ErrEmptyText indicates a question was submitted without text.
	ErrEmptyText = errors.New("question text is required")
)

// InteractionDeleter removes all interactions that reference a
// question. Implemented by the interaction service so that deleting a
// question cascades without a package cycle.
type InteractionDeleter interface {
	DeleteByQuestion(ctx context.Context, questionID string) error
}

// Service implements question operations over an injected repository.
type Service struct {
	repo         Repository
	interactions InteractionDeleter
	logger       *slog.Logger
}

// NewService creates a question service. interactions may be nil in
// tests that do not exercise deletion.
func NewService(repo Repository, interactions InteractionDeleter, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, interactions: interactions, logger: logger}
}

// Create registers a new question.
func (s *Service) Create(ctx context.Context, text string) (*Question, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}
	q := New(text)
	if err := s.repo.Save(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

// List returns all questions.
func (s *Service) List(ctx context.Context) ([]*Question, error) {
	return s.repo.List(ctx)
}

// Get returns the question with the given ID, or ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) (*Question, error) {
	q, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return q, nil
}

// Current returns the question totems should display: the one with the
// most recent creation marker. ErrNotFound when no questions exist.
func (s *Service) Current(ctx context.Context) (*Question, error) {
	q, err := s.repo.Latest(ctx)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, fmt.Errorf("%w: no questions registered", ErrNotFound)
	}
	return q, nil
}

// Delete removes a question and cascades to every interaction that
// references it. Interactions are removed first so a failure between
// the two steps never leaves interactions pointing at a live question.
func (s *Service) Delete(ctx context.Context, id string) error {
	q, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if q == nil {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	if s.interactions != nil {
		if err := s.interactions.DeleteByQuestion(ctx, id); err != nil {
			return fmt.Errorf("failed to cascade interaction delete for question %s: %w", id, err)
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("question deleted", "pergunta_id", id)
	return nil
}
