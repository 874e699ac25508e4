package interaction

import (
	"context"
	"errors"
)

// ErrEmptyQuestionID indicates an operation was called without a
// question ID.
var ErrEmptyQuestionID = errors.New("pergunta_id is required")

// Service implements interaction operations over an injected
// repository. metrics may be nil when no registry is wired (tests).
type Service struct {
	repo    Repository
	metrics *Metrics
}

// NewService creates an interaction service.
func NewService(repo Repository, metrics *Metrics) *Service {
	return &Service{repo: repo, metrics: metrics}
}

// Register records a user's answer to a question at a totem. The write
// is an upsert on the natural key, so answering the same question twice
// at the same totem keeps exactly one record holding the latest answer.
func (s *Service) Register(ctx context.Context, userHash, questionID, totemID, answer string) (*Interaction, error) {
	i := &Interaction{
		UserHash:   userHash,
		QuestionID: questionID,
		TotemID:    totemID,
		Answer:     answer,
	}
	if err := i.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Upsert(ctx, i); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IncVote(i.Answer)
	}
	return i, nil
}

// List returns all recorded interactions.
func (s *Service) List(ctx context.Context) ([]*Interaction, error) {
	return s.repo.List(ctx)
}

// Score returns the percentage of "sim" and "nao" answers for a
// question. Both keys are always present; with no interactions both
// percentages are 0.
func (s *Service) Score(ctx context.Context, questionID string) (Score, error) {
	if questionID == "" {
		return Score{}, ErrEmptyQuestionID
	}
	counts, err := s.repo.CountByAnswer(ctx, questionID)
	if err != nil {
		return Score{}, err
	}
	return ComputeScore(counts), nil
}

// HasInteracted reports whether the user already answered the question,
// regardless of which totem the answer came from.
func (s *Service) HasInteracted(ctx context.Context, userHash, questionID string) (bool, error) {
	if userHash == "" || questionID == "" {
		return false, ErrMissingField
	}
	return s.repo.HasInteracted(ctx, userHash, questionID)
}

// DeleteByQuestion removes all interactions referencing a question.
// Called by the question service when a question is deleted.
func (s *Service) DeleteByQuestion(ctx context.Context, questionID string) error {
	if questionID == "" {
		return ErrEmptyQuestionID
	}
	return s.repo.DeleteByQuestion(ctx, questionID)
}
