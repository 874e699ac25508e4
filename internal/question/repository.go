package question

import (
	"context"
	"sync"
)

// Repository defines the storage operations for questions. Lookups
// return (nil, nil) when nothing matches; the service layer translates
// that to ErrNotFound.
type Repository interface {
	// Save stores or replaces a question keyed by pergunta_id.
	Save(ctx context.Context, q *Question) error

	// GetByID retrieves a question by ID, or (nil, nil) if absent.
	GetByID(ctx context.Context, id string) (*Question, error)

	// Latest returns the question with the most recent creation time,
	// or (nil, nil) when no questions exist.
	Latest(ctx context.Context) (*Question, error)

	// List returns all questions.
	List(ctx context.Context) ([]*Question, error)

	// Delete removes a question. Deleting an absent question is a no-op.
	Delete(ctx context.Context, id string) error

	// DeleteAll removes every question.
	DeleteAll(ctx context.Context) error
}

// InMemoryRepository is an in-memory implementation of Repository used
// for testing and development.
type InMemoryRepository struct {
	mu        sync.RWMutex
	questions map[string]*Question
}

// NewInMemoryRepository creates an empty in-memory question repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{questions: make(map[string]*Question)}
}

// Save stores or replaces a question keyed by pergunta_id.
func (r *InMemoryRepository) Save(_ context.Context, q *Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *q
	r.questions[cp.QuestionID] = &cp
	return nil
}

// GetByID retrieves a question by ID, or (nil, nil) if absent.
func (r *InMemoryRepository) GetByID(_ context.Context, id string) (*Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	q, ok := r.questions[id]
	if !ok {
		return nil, nil
	}
	cp := *q
	return &cp, nil
}

// Latest returns the most recently created question, or (nil, nil).
func (r *InMemoryRepository) Latest(_ context.Context) (*Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var latest *Question
	for _, q := range r.questions {
		if latest == nil || q.CreatedAt.After(latest.CreatedAt) {
			latest = q
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}

// List returns all questions.
func (r *InMemoryRepository) List(_ context.Context) ([]*Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*Question, 0, len(r.questions))
	for _, q := range r.questions {
		cp := *q
		result = append(result, &cp)
	}
	return result, nil
}

// Delete removes a question. Deleting an absent question is a no-op.
func (r *InMemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.questions, id)
	return nil
}

// DeleteAll removes every question.
func (r *InMemoryRepository) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.questions = make(map[string]*Question)
	return nil
}
