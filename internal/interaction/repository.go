package interaction

import (
	"context"
	"sync"
)

// Repository defines the storage operations for interactions. Upsert is
// keyed by the natural key (vem_hash, pergunta_id, totem_id).
type Repository interface {
	// Upsert stores the interaction, replacing any existing record with
	// the same natural key.
	Upsert(ctx context.Context, i *Interaction) error

	// List returns all recorded interactions.
	List(ctx context.Context) ([]*Interaction, error)

	// CountByAnswer groups the interactions of one question by answer
	// value and returns the counts (the store's grouped aggregation).
	CountByAnswer(ctx context.Context, questionID string) (map[string]int64, error)

	// HasInteracted reports whether the user answered the question at
	// any totem.
	HasInteracted(ctx context.Context, userHash, questionID string) (bool, error)

	// DeleteByQuestion removes every interaction for a question.
	DeleteByQuestion(ctx context.Context, questionID string) error

	// DeleteAll removes every interaction.
	DeleteAll(ctx context.Context) error
}

// naturalKey identifies at most one interaction record.
type naturalKey struct {
	userHash   string
	questionID string
	totemID    string
}

// InMemoryRepository is an in-memory implementation of Repository used
// for testing and development.
type InMemoryRepository struct {
	mu           sync.RWMutex
	interactions map[naturalKey]*Interaction
}

// NewInMemoryRepository creates an empty in-memory interaction repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{interactions: make(map[naturalKey]*Interaction)}
}

// Upsert stores the interaction, replacing any existing record with the
// same natural key.
func (r *InMemoryRepository) Upsert(_ context.Context, i *Interaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *i
	r.interactions[naturalKey{i.UserHash, i.QuestionID, i.TotemID}] = &cp
	return nil
}

// List returns all recorded interactions.
func (r *InMemoryRepository) List(_ context.Context) ([]*Interaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*Interaction, 0, len(r.interactions))
	for _, i := range r.interactions {
		cp := *i
		result = append(result, &cp)
	}
	return result, nil
}

// CountByAnswer groups one question's interactions by answer value.
func (r *InMemoryRepository) CountByAnswer(_ context.Context, questionID string) (map[string]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	counts := make(map[string]int64)
	for key, i := range r.interactions {
		if key.questionID == questionID {
			counts[i.Answer]++
		}
	}
	return counts, nil
}

// HasInteracted reports whether the user answered the question at any totem.
func (r *InMemoryRepository) HasInteracted(_ context.Context, userHash, questionID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for key := range r.interactions {
		if key.userHash == userHash && key.questionID == questionID {
			return true, nil
		}
	}
	return false, nil
}

// DeleteByQuestion removes every interaction for a question.
func (r *InMemoryRepository) DeleteByQuestion(_ context.Context, questionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key := range r.interactions {
		if key.questionID == questionID {
			delete(r.interactions, key)
		}
	}
	return nil
}

// DeleteAll removes every interaction.
func (r *InMemoryRepository) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.interactions = make(map[naturalKey]*Interaction)
	return nil
}
