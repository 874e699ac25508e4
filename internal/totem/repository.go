package totem

import (
	"context"
	"sync"
)

// Repository defines the storage operations for totems. GetByID returns
// (nil, nil) when no totem matches; the service layer translates that
// to ErrNotFound.
type Repository interface {
	// Save stores or replaces a totem keyed by totem_id.
	Save(ctx context.Context, t *Totem) error

	// GetByID retrieves a totem by its ID, or (nil, nil) if absent.
	GetByID(ctx context.Context, id string) (*Totem, error)

	// List returns all registered totems.
	List(ctx context.Context) ([]*Totem, error)

	// Delete removes a totem. Deleting an absent totem is a no-op.
	Delete(ctx context.Context, id string) error

	// DeleteAll removes every totem.
	DeleteAll(ctx context.Context) error
}

// InMemoryRepository is an in-memory implementation of Repository used
// for testing and development.
type InMemoryRepository struct {
	mu     sync.RWMutex
	totems map[string]*Totem
}

// NewInMemoryRepository creates an empty in-memory totem repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{totems: make(map[string]*Totem)}
}

// Save stores or replaces a totem keyed by totem_id.
func (r *InMemoryRepository) Save(_ context.Context, t *Totem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *t
	r.totems[cp.TotemID] = &cp
	return nil
}

// GetByID retrieves a totem by its ID, or (nil, nil) if absent.
func (r *InMemoryRepository) GetByID(_ context.Context, id string) (*Totem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.totems[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

// List returns all registered totems.
func (r *InMemoryRepository) List(_ context.Context) ([]*Totem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*Totem, 0, len(r.totems))
	for _, t := range r.totems {
		cp := *t
		result = append(result, &cp)
	}
	return result, nil
}

// Delete removes a totem. Deleting an absent totem is a no-op.
func (r *InMemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.totems, id)
	return nil
}

// DeleteAll removes every totem.
func (r *InMemoryRepository) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.totems = make(map[string]*Totem)
	return nil
}
