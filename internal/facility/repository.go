package facility

import (
	"context"
	"sync"
)

// Repository defines the storage operations for facilities. GetByID
// returns (nil, nil) when no facility matches; the service layer
// translates that to ErrNotFound.
type Repository interface {
	// Save stores or replaces a facility keyed by servico_id.
	Save(ctx context.Context, f *Facility) error

	// GetByID retrieves a facility, or (nil, nil) if absent.
	GetByID(ctx context.Context, id string) (*Facility, error)

	// List returns facilities, restricted to active ones when
	// activeOnly is set.
	List(ctx context.Context, activeOnly bool) ([]*Facility, error)

	// ListByType returns the active facilities of the given type.
	ListByType(ctx context.Context, facilityType string) ([]*Facility, error)

	// CountByType returns the number of active facilities per type.
	CountByType(ctx context.Context) (map[string]int64, error)

	// Delete removes a facility. Deleting an absent facility is a no-op.
	Delete(ctx context.Context, id string) error

	// DeleteAll removes every facility.
	DeleteAll(ctx context.Context) error
}

// InMemoryRepository is an in-memory implementation of Repository used
// for testing and development.
type InMemoryRepository struct {
	mu         sync.RWMutex
	facilities map[string]*Facility
}

// NewInMemoryRepository creates an empty in-memory facility repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{facilities: make(map[string]*Facility)}
}

// Save stores or replaces a facility keyed by servico_id.
func (r *InMemoryRepository) Save(_ context.Context, f *Facility) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := cloneFacility(f)
	r.facilities[cp.FacilityID] = cp
	return nil
}

// GetByID retrieves a facility, or (nil, nil) if absent.
func (r *InMemoryRepository) GetByID(_ context.Context, id string) (*Facility, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.facilities[id]
	if !ok {
		return nil, nil
	}
	return cloneFacility(f), nil
}

// List returns facilities, restricted to active ones when activeOnly is set.
func (r *InMemoryRepository) List(_ context.Context, activeOnly bool) ([]*Facility, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*Facility, 0, len(r.facilities))
	for _, f := range r.facilities {
		if activeOnly && !f.Active {
			continue
		}
		result = append(result, cloneFacility(f))
	}
	return result, nil
}

// ListByType returns the active facilities of the given type.
func (r *InMemoryRepository) ListByType(_ context.Context, facilityType string) ([]*Facility, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []*Facility
	for _, f := range r.facilities {
		if f.Active && f.Type == facilityType {
			result = append(result, cloneFacility(f))
		}
	}
	return result, nil
}

// CountByType returns the number of active facilities per type.
func (r *InMemoryRepository) CountByType(_ context.Context) (map[string]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	counts := make(map[string]int64)
	for _, f := range r.facilities {
		if f.Active {
			counts[f.Type]++
		}
	}
	return counts, nil
}

// Delete removes a facility. Deleting an absent facility is a no-op.
func (r *InMemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.facilities, id)
	return nil
}

// DeleteAll removes every facility.
func (r *InMemoryRepository) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.facilities = make(map[string]*Facility)
	return nil
}

// cloneFacility deep-copies a facility so callers never share pointer
// fields with the stored record.
func cloneFacility(f *Facility) *Facility {
	cp := *f
	if f.Address != nil {
		v := *f.Address
		cp.Address = &v
	}
	if f.Phone != nil {
		v := *f.Phone
		cp.Phone = &v
	}
	if f.OpeningHours != nil {
		v := *f.OpeningHours
		cp.OpeningHours = &v
	}
	if f.Description != nil {
		v := *f.Description
		cp.Description = &v
	}
	return &cp
}
