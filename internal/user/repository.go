package user

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Repository defines the storage operations for users. GetByHash
// returns (nil, nil) when no user matches; the service layer translates
// that to ErrNotFound. IncrementPoints is the one operation with an
// atomicity contract: the add-and-fetch must be a single linearizable
// step per user so concurrent increments never lose an update.
type Repository interface {
	// Save stores or replaces a user keyed by vem_hash.
	Save(ctx context.Context, u *User) error

	// GetByHash retrieves a user, or (nil, nil) if absent.
	GetByHash(ctx context.Context, userHash string) (*User, error)

	// List returns all users.
	List(ctx context.Context) ([]*User, error)

	// IncrementPoints atomically adds delta to the user's balance and
	// returns the new total. The balance floors at zero. Returns
	// ErrNotFound when the user does not exist.
	IncrementPoints(ctx context.Context, userHash string, delta int64) (int64, error)

	// Delete removes a user. Deleting an absent user is a no-op.
	Delete(ctx context.Context, userHash string) error

	// DeleteAll removes every user.
	DeleteAll(ctx context.Context) error
}

// InMemoryRepository is an in-memory implementation of Repository used
// for testing and development.
type InMemoryRepository struct {
	mu    sync.RWMutex
	users map[string]*User
}

// NewInMemoryRepository creates an empty in-memory user repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{users: make(map[string]*User)}
}

// Save stores or replaces a user keyed by vem_hash.
func (r *InMemoryRepository) Save(_ context.Context, u *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := cloneUser(u)
	r.users[cp.UserHash] = cp
	return nil
}

// GetByHash retrieves a user, or (nil, nil) if absent.
func (r *InMemoryRepository) GetByHash(_ context.Context, userHash string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[userHash]
	if !ok {
		return nil, nil
	}
	return cloneUser(u), nil
}

// List returns all users.
func (r *InMemoryRepository) List(_ context.Context) ([]*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*User, 0, len(r.users))
	for _, u := range r.users {
		result = append(result, cloneUser(u))
	}
	return result, nil
}

// IncrementPoints applies the add-and-fetch under a single mutex hold,
// mirroring the atomicity the Mongo implementation gets from its
// findOneAndUpdate pipeline.
func (r *InMemoryRepository) IncrementPoints(_ context.Context, userHash string, delta int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userHash]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNotFound, userHash)
	}
	u.Points += delta
	if u.Points < 0 {
		u.Points = 0
	}
	u.UpdatedAt = time.Now().UTC()
	return u.Points, nil
}

// Delete removes a user. Deleting an absent user is a no-op.
func (r *InMemoryRepository) Delete(_ context.Context, userHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, userHash)
	return nil
}

// DeleteAll removes every user.
func (r *InMemoryRepository) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = make(map[string]*User)
	return nil
}

// cloneUser deep-copies a user so callers never share pointer fields
// with the stored record.
func cloneUser(u *User) *User {
	cp := *u
	if u.Name != nil {
		v := *u.Name
		cp.Name = &v
	}
	if u.Email != nil {
		v := *u.Email
		cp.Email = &v
	}
	if u.BirthDate != nil {
		v := *u.BirthDate
		cp.BirthDate = &v
	}
	return &cp
}
