package totem

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound indicates the referenced totem does not exist.
var ErrNotFound = errors.New("totem not found")

// Service implements totem operations over an injected repository.
type Service struct {
	repo Repository
}

// NewService creates a totem service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a new totem at the given coordinates.
func (s *Service) Create(ctx context.Context, latitude, longitude float64) (*Totem, error) {
	t := New(latitude, longitude)
	if err := s.repo.Save(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// List returns all registered totems.
func (s *Service) List(ctx context.Context) ([]*Totem, error) {
	return s.repo.List(ctx)
}

// Get returns the totem with the given ID, or ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) (*Totem, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return t, nil
}

// Locate resolves a totem ID to its coordinates. Used by the facility
// proximity matcher to answer "what is near this totem".
func (s *Service) Locate(ctx context.Context, id string) (latitude, longitude float64, err error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return 0, 0, err
	}
	return t.Latitude, t.Longitude, nil
}

// Delete removes a totem, or returns ErrNotFound.
func (s *Service) Delete(ctx context.Context, id string) error {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if t == nil {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.repo.Delete(ctx, id)
}
