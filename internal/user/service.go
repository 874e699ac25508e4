package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/onnwee/praca/internal/validate"
)

// Service errors.
var (
	// ErrNotFound indicates the referenced user does not exist.
	ErrNotFound = errors.New("user not found")

	// ErrAlreadyExists indicates a create for a hash already on record.
	ErrAlreadyExists = errors.New("user already exists")

	// ErrAlreadyRegistered indicates a completion attempt for a user
	// whose registration is already complete. The transition is one-way.
	ErrAlreadyRegistered = errors.New("registration already complete")

	// ErrEmptyHash indicates an operation without a user hash.
	ErrEmptyHash = errors.New("vem_hash is required")
)

// Profile field length bounds.
const (
	minNameLength = 2
	maxNameLength = 100
)

// RegistrationInput carries the profile fields that complete a user's
// registration.
type RegistrationInput struct {
	UserHash  string `json:"vem_hash"`
	Name      string `json:"nome"`
	Email     string `json:"email"`
	BirthDate string `json:"data_nascimento"`
}

// ProfileUpdate is the explicit allow-list of updatable profile fields.
// Nil fields are left untouched; an update can therefore never null an
// existing value. vem_hash, pontuacao and data_criacao are not here:
// the hash is the identity, points only move through the ledger, and
// the creation marker is immutable.
type ProfileUpdate struct {
	Name      *string `json:"nome,omitempty"`
	Email     *string `json:"email,omitempty"`
	BirthDate *string `json:"data_nascimento,omitempty"`
}

// Service implements user operations over an injected repository.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a user service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// Verify is the QR-code flow: it returns the user for the scanned hash,
// creating a minimal record when the hash is unknown. The caller reads
// cadastro_completo to decide between the registration form and the
// regular app screen.
func (s *Service) Verify(ctx context.Context, userHash string) (*User, error) {
	if userHash == "" {
		return nil, ErrEmptyHash
	}

	existing, err := s.repo.GetByHash(ctx, userHash)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	u := New(userHash)
	if err := s.repo.Save(ctx, u); err != nil {
		return nil, err
	}
	s.logger.Info("user created on first contact", "vem_hash", userHash)
	return u, nil
}

// Create registers a user with just a hash, failing when the hash is
// already on record. Kept for the manual flow; Verify is the normal path.
func (s *Service) Create(ctx context.Context, userHash string) (*User, error) {
	if userHash == "" {
		return nil, ErrEmptyHash
	}
	existing, err := s.repo.GetByHash(ctx, userHash)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyExists, userHash)
	}

	u := New(userHash)
	if err := s.repo.Save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Get returns the user with the given hash, or ErrNotFound.
func (s *Service) Get(ctx context.Context, userHash string) (*User, error) {
	u, err := s.repo.GetByHash(ctx, userHash)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, userHash)
	}
	return u, nil
}

// List returns all users.
func (s *Service) List(ctx context.Context) ([]*User, error) {
	return s.repo.List(ctx)
}

// Delete removes a user, or returns ErrNotFound.
func (s *Service) Delete(ctx context.Context, userHash string) error {
	u, err := s.repo.GetByHash(ctx, userHash)
	if err != nil {
		return err
	}
	if u == nil {
		return fmt.Errorf("%w: %s", ErrNotFound, userHash)
	}
	return s.repo.Delete(ctx, userHash)
}

// CompleteRegistration fills in the profile of an existing user and
// marks the registration complete. The transition is one-way: a second
// completion attempt fails with ErrAlreadyRegistered and leaves the
// stored profile untouched.
func (s *Service) CompleteRegistration(ctx context.Context, in RegistrationInput) (*User, error) {
	u, err := s.Get(ctx, in.UserHash)
	if err != nil {
		return nil, err
	}
	if u.RegistrationComplete {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyRegistered, in.UserHash)
	}

	name, err := validate.Length(in.Name, minNameLength, maxNameLength)
	if err != nil {
		return nil, fmt.Errorf("invalid nome: %w", err)
	}
	email, err := validate.Email(in.Email)
	if err != nil {
		return nil, fmt.Errorf("invalid email: %w", err)
	}
	birthDate, err := validate.BirthDate(in.BirthDate, time.Now())
	if err != nil {
		return nil, fmt.Errorf("invalid data_nascimento: %w", err)
	}

	u.Name = &name
	u.Email = &email
	u.BirthDate = &birthDate
	u.RegistrationComplete = true
	u.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, u); err != nil {
		return nil, err
	}
	s.logger.Info("registration completed", "vem_hash", u.UserHash)
	return u, nil
}

// UpdateProfile merges the allow-listed fields into an existing user.
// Each present field is validated before the merge; absent fields are
// left as they are.
func (s *Service) UpdateProfile(ctx context.Context, userHash string, in ProfileUpdate) (*User, error) {
	u, err := s.Get(ctx, userHash)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name, err := validate.Length(*in.Name, minNameLength, maxNameLength)
		if err != nil {
			return nil, fmt.Errorf("invalid nome: %w", err)
		}
		u.Name = &name
	}
	if in.Email != nil {
		email, err := validate.Email(*in.Email)
		if err != nil {
			return nil, fmt.Errorf("invalid email: %w", err)
		}
		u.Email = &email
	}
	if in.BirthDate != nil {
		birthDate, err := validate.BirthDate(*in.BirthDate, time.Now())
		if err != nil {
			return nil, fmt.Errorf("invalid data_nascimento: %w", err)
		}
		u.BirthDate = &birthDate
	}

	u.UpdatedAt = time.Now().UTC()
	if err := s.repo.Save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
