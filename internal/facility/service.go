package facility

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
	// ErrNotFound indicates the referenced facility does not exist.
	ErrNotFound = errors.New("facility not found")

	// ErrInvalidCoordinates indicates a latitude outside [-90, 90] or a
	// longitude outside [-180, 180].
	ErrInvalidCoordinates = errors.New("invalid coordinates")

	// ErrEmptyType indicates a facility without a tipo.
	ErrEmptyType = errors.New("tipo is required")
)

// Facility field length bounds.
const (
	minNameLength = 2
	maxNameLength = 200

	maxOptionalLength = 500
)

// CreateInput carries the fields for registering a facility. Optional
// fields left blank are stored as absent.
type CreateInput struct {
	Name         string  `json:"nome"`
	Type         string  `json:"tipo"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Address      string  `json:"endereco"`
	Phone        string  `json:"telefone"`
	OpeningHours string  `json:"horario_funcionamento"`
	Description  string  `json:"descricao"`
}

// Update is the explicit allow-list of updatable facility fields. Nil
// fields are left untouched. servico_id and data_criacao are not here:
// the ID is derived from name and coordinates at creation time and the
// creation marker is immutable.
type Update struct {
	Name         *string  `json:"nome,omitempty"`
	Type         *string  `json:"tipo,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	Address      *string  `json:"endereco,omitempty"`
	Phone        *string  `json:"telefone,omitempty"`
	OpeningHours *string  `json:"horario_funcionamento,omitempty"`
	Description  *string  `json:"descricao,omitempty"`
	Active       *bool    `json:"ativo,omitempty"`
}

// Service implements facility operations over an injected repository.
type Service struct {
	repo    Repository
	logger  *slog.Logger
	metrics *Metrics
}

// NewService creates a facility service. metrics may be nil when import
// instrumentation is not wanted (tests).
func NewService(repo Repository, logger *slog.Logger, metrics *Metrics) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger, metrics: metrics}
}

// Create registers a facility. The ID is deterministic over name and
// coordinates, so creating the same facility twice overwrites the first
// record instead of duplicating it.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Facility, error) {
	name, err := validate.Length(in.Name, minNameLength, maxNameLength)
	if err != nil {
		return nil, fmt.Errorf("invalid nome: %w", err)
	}
	facilityType, err := validate.Length(in.Type, 1, maxNameLength)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmptyType, err)
	}
	if err := validateCoordinates(in.Latitude, in.Longitude); err != nil {
		return nil, err
	}

	f := New(name, facilityType, in.Latitude, in.Longitude)
	if f.Address, err = validate.Optional(in.Address, maxOptionalLength); err != nil {
		return nil, fmt.Errorf("invalid endereco: %w", err)
	}
	if f.Phone, err = validate.Optional(in.Phone, maxOptionalLength); err != nil {
		return nil, fmt.Errorf("invalid telefone: %w", err)
	}
	if f.OpeningHours, err = validate.Optional(in.OpeningHours, maxOptionalLength); err != nil {
		return nil, fmt.Errorf("invalid horario_funcionamento: %w", err)
	}
	if f.Description, err = validate.Optional(in.Description, maxOptionalLength); err != nil {
		return nil, fmt.Errorf("invalid descricao: %w", err)
	}

	if err := s.repo.Save(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// List returns facilities, active ones only when activeOnly is set.
func (s *Service) List(ctx context.Context, activeOnly bool) ([]*Facility, error) {
	return s.repo.List(ctx, activeOnly)
}

// Get returns the facility with the given ID, or ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) (*Facility, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return f, nil
}

// ByType returns the active facilities of the given type.
func (s *Service) ByType(ctx context.Context, facilityType string) ([]*Facility, error) {
	if facilityType == "" {
		return nil, ErrEmptyType
	}
	return s.repo.ListByType(ctx, facilityType)
}

// Update merges the allow-listed fields into an existing facility. Each
// present field is validated before the merge; the ID never changes,
// even when name or coordinates do.
func (s *Service) Update(ctx context.Context, id string, in Update) (*Facility, error) {
	f, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name, err := validate.Length(*in.Name, minNameLength, maxNameLength)
		if err != nil {
			return nil, fmt.Errorf("invalid nome: %w", err)
		}
		f.Name = name
	}
	if in.Type != nil {
		facilityType, err := validate.Length(*in.Type, 1, maxNameLength)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrEmptyType, err)
		}
		f.Type = facilityType
	}
	lat, lng := f.Latitude, f.Longitude
	if in.Latitude != nil {
		lat = *in.Latitude
	}
	if in.Longitude != nil {
		lng = *in.Longitude
	}
	if err := validateCoordinates(lat, lng); err != nil {
		return nil, err
	}
	f.Latitude, f.Longitude = lat, lng

	if in.Address != nil {
		if f.Address, err = validate.Optional(*in.Address, maxOptionalLength); err != nil {
			return nil, fmt.Errorf("invalid endereco: %w", err)
		}
	}
	if in.Phone != nil {
		if f.Phone, err = validate.Optional(*in.Phone, maxOptionalLength); err != nil {
			return nil, fmt.Errorf("invalid telefone: %w", err)
		}
	}
	if in.OpeningHours != nil {
		if f.OpeningHours, err = validate.Optional(*in.OpeningHours, maxOptionalLength); err != nil {
			return nil, fmt.Errorf("invalid horario_funcionamento: %w", err)
		}
	}
	if in.Description != nil {
		if f.Description, err = validate.Optional(*in.Description, maxOptionalLength); err != nil {
			return nil, fmt.Errorf("invalid descricao: %w", err)
		}
	}
	if in.Active != nil {
		f.Active = *in.Active
	}

	f.UpdatedAt = time.Now().UTC()
	if err := s.repo.Save(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// Deactivate soft-deletes a facility: it disappears from listings and
// proximity results but stays on record.
func (s *Service) Deactivate(ctx context.Context, id string) (*Facility, error) {
	return s.setActive(ctx, id, false)
}

// Reactivate brings a deactivated facility back.
func (s *Service) Reactivate(ctx context.Context, id string) (*Facility, error) {
	return s.setActive(ctx, id, true)
}

func (s *Service) setActive(ctx context.Context, id string, active bool) (*Facility, error) {
	f, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	f.Active = active
	f.UpdatedAt = time.Now().UTC()
	if err := s.repo.Save(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// Delete removes a facility permanently, or returns ErrNotFound.
func (s *Service) Delete(ctx context.Context, id string) error {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if f == nil {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.repo.Delete(ctx, id)
}

func validateCoordinates(latitude, longitude float64) error {
	if latitude < -90 || latitude > 90 {
		return fmt.Errorf("%w: latitude %v out of range [-90, 90]", ErrInvalidCoordinates, latitude)
	}
	if longitude < -180 || longitude > 180 {
		return fmt.Errorf("%w: longitude %v out of range [-180, 180]", ErrInvalidCoordinates, longitude)
	}
	return nil
}
