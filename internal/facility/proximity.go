package facility

import (
	"context"
	"sort"

	"github.com/onnwee/praca/internal/geo"
)

// DefaultRadiusKM is the search radius used when the caller does not
// specify one.
const DefaultRadiusKM = 5.0

// NearbyFacility is a facility annotated with its distance from the
// search origin.
type NearbyFacility struct {
	*Facility
	DistanceKM float64 `json:"distancia_km"`
}

// Locator resolves a totem ID to coordinates. Implemented by
// totem.Service.
type Locator interface {
	Locate(ctx context.Context, totemID string) (latitude, longitude float64, err error)
}

// Nearby returns every active facility within radiusKM of the origin,
// ordered by ascending distance with ties broken by servico_id so the
// result is deterministic. The origin must be a real coordinate pair:
// latitude outside [-90, 90] or longitude outside [-180, 180] fails
// with ErrInvalidCoordinates instead of silently measuring from a
// point that cannot exist. A non-positive radius yields an empty
// result rather than an error.
func (s *Service) Nearby(ctx context.Context, latitude, longitude, radiusKM float64) ([]NearbyFacility, error) {
	if err := validateCoordinates(latitude, longitude); err != nil {
		return nil, err
	}
	if radiusKM <= 0 {
		return []NearbyFacility{}, nil
	}

	facilities, err := s.repo.List(ctx, true)
	if err != nil {
		return nil, err
	}

	nearby := make([]NearbyFacility, 0, len(facilities))
	for _, f := range facilities {
		d := geo.Distance(latitude, longitude, f.Latitude, f.Longitude)
		if d <= radiusKM {
			nearby = append(nearby, NearbyFacility{Facility: f, DistanceKM: d})
		}
	}

	sort.Slice(nearby, func(i, j int) bool {
		if nearby[i].DistanceKM != nearby[j].DistanceKM {
			return nearby[i].DistanceKM < nearby[j].DistanceKM
		}
		return nearby[i].FacilityID < nearby[j].FacilityID
	})
	return nearby, nil
}

// NearbyTotem answers "what is near this totem": it resolves the totem
// to its coordinates and delegates to Nearby. Errors from the locator
// (unknown totem) pass through unchanged.
func (s *Service) NearbyTotem(ctx context.Context, locator Locator, totemID string, radiusKM float64) ([]NearbyFacility, error) {
	latitude, longitude, err := locator.Locate(ctx, totemID)
	if err != nil {
		return nil, err
	}
	return s.Nearby(ctx, latitude, longitude, radiusKM)
}
