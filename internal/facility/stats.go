package facility

import (
	"context"
	"math"
	"sort"
)

// Stats is the aggregate view over the facility base. Per-type counts
// cover active facilities only.
type Stats struct {
	Total         int64            `json:"total_servicos"`
	Active        int64            `json:"servicos_ativos"`
	Inactive      int64            `json:"servicos_inativos"`
	PercentActive float64          `json:"percentual_ativos"`
	ByType        map[string]int64 `json:"servicos_por_tipo"`
}

// Stats computes aggregate statistics over all facilities. The per-type
// breakdown comes from the store's grouped aggregation rather than a
// client-side walk.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	all, err := s.repo.List(ctx, false)
	if err != nil {
		return nil, err
	}
	byType, err := s.repo.CountByType(ctx)
	if err != nil {
		return nil, err
	}

	st := &Stats{Total: int64(len(all)), ByType: byType}
	for _, f := range all {
		if f.Active {
			st.Active++
		}
	}
	st.Inactive = st.Total - st.Active
	if st.Total > 0 {
		st.PercentActive = math.Round(float64(st.Active)/float64(st.Total)*100*100) / 100
	}
	return st, nil
}

// Types returns the distinct types of active facilities, sorted.
func (s *Service) Types(ctx context.Context) ([]string, error) {
	byType, err := s.repo.CountByType(ctx)
	if err != nil {
		return nil, err
	}
	types := make([]string, 0, len(byType))
	for t := range byType {
		types = append(types, t)
	}
	sort.Strings(types)
	return types, nil
}
