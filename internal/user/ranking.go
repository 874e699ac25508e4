package user

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

// Ranking errors.
var (
	// ErrInvalidLimit indicates a ranking limit outside [1, 100].
	ErrInvalidLimit = errors.New("limit must be between 1 and 100")

	// ErrInvalidOrder indicates an order other than "asc" or "desc".
	ErrInvalidOrder = errors.New("order must be asc or desc")
)

// Ranking limit bounds.
const (
	// MinRankingLimit is the smallest accepted ranking page size.
	MinRankingLimit = 1

	// MaxRankingLimit caps the ranking page size.
	MaxRankingLimit = 100

	// DefaultRankingLimit is used when the caller does not ask for a size.
	DefaultRankingLimit = 10
)

// Ranking orders.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Ranking returns up to limit users ordered by point balance. order is
// "asc" or "desc"; ties break on vem_hash ascending so the listing is
// stable across calls.
func (s *Service) Ranking(ctx context.Context, limit int, order string) ([]*User, error) {
	if limit < MinRankingLimit || limit > MaxRankingLimit {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLimit, limit)
	}
	if order != OrderAsc && order != OrderDesc {
		return nil, fmt.Errorf("%w: got %q", ErrInvalidOrder, order)
	}

	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	sort.Slice(users, func(i, j int) bool {
		if users[i].Points != users[j].Points {
			if order == OrderDesc {
				return users[i].Points > users[j].Points
			}
			return users[i].Points < users[j].Points
		}
		return users[i].UserHash < users[j].UserHash
	})

	if len(users) > limit {
		users = users[:limit]
	}
	return users, nil
}
