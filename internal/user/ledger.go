package user

import (
	"context"
	"fmt"
)

// DefaultVotePoints is the number of points awarded for answering a
// question when the caller does not specify an amount.
const DefaultVotePoints = 10

// VoteResult reports the outcome of a point award.
type VoteResult struct {
	UserHash      string `json:"vem_hash"`
	PointsAwarded int64  `json:"pontos_ganhos"`
	NewTotal      int64  `json:"pontuacao_atual"`
}

// IncrementPoints atomically adds delta (which may be negative) to the
// user's balance and returns the new total. The add-and-fetch is a
// single store operation, so concurrent increments for the same user
// never lose an update. Returns ErrNotFound for an unknown hash.
func (s *Service) IncrementPoints(ctx context.Context, userHash string, delta int64) (int64, error) {
	if userHash == "" {
		return 0, ErrEmptyHash
	}
	return s.repo.IncrementPoints(ctx, userHash, delta)
}

// AwardVotePoints credits a user for answering a question at a totem.
// points <= 0 falls back to DefaultVotePoints.
//
// Note: this does not consult the interaction history, so a user who
// re-answers a question is credited again. Whether to gate the award on
// HasInteracted is the caller's decision.
func (s *Service) AwardVotePoints(ctx context.Context, userHash string, points int64) (*VoteResult, error) {
	if points <= 0 {
		points = DefaultVotePoints
	}

	total, err := s.IncrementPoints(ctx, userHash, points)
	if err != nil {
		return nil, fmt.Errorf("failed to award vote points: %w", err)
	}

	s.logger.Info("vote points awarded",
		"vem_hash", userHash,
		"pontos", points,
		"pontuacao", total,
	)
	return &VoteResult{
		UserHash:      userHash,
		PointsAwarded: points,
		NewTotal:      total,
	}, nil
}
