package user

import (
	"context"
	"math"
	"time"
)

// AgeStats summarizes the ages of users with a parseable birth date.
type AgeStats struct {
	Average float64 `json:"idade_media"`
	Min     int     `json:"idade_minima"`
	Max     int     `json:"idade_maxima"`
}

// Stats is the aggregate view over the user base.
type Stats struct {
	TotalUsers              int64     `json:"total_usuarios"`
	CompleteRegistrations   int64     `json:"cadastros_completos"`
	CompleteRegistrationPct float64   `json:"percentual_cadastros_completos"`
	TotalPoints             int64     `json:"pontuacao_total"`
	AveragePoints           float64   `json:"pontuacao_media"`
	MaxPoints               int64     `json:"pontuacao_maxima"`
	Ages                    *AgeStats `json:"estatisticas_idade,omitempty"`
}

// Stats computes aggregate statistics over all users. Users with an
// absent or malformed birth date are skipped for the age block; when no
// user has a usable birth date the block is omitted entirely.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	st := &Stats{TotalUsers: int64(len(users))}
	if len(users) == 0 {
		return st, nil
	}

	now := time.Now()
	var ageSum, ageCount int
	ageMin, ageMax := math.MaxInt, 0

	for _, u := range users {
		if u.RegistrationComplete {
			st.CompleteRegistrations++
		}
		st.TotalPoints += u.Points
		if u.Points > st.MaxPoints {
			st.MaxPoints = u.Points
		}

		age, ok := u.Age(now)
		if !ok {
			continue
		}
		ageSum += age
		ageCount++
		if age < ageMin {
			ageMin = age
		}
		if age > ageMax {
			ageMax = age
		}
	}

	st.CompleteRegistrationPct = round2(float64(st.CompleteRegistrations) / float64(st.TotalUsers) * 100)
	st.AveragePoints = round2(float64(st.TotalPoints) / float64(st.TotalUsers))

	if ageCount > 0 {
		st.Ages = &AgeStats{
			Average: round2(float64(ageSum) / float64(ageCount)),
			Min:     ageMin,
			Max:     ageMax,
		}
	}
	return st, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
