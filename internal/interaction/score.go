package interaction

import "math"

// Score is the percentage breakdown of answers for one question. Both
// fields are always present, each rounded to 2 decimal places; they sum
// to ~100 when any interaction exists and are both 0 otherwise.
type Score struct {
	Yes float64 `json:"sim"`
	No  float64 `json:"nao"`
}

// ComputeScore normalizes grouped answer counts into percentages.
// Unknown answer keys contribute to the total but not to either
// percentage; they cannot occur through Register, which validates
// answers before storage.
func ComputeScore(counts map[string]int64) Score {
	var total int64
	for _, n := range counts {
		total += n
	}

	// No interactions: report 0/0 rather than dividing by zero.
	if total == 0 {
		return Score{}
	}

	return Score{
		Yes: round2(float64(counts[AnswerYes]) / float64(total) * 100),
		No:  round2(float64(counts[AnswerNo]) / float64(total) * 100),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
