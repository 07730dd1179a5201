package generator

import (
	"math"

	"exam-paper-service/internal/domain"
)

// Allocation is the number of questions a section draws from each tier.
type Allocation struct {
	Easy   int `json:"easy"`
	Medium int `json:"medium"`
	Hard   int `json:"hard"`
}

// Total is always the question count the allocation was computed for.
func (a Allocation) Total() int {
	return a.Easy + a.Medium + a.Hard
}

// For returns the count allocated to a tier.
func (a Allocation) For(d domain.Difficulty) int {
	switch d {
	case domain.Easy:
		return a.Easy
	case domain.Medium:
		return a.Medium
	case domain.Hard:
		return a.Hard
	}
	return 0
}

// Allocate splits count across the three tiers. Easy and medium are rounded
// half-up from their percentages and hard takes whatever is left, so the
// result always sums to count. Percentages that do not add up to 100 are not
// rejected here; hard absorbs the difference and may go negative.
func Allocate(count int, dist domain.DifficultyDistribution) Allocation {
	easy := roundHalfUp(float64(count) * (float64(dist.Easy) / 100))
	medium := roundHalfUp(float64(count) * (float64(dist.Medium) / 100))
	return Allocation{
		Easy:   easy,
		Medium: medium,
		Hard:   count - easy - medium,
	}
}

func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
