package generator

import (
	"math/rand"
	"sync"

	"exam-paper-service/internal/domain"
)

// Shuffler permutes n elements through swap. *rand.Rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// globalShuffler uses the package-level math/rand source, which is safe for
// concurrent use.
type globalShuffler struct{}

func (globalShuffler) Shuffle(n int, swap func(i, j int)) {
	rand.Shuffle(n, swap)
}

// lockedShuffler serializes access to a seeded *rand.Rand.
type lockedShuffler struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func (s *lockedShuffler) Shuffle(n int, swap func(i, j int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rnd.Shuffle(n, swap)
}

// SampleSection draws alloc's counts from each tier without replacement and
// returns them concatenated Easy, Medium, Hard. The first tier that cannot
// cover its count fails the whole section.
func SampleSection(section domain.ExamSection, tiers Tiers, alloc Allocation, shuffler Shuffler) ([]domain.Question, error) {
	if alloc.Easy < 0 || alloc.Medium < 0 || alloc.Hard < 0 {
		return nil, &domain.DistributionError{Section: section.Name, Distribution: section.DifficultyDistribution}
	}

	out := make([]domain.Question, 0, alloc.Total())
	for _, d := range domain.Difficulties {
		required := alloc.For(d)
		pool := tiers[d]
		if len(pool) < required {
			return nil, &domain.InsufficientQuestionsError{
				Section:    section.Name,
				Difficulty: d,
				Required:   required,
				Available:  len(pool),
			}
		}
		out = append(out, draw(pool, required, shuffler)...)
	}
	return out, nil
}

// draw permutes a copy of pool and takes the first n entries.
func draw(pool []domain.Question, n int, shuffler Shuffler) []domain.Question {
	if n == 0 {
		return nil
	}
	shuffled := make([]domain.Question, len(pool))
	copy(shuffled, pool)
	shuffler.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:n]
}
