package generator

import "exam-paper-service/internal/domain"

// BySubject returns the questions tagged with subject, in bank order.
func BySubject(questions []domain.Question, subject string) []domain.Question {
	out := make([]domain.Question, 0, len(questions))
	for _, q := range questions {
		if q.Subject == subject {
			out = append(out, q)
		}
	}
	return out
}

// Candidates returns the questions matching subject whose type the section allows.
// The input is not modified and relative order is preserved.
func Candidates(questions []domain.Question, subject string, section domain.ExamSection) []domain.Question {
	out := make([]domain.Question, 0, len(questions))
	for _, q := range questions {
		if q.Subject == subject && section.AllowsType(q.Type) {
			out = append(out, q)
		}
	}
	return out
}

// Tiers holds a candidate pool split by difficulty.
type Tiers map[domain.Difficulty][]domain.Question

// PartitionByDifficulty splits pool into Easy, Medium and Hard, keeping order
// within each tier. Questions with an unknown difficulty are dropped.
func PartitionByDifficulty(pool []domain.Question) Tiers {
	tiers := make(Tiers, len(domain.Difficulties))
	for _, d := range domain.Difficulties {
		tiers[d] = []domain.Question{}
	}
	for _, q := range pool {
		if _, ok := tiers[q.Difficulty]; ok {
			tiers[q.Difficulty] = append(tiers[q.Difficulty], q)
		}
	}
	return tiers
}
