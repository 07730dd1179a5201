package generator

import (
	"math/rand"
	"time"

	"exam-paper-service/internal/domain"
	"github.com/google/uuid"
)

// Generator assembles papers from a pattern and a bank snapshot. It holds no
// mutable state of its own, so one Generator can serve concurrent calls as
// long as its Shuffler is goroutine-safe (the default one is).
type Generator struct {
	shuffler Shuffler
	now      func() time.Time
	newID    func() string
	strict   bool
}

// Option configures a Generator.
type Option func(*Generator)

// WithShuffler replaces the random source used to sample each tier.
func WithShuffler(s Shuffler) Option {
	return func(g *Generator) { g.shuffler = s }
}

// WithSeed makes selection reproducible for a given sequence of calls.
func WithSeed(seed int64) Option {
	return func(g *Generator) { g.shuffler = &lockedShuffler{rnd: rand.New(rand.NewSource(seed))} }
}

// WithClock is used by tests for deterministic timestamps.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// WithIDFunc overrides how paper IDs are minted.
func WithIDFunc(newID func() string) Option {
	return func(g *Generator) { g.newID = newID }
}

// WithStrictDistribution rejects sections whose percentages do not add up to 100.
func WithStrictDistribution() Option {
	return func(g *Generator) { g.strict = true }
}

func New(opts ...Option) *Generator {
	g := &Generator{
		shuffler: globalShuffler{},
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Request carries the caller-owned snapshots a paper is generated from.
type Request struct {
	Name      string
	Subject   string
	CreatedBy string
	Bank      domain.QuestionBank
	Pattern   domain.ExamPattern
}

// Generate runs every section of the pattern against the bank in order.
// Any failure aborts the whole paper; no partial paper is returned.
func (g *Generator) Generate(req Request) (domain.GeneratedPaper, error) {
	available := BySubject(req.Bank.Questions, req.Subject)
	if len(available) == 0 {
		return domain.GeneratedPaper{}, &domain.NoQuestionsForSubjectError{Subject: req.Subject}
	}

	selected := []domain.Question{}
	sections := make([]domain.PaperSection, 0, len(req.Pattern.Sections))
	for _, section := range req.Pattern.Sections {
		if g.strict && section.DifficultyDistribution.Total() != 100 {
			return domain.GeneratedPaper{}, &domain.DistributionError{Section: section.Name, Distribution: section.DifficultyDistribution}
		}

		pool := Candidates(available, req.Subject, section)
		alloc := Allocate(section.QuestionCount, section.DifficultyDistribution)
		picked, err := SampleSection(section, PartitionByDifficulty(pool), alloc, g.shuffler)
		if err != nil {
			return domain.GeneratedPaper{}, err
		}

		sections = append(sections, domain.PaperSection{
			Name:             section.Name,
			Offset:           len(selected),
			Count:            len(picked),
			MarksPerQuestion: section.MarksPerQuestion,
		})
		selected = append(selected, picked...)
	}

	return domain.GeneratedPaper{
		ID:         g.newID(),
		Name:       req.Name,
		TotalMarks: req.Pattern.TotalMarks,
		Duration:   req.Pattern.Duration,
		Subject:    req.Subject,
		Pattern:    req.Pattern,
		Questions:  selected,
		Sections:   sections,
		CreatedAt:  g.now(),
		CreatedBy:  req.CreatedBy,
	}, nil
}

// Duplicate copies a paper under a new identity and timestamp.
func (g *Generator) Duplicate(paper domain.GeneratedPaper) domain.GeneratedPaper {
	dup := paper
	dup.ID = g.newID()
	dup.Name = paper.Name + " (Copy)"
	dup.CreatedAt = g.now()
	dup.Questions = append([]domain.Question(nil), paper.Questions...)
	dup.Sections = append([]domain.PaperSection(nil), paper.Sections...)
	return dup
}
