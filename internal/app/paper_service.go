package app

import (
	"context"
	"log"
	"sort"
	"strings"
	"time"

	"exam-paper-service/internal/domain"
	"exam-paper-service/internal/generator"
	"golang.org/x/sync/errgroup"
)

// BankRepository loads question bank snapshots (from cache/backing store).
type BankRepository interface {
	GetBank(ctx context.Context, bankID string) (domain.QuestionBank, error)
}

// PatternRepository loads exam pattern snapshots.
type PatternRepository interface {
	GetPattern(ctx context.Context, patternID string) (domain.ExamPattern, error)
}

// PaperStore persists generated papers.
type PaperStore interface {
	Save(ctx context.Context, paper domain.GeneratedPaper) error
	Get(ctx context.Context, paperID string) (domain.GeneratedPaper, error)
	List(ctx context.Context) ([]domain.GeneratedPaper, error)
	Delete(ctx context.Context, paperID string) error
}

// PaperService contains the paper generation and library use cases.
type PaperService struct {
	banks    BankRepository
	patterns PatternRepository
	papers   PaperStore
	gen      *generator.Generator
	feed     *PaperFeed
	now      func() time.Time
}

func NewPaperService(banks BankRepository, patterns PatternRepository, papers PaperStore, gen *generator.Generator, feed *PaperFeed) *PaperService {
	if feed == nil {
		feed = NewPaperFeed()
	}
	return &PaperService{
		banks:    banks,
		patterns: patterns,
		papers:   papers,
		gen:      gen,
		feed:     feed,
		now:      time.Now,
	}
}

// GenerateRequest names the bank and pattern a paper is generated from.
type GenerateRequest struct {
	Name      string `json:"name" validate:"min=3"`
	Subject   string `json:"subject"` // defaults to the bank's subject
	BankID    string `json:"bankId" validate:"required"`
	PatternID string `json:"patternId" validate:"required"`
	CreatedBy string `json:"createdBy"`
}

// GenerateResult is a stored paper plus any non-fatal warnings.
type GenerateResult struct {
	Paper    domain.GeneratedPaper `json:"paper"`
	Warnings []string              `json:"warnings,omitempty"`
}

// Generate loads the bank and pattern snapshots, generates a paper, stores it
// and announces it on the feed.
func (s *PaperService) Generate(ctx context.Context, req GenerateRequest) (GenerateResult, error) {
	if err := domain.Validate(req); err != nil {
		return GenerateResult{}, err
	}

	var (
		bank    domain.QuestionBank
		pattern domain.ExamPattern
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		bank, err = s.banks.GetBank(gctx, req.BankID)
		return err
	})
	g.Go(func() error {
		var err error
		pattern, err = s.patterns.GetPattern(gctx, req.PatternID)
		return err
	})
	if err := g.Wait(); err != nil {
		return GenerateResult{}, err
	}

	subject := req.Subject
	if subject == "" {
		subject = bank.Subject
	}
	createdBy := req.CreatedBy
	if createdBy == "" {
		createdBy = "admin"
	}

	var warnings []string
	if mismatch := domain.CheckMarks(pattern); mismatch != nil {
		log.Printf("pattern %s: %s", pattern.ID, mismatch)
		warnings = append(warnings, mismatch.String())
	}

	paper, err := s.gen.Generate(generator.Request{
		Name:      req.Name,
		Subject:   subject,
		CreatedBy: createdBy,
		Bank:      bank,
		Pattern:   pattern,
	})
	if err != nil {
		log.Printf("paper generation failed for bank %s pattern %s: %v", req.BankID, req.PatternID, err)
		return GenerateResult{}, err
	}

	if err := s.papers.Save(ctx, paper); err != nil {
		return GenerateResult{}, err
	}
	s.publish(domain.PaperGenerated, paper)
	log.Printf("generated paper %s (%d questions) from pattern %s", paper.ID, len(paper.Questions), pattern.ID)
	return GenerateResult{Paper: paper, Warnings: warnings}, nil
}

// Get returns a stored paper.
func (s *PaperService) Get(ctx context.Context, paperID string) (domain.GeneratedPaper, error) {
	return s.papers.Get(ctx, paperID)
}

// PaperFilter narrows List results. Query matches name or subject
// case-insensitively; Subjects, when set, must contain the paper's subject.
type PaperFilter struct {
	Query    string
	Subjects []string
}

// List returns stored papers matching the filter, newest first.
func (s *PaperService) List(ctx context.Context, filter PaperFilter) ([]domain.GeneratedPaper, error) {
	papers, err := s.papers.List(ctx)
	if err != nil {
		return nil, err
	}
	query := strings.ToLower(filter.Query)
	out := make([]domain.GeneratedPaper, 0, len(papers))
	for _, p := range papers {
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Name), query) &&
			!strings.Contains(strings.ToLower(p.Subject), query) {
			continue
		}
		if len(filter.Subjects) > 0 && !contains(filter.Subjects, p.Subject) {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Subjects returns the distinct subjects of stored papers, sorted.
func (s *PaperService) Subjects(ctx context.Context) ([]string, error) {
	papers, err := s.papers.List(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(papers))
	subjects := make([]string, 0, len(papers))
	for _, p := range papers {
		if _, ok := seen[p.Subject]; ok {
			continue
		}
		seen[p.Subject] = struct{}{}
		subjects = append(subjects, p.Subject)
	}
	sort.Strings(subjects)
	return subjects, nil
}

// Duplicate stores a copy of a paper under a new identity.
func (s *PaperService) Duplicate(ctx context.Context, paperID string) (domain.GeneratedPaper, error) {
	orig, err := s.papers.Get(ctx, paperID)
	if err != nil {
		return domain.GeneratedPaper{}, err
	}
	dup := s.gen.Duplicate(orig)
	if err := s.papers.Save(ctx, dup); err != nil {
		return domain.GeneratedPaper{}, err
	}
	s.publish(domain.PaperDuplicated, dup)
	return dup, nil
}

// Delete removes a paper from the library.
func (s *PaperService) Delete(ctx context.Context, paperID string) error {
	paper, err := s.papers.Get(ctx, paperID)
	if err != nil {
		return err
	}
	if err := s.papers.Delete(ctx, paperID); err != nil {
		return err
	}
	s.publish(domain.PaperDeleted, paper)
	return nil
}

// Subscribe returns a channel that receives paper library events.
// The caller must invoke the returned cancel function to avoid leaks.
func (s *PaperService) Subscribe(_ context.Context) (<-chan domain.PaperEvent, func()) {
	return s.feed.Subscribe()
}

func (s *PaperService) publish(typ string, paper domain.GeneratedPaper) {
	s.feed.Publish(domain.PaperEvent{Type: typ, PaperID: paper.ID, Paper: paper, At: s.now()})
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
