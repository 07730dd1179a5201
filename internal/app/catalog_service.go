package app

import (
	"context"
	"log"
	"time"

	"exam-paper-service/internal/domain"
	"github.com/google/uuid"
)

// CatalogStore reads and writes question banks and exam patterns.
type CatalogStore interface {
	BankRepository
	PatternRepository
	SaveBank(ctx context.Context, bank domain.QuestionBank) error
	DeleteBank(ctx context.Context, bankID string) error
	SavePattern(ctx context.Context, pattern domain.ExamPattern) error
	DeletePattern(ctx context.Context, patternID string) error
}

// CatalogService is the authoring boundary for banks and patterns. Everything
// it stores has passed validation.
type CatalogService struct {
	store CatalogStore
	now   func() time.Time
	newID func() string
}

func NewCatalogService(store CatalogStore) *CatalogService {
	return &CatalogService{store: store, now: time.Now, newID: uuid.NewString}
}

// CreateBank stores a new, empty question bank.
func (s *CatalogService) CreateBank(ctx context.Context, bank domain.QuestionBank) (domain.QuestionBank, error) {
	if err := domain.ValidateBank(bank); err != nil {
		return domain.QuestionBank{}, err
	}
	if bank.ID == "" {
		bank.ID = s.newID()
	}
	if bank.CreatedBy == "" {
		bank.CreatedBy = "admin"
	}
	bank.CreatedAt = s.now()
	bank.Questions = []domain.Question{}
	if err := s.store.SaveBank(ctx, bank); err != nil {
		return domain.QuestionBank{}, err
	}
	log.Printf("created question bank %s (%s)", bank.ID, bank.Subject)
	return bank, nil
}

// GetBank returns a bank snapshot.
func (s *CatalogService) GetBank(ctx context.Context, bankID string) (domain.QuestionBank, error) {
	return s.store.GetBank(ctx, bankID)
}

// DeleteBank removes a bank and its questions.
func (s *CatalogService) DeleteBank(ctx context.Context, bankID string) error {
	return s.store.DeleteBank(ctx, bankID)
}

// SaveQuestion adds q to the bank, or replaces the question with the same ID.
// The question always takes the bank's subject, and answer choices are only
// kept for multiple choice questions.
//
// The bank is read, modified and written back as a whole, so concurrent
// question writes to the same bank can lose an update.
func (s *CatalogService) SaveQuestion(ctx context.Context, bankID string, q domain.Question) (domain.Question, error) {
	if err := domain.ValidateQuestion(q); err != nil {
		return domain.Question{}, err
	}
	bank, err := s.store.GetBank(ctx, bankID)
	if err != nil {
		return domain.Question{}, err
	}

	q.Subject = bank.Subject
	if q.Type != domain.MultipleChoice {
		q.Options = nil
	}
	if q.CreatedBy == "" {
		q.CreatedBy = "admin"
	}

	questions := make([]domain.Question, 0, len(bank.Questions)+1)
	replaced := false
	for _, existing := range bank.Questions {
		if q.ID != "" && existing.ID == q.ID {
			q.CreatedAt = existing.CreatedAt
			questions = append(questions, q)
			replaced = true
			continue
		}
		questions = append(questions, existing)
	}
	if !replaced {
		if q.ID == "" {
			q.ID = s.newID()
		}
		q.CreatedAt = s.now()
		questions = append(questions, q)
	}
	bank.Questions = questions

	if err := s.store.SaveBank(ctx, bank); err != nil {
		return domain.Question{}, err
	}
	return q, nil
}

// RemoveQuestion deletes one question from a bank. Like SaveQuestion it
// rewrites the whole bank and is not safe against concurrent writers.
func (s *CatalogService) RemoveQuestion(ctx context.Context, bankID, questionID string) error {
	bank, err := s.store.GetBank(ctx, bankID)
	if err != nil {
		return err
	}
	questions := make([]domain.Question, 0, len(bank.Questions))
	for _, q := range bank.Questions {
		if q.ID != questionID {
			questions = append(questions, q)
		}
	}
	if len(questions) == len(bank.Questions) {
		return domain.ErrQuestionNotFound
	}
	bank.Questions = questions
	return s.store.SaveBank(ctx, bank)
}

// SavePattern validates and stores a pattern. A declared total that differs
// from the sum of the sections is reported as a warning, not an error.
func (s *CatalogService) SavePattern(ctx context.Context, pattern domain.ExamPattern) (domain.ExamPattern, []string, error) {
	if err := domain.ValidatePattern(pattern); err != nil {
		return domain.ExamPattern{}, nil, err
	}
	if pattern.ID == "" {
		pattern.ID = s.newID()
	}
	var warnings []string
	if mismatch := domain.CheckMarks(pattern); mismatch != nil {
		warnings = append(warnings, mismatch.String())
	}
	if err := s.store.SavePattern(ctx, pattern); err != nil {
		return domain.ExamPattern{}, nil, err
	}
	return pattern, warnings, nil
}

// GetPattern returns a pattern snapshot.
func (s *CatalogService) GetPattern(ctx context.Context, patternID string) (domain.ExamPattern, error) {
	return s.store.GetPattern(ctx, patternID)
}

// DeletePattern removes a pattern. Papers already generated from it keep their copy.
func (s *CatalogService) DeletePattern(ctx context.Context, patternID string) error {
	return s.store.DeletePattern(ctx, patternID)
}
