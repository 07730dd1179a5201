package memory

import (
	"context"
	"sync"

	"exam-paper-service/internal/domain"
)

// StaticCatalog is a simple catalog backed by in-memory maps (useful for tests/demos).
type StaticCatalog struct {
	mu       sync.RWMutex
	banks    map[string]domain.QuestionBank
	patterns map[string]domain.ExamPattern
}

func NewStaticCatalog(banks []domain.QuestionBank, patterns []domain.ExamPattern) *StaticCatalog {
	c := &StaticCatalog{
		banks:    make(map[string]domain.QuestionBank, len(banks)),
		patterns: make(map[string]domain.ExamPattern, len(patterns)),
	}
	for _, b := range banks {
		c.banks[b.ID] = b
	}
	for _, p := range patterns {
		c.patterns[p.ID] = p
	}
	return c
}

func (c *StaticCatalog) LoadBank(_ context.Context, bankID string) (domain.QuestionBank, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if bank, ok := c.banks[bankID]; ok {
		return bank, nil
	}
	return domain.QuestionBank{}, domain.ErrBankNotFound
}

func (c *StaticCatalog) LoadPattern(_ context.Context, patternID string) (domain.ExamPattern, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if pattern, ok := c.patterns[patternID]; ok {
		return pattern, nil
	}
	return domain.ExamPattern{}, domain.ErrPatternNotFound
}

func (c *StaticCatalog) SaveBank(_ context.Context, bank domain.QuestionBank) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.banks[bank.ID] = bank
	return nil
}

func (c *StaticCatalog) DeleteBank(_ context.Context, bankID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.banks[bankID]; !ok {
		return domain.ErrBankNotFound
	}
	delete(c.banks, bankID)
	return nil
}

func (c *StaticCatalog) SavePattern(_ context.Context, pattern domain.ExamPattern) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.patterns[pattern.ID] = pattern
	return nil
}

func (c *StaticCatalog) DeletePattern(_ context.Context, patternID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.patterns[patternID]; !ok {
		return domain.ErrPatternNotFound
	}
	delete(c.patterns, patternID)
	return nil
}
