package memory

import (
	"context"
	"sync"

	"exam-paper-service/internal/domain"
)

// PaperStore is an in-memory implementation of app.PaperStore.
type PaperStore struct {
	mu     sync.RWMutex
	papers map[string]domain.GeneratedPaper
}

func NewPaperStore() *PaperStore {
	return &PaperStore{
		papers: make(map[string]domain.GeneratedPaper),
	}
}

func (s *PaperStore) Save(_ context.Context, paper domain.GeneratedPaper) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.papers[paper.ID] = paper
	return nil
}

func (s *PaperStore) Get(_ context.Context, paperID string) (domain.GeneratedPaper, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	paper, ok := s.papers[paperID]
	if !ok {
		return domain.GeneratedPaper{}, domain.ErrPaperNotFound
	}
	return paper, nil
}

func (s *PaperStore) List(_ context.Context) ([]domain.GeneratedPaper, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.GeneratedPaper, 0, len(s.papers))
	for _, paper := range s.papers {
		out = append(out, paper)
	}
	return out, nil
}

func (s *PaperStore) Delete(_ context.Context, paperID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.papers[paperID]; !ok {
		return domain.ErrPaperNotFound
	}
	delete(s.papers, paperID)
	return nil
}
