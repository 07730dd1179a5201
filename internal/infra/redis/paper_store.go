package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"exam-paper-service/internal/domain"
	"github.com/redis/go-redis/v9"
)

// PaperStore keeps generated papers in a single Redis hash:
//
//	HSET papers {paperID} {paper json}
type PaperStore struct {
	client *redis.Client
	key    string
}

func NewPaperStore(client *redis.Client) *PaperStore {
	return &PaperStore{client: client, key: "papers"}
}

func (s *PaperStore) Save(ctx context.Context, paper domain.GeneratedPaper) error {
	raw, err := json.Marshal(paper)
	if err != nil {
		return fmt.Errorf("marshal paper: %w", err)
	}
	return s.client.HSet(ctx, s.key, paper.ID, raw).Err()
}

func (s *PaperStore) Get(ctx context.Context, paperID string) (domain.GeneratedPaper, error) {
	raw, err := s.client.HGet(ctx, s.key, paperID).Bytes()
	if err == redis.Nil {
		return domain.GeneratedPaper{}, domain.ErrPaperNotFound
	}
	if err != nil {
		return domain.GeneratedPaper{}, err
	}
	var paper domain.GeneratedPaper
	if err := json.Unmarshal(raw, &paper); err != nil {
		return domain.GeneratedPaper{}, fmt.Errorf("unmarshal paper: %w", err)
	}
	return paper, nil
}

func (s *PaperStore) List(ctx context.Context) ([]domain.GeneratedPaper, error) {
	all, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, err
	}
	papers := make([]domain.GeneratedPaper, 0, len(all))
	for id, raw := range all {
		var paper domain.GeneratedPaper
		if err := json.Unmarshal([]byte(raw), &paper); err != nil {
			return nil, fmt.Errorf("unmarshal paper %s: %w", id, err)
		}
		papers = append(papers, paper)
	}
	return papers, nil
}

func (s *PaperStore) Delete(ctx context.Context, paperID string) error {
	n, err := s.client.HDel(ctx, s.key, paperID).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrPaperNotFound
	}
	return nil
}
