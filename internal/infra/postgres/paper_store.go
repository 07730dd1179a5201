package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"exam-paper-service/internal/domain"
	"github.com/uptrace/bun"
)

type paperRow struct {
	bun.BaseModel `bun:"table:generated_papers"`

	ID        string                `bun:"id,pk"`
	Name      string                `bun:"name,notnull"`
	Subject   string                `bun:"subject,notnull"`
	CreatedAt time.Time             `bun:"created_at,notnull"`
	Data      domain.GeneratedPaper `bun:"data,type:jsonb,notnull"`
}

// PaperStore persists generated papers through bun.
type PaperStore struct {
	db *bun.DB
}

func NewPaperStore(db *bun.DB) *PaperStore {
	return &PaperStore{db: db}
}

func (s *PaperStore) Save(ctx context.Context, paper domain.GeneratedPaper) error {
	row := &paperRow{
		ID:        paper.ID,
		Name:      paper.Name,
		Subject:   paper.Subject,
		CreatedAt: paper.CreatedAt,
		Data:      paper,
	}
	_, err := s.db.NewInsert().
		Model(row).
		On("CONFLICT (id) DO UPDATE").
		Set("name = EXCLUDED.name").
		Set("subject = EXCLUDED.subject").
		Set("data = EXCLUDED.data").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("save paper: %w", err)
	}
	return nil
}

func (s *PaperStore) Get(ctx context.Context, paperID string) (domain.GeneratedPaper, error) {
	row := new(paperRow)
	err := s.db.NewSelect().Model(row).Where("id = ?", paperID).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.GeneratedPaper{}, domain.ErrPaperNotFound
	}
	if err != nil {
		return domain.GeneratedPaper{}, fmt.Errorf("load paper: %w", err)
	}
	return row.Data, nil
}

func (s *PaperStore) List(ctx context.Context) ([]domain.GeneratedPaper, error) {
	var rows []paperRow
	if err := s.db.NewSelect().Model(&rows).Order("created_at DESC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("list papers: %w", err)
	}
	papers := make([]domain.GeneratedPaper, 0, len(rows))
	for _, row := range rows {
		papers = append(papers, row.Data)
	}
	return papers, nil
}

func (s *PaperStore) Delete(ctx context.Context, paperID string) error {
	res, err := s.db.NewDelete().Model((*paperRow)(nil)).Where("id = ?", paperID).Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete paper: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrPaperNotFound
	}
	return nil
}
