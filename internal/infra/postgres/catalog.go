package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"exam-paper-service/internal/domain"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// Catalog loads and stores bank and pattern JSONB documents in Postgres.
type Catalog struct {
	pool *pgxpool.Pool
}

func NewCatalog(pool *pgxpool.Pool) *Catalog {
	return &Catalog{pool: pool}
}

func (c *Catalog) LoadBank(ctx context.Context, bankID string) (domain.QuestionBank, error) {
	var bank domain.QuestionBank
	if err := c.load(ctx, `SELECT data FROM question_banks WHERE id=$1`, bankID, &bank); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.QuestionBank{}, domain.ErrBankNotFound
		}
		return domain.QuestionBank{}, fmt.Errorf("load bank: %w", err)
	}
	return bank, nil
}

func (c *Catalog) LoadPattern(ctx context.Context, patternID string) (domain.ExamPattern, error) {
	var pattern domain.ExamPattern
	if err := c.load(ctx, `SELECT data FROM exam_patterns WHERE id=$1`, patternID, &pattern); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ExamPattern{}, domain.ErrPatternNotFound
		}
		return domain.ExamPattern{}, fmt.Errorf("load pattern: %w", err)
	}
	return pattern, nil
}

func (c *Catalog) SaveBank(ctx context.Context, bank domain.QuestionBank) error {
	data, err := json.Marshal(bank)
	if err != nil {
		return fmt.Errorf("marshal bank: %w", err)
	}
	_, err = c.pool.Exec(ctx, `
		INSERT INTO question_banks (id, subject, data) VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET subject=EXCLUDED.subject, data=EXCLUDED.data, updated_at=now()`,
		bank.ID, bank.Subject, data)
	if err != nil {
		return fmt.Errorf("save bank: %w", err)
	}
	return nil
}

func (c *Catalog) DeleteBank(ctx context.Context, bankID string) error {
	return c.delete(ctx, `DELETE FROM question_banks WHERE id=$1`, bankID, domain.ErrBankNotFound)
}

func (c *Catalog) SavePattern(ctx context.Context, pattern domain.ExamPattern) error {
	data, err := json.Marshal(pattern)
	if err != nil {
		return fmt.Errorf("marshal pattern: %w", err)
	}
	_, err = c.pool.Exec(ctx, `
		INSERT INTO exam_patterns (id, data) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET data=EXCLUDED.data, updated_at=now()`,
		pattern.ID, data)
	if err != nil {
		return fmt.Errorf("save pattern: %w", err)
	}
	return nil
}

func (c *Catalog) DeletePattern(ctx context.Context, patternID string) error {
	return c.delete(ctx, `DELETE FROM exam_patterns WHERE id=$1`, patternID, domain.ErrPatternNotFound)
}

func (c *Catalog) load(ctx context.Context, query, id string, dst interface{}) error {
	var raw []byte
	if err := c.pool.QueryRow(ctx, query, id).Scan(&raw); err != nil {
		return err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	return nil
}

func (c *Catalog) delete(ctx context.Context, query, id string, notFound error) error {
	tag, err := c.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return notFound
	}
	return nil
}
