package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"exam-paper-service/internal/domain"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// Catalog is the backing store for banks and patterns (e.g., document DB).
type Catalog interface {
	LoadBank(ctx context.Context, bankID string) (domain.QuestionBank, error)
	LoadPattern(ctx context.Context, patternID string) (domain.ExamPattern, error)
	SaveBank(ctx context.Context, bank domain.QuestionBank) error
	DeleteBank(ctx context.Context, bankID string) error
	SavePattern(ctx context.Context, pattern domain.ExamPattern) error
	DeletePattern(ctx context.Context, patternID string) error
}

// CatalogCache caches bank and pattern snapshots in Redis and falls back to
// the catalog on a miss. Snapshots are stored as JSON:
//
//	SET catalog:bank:{bankID}       {bank json}    EX ttl
//	SET catalog:pattern:{patternID} {pattern json} EX ttl
//
// Writes go through to the catalog and delete the cached key.
type CatalogCache struct {
	client  *redis.Client
	catalog Catalog
	ttl     time.Duration
	sf      singleflight.Group

	rndMu sync.Mutex
	rnd   *rand.Rand
}

func NewCatalogCache(client *redis.Client, catalog Catalog, ttl time.Duration) *CatalogCache {
	return &CatalogCache{
		client:  client,
		catalog: catalog,
		ttl:     ttl,
		rnd:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *CatalogCache) GetBank(ctx context.Context, bankID string) (domain.QuestionBank, error) {
	var bank domain.QuestionBank
	err := c.fetch(ctx, bankKey(bankID), &bank, func() (interface{}, error) {
		return c.catalog.LoadBank(ctx, bankID)
	})
	return bank, err
}

func (c *CatalogCache) GetPattern(ctx context.Context, patternID string) (domain.ExamPattern, error) {
	var pattern domain.ExamPattern
	err := c.fetch(ctx, patternKey(patternID), &pattern, func() (interface{}, error) {
		return c.catalog.LoadPattern(ctx, patternID)
	})
	return pattern, err
}

func (c *CatalogCache) SaveBank(ctx context.Context, bank domain.QuestionBank) error {
	if err := c.catalog.SaveBank(ctx, bank); err != nil {
		return err
	}
	return c.client.Del(ctx, bankKey(bank.ID)).Err()
}

func (c *CatalogCache) DeleteBank(ctx context.Context, bankID string) error {
	if err := c.catalog.DeleteBank(ctx, bankID); err != nil {
		return err
	}
	return c.client.Del(ctx, bankKey(bankID)).Err()
}

func (c *CatalogCache) SavePattern(ctx context.Context, pattern domain.ExamPattern) error {
	if err := c.catalog.SavePattern(ctx, pattern); err != nil {
		return err
	}
	return c.client.Del(ctx, patternKey(pattern.ID)).Err()
}

func (c *CatalogCache) DeletePattern(ctx context.Context, patternID string) error {
	if err := c.catalog.DeletePattern(ctx, patternID); err != nil {
		return err
	}
	return c.client.Del(ctx, patternKey(patternID)).Err()
}

// fetch decodes the cached JSON at key into dst, or loads, caches and decodes it.
func (c *CatalogCache) fetch(ctx context.Context, key string, dst interface{}, load func() (interface{}, error)) error {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		return json.Unmarshal(raw, dst)
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if raw, err := c.client.Get(ctx, key).Bytes(); err == nil {
			return raw, nil
		}

		v, err := load()
		if err != nil {
			return nil, err
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("marshal %s: %w", key, err)
		}
		// A zero expiration means "keep forever" to redis; a non-positive ttl disables caching instead.
		if c.ttl > 0 {
			// best-effort; a failed SET only costs another load
			_ = c.client.Set(ctx, key, raw, c.ttlWithJitter()).Err()
		}
		return raw, nil
	})
	if err != nil {
		return err
	}
	return json.Unmarshal(result.([]byte), dst)
}

func bankKey(bankID string) string {
	return "catalog:bank:" + bankID
}

func patternKey(patternID string) string {
	return "catalog:pattern:" + patternID
}

func (c *CatalogCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	c.rndMu.Lock()
	defer c.rndMu.Unlock()
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
