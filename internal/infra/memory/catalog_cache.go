package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"exam-paper-service/internal/domain"
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

// CatalogCache caches banks and patterns with TTL to avoid repeated DB hits.
// Writes go through to the catalog and evict the cached entry.
type CatalogCache struct {
	catalog  Catalog
	banks    *ttlCache[domain.QuestionBank]
	patterns *ttlCache[domain.ExamPattern]
}

func NewCatalogCache(catalog Catalog, ttl time.Duration) *CatalogCache {
	return &CatalogCache{
		catalog:  catalog,
		banks:    newTTLCache[domain.QuestionBank](ttl),
		patterns: newTTLCache[domain.ExamPattern](ttl),
	}
}

func (c *CatalogCache) GetBank(ctx context.Context, bankID string) (domain.QuestionBank, error) {
	return c.banks.get(bankID, func() (domain.QuestionBank, error) {
		return c.catalog.LoadBank(ctx, bankID)
	})
}

func (c *CatalogCache) GetPattern(ctx context.Context, patternID string) (domain.ExamPattern, error) {
	return c.patterns.get(patternID, func() (domain.ExamPattern, error) {
		return c.catalog.LoadPattern(ctx, patternID)
	})
}

func (c *CatalogCache) SaveBank(ctx context.Context, bank domain.QuestionBank) error {
	defer c.banks.evict(bank.ID)
	return c.catalog.SaveBank(ctx, bank)
}

func (c *CatalogCache) DeleteBank(ctx context.Context, bankID string) error {
	defer c.banks.evict(bankID)
	return c.catalog.DeleteBank(ctx, bankID)
}

func (c *CatalogCache) SavePattern(ctx context.Context, pattern domain.ExamPattern) error {
	defer c.patterns.evict(pattern.ID)
	return c.catalog.SavePattern(ctx, pattern)
}

func (c *CatalogCache) DeletePattern(ctx context.Context, patternID string) error {
	defer c.patterns.evict(patternID)
	return c.catalog.DeletePattern(ctx, patternID)
}

type ttlCache[T any] struct {
	ttl   time.Duration
	clock func() time.Time
	sf    singleflight.Group

	rndMu sync.Mutex
	rnd   *rand.Rand

	mu      sync.RWMutex
	entries map[string]cached[T]
}

type cached[T any] struct {
	value     T
	expiresAt time.Time
}

func newTTLCache[T any](ttl time.Duration) *ttlCache[T] {
	return &ttlCache[T]{
		ttl:     ttl,
		clock:   time.Now,
		rnd:     rand.New(rand.NewSource(time.Now().UnixNano())),
		entries: make(map[string]cached[T]),
	}
}

func (c *ttlCache[T]) lookup(key string, now time.Time) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[key]
	if ok && entry.expiresAt.After(now) {
		return entry.value, true
	}
	var zero T
	return zero, false
}

func (c *ttlCache[T]) get(key string, load func() (T, error)) (T, error) {
	if v, ok := c.lookup(key, c.clock()); ok {
		return v, nil
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		now := c.clock()
		if v, ok := c.lookup(key, now); ok {
			return v, nil
		}

		v, err := load()
		if err != nil {
			return v, err
		}

		c.mu.Lock()
		c.entries[key] = cached[T]{value: v, expiresAt: now.Add(c.ttlWithJitter())}
		c.mu.Unlock()
		return v, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result.(T), nil
}

func (c *ttlCache[T]) evict(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

func (c *ttlCache[T]) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	c.rndMu.Lock()
	defer c.rndMu.Unlock()
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
