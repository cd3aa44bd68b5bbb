package triagecache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/navegador/internal/db"
	"github.com/kailas-cloud/navegador/internal/domain"
	domtriage "github.com/kailas-cloud/navegador/internal/domain/triage"
)

var cacheKeyPrefix = domain.KeyPrefix + "triage_cache:"

// Analyzer produces a recommendation for a report.
type Analyzer interface {
	Analyze(ctx context.Context, report string) (domtriage.Result, error)
}

// store is the consumer interface for the result cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CachedAnalyzer caches triage results per (report, current minute).
type CachedAnalyzer struct {
	inner      Analyzer
	store      store
	ttl        time.Duration
	clock      func() string
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// clock returns the HH:MM hint sent to the model, so a cached answer never outlives its minute.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), may be nil.
func New(
	inner Analyzer,
	s store,
	ttl time.Duration,
	clock func() string,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedAnalyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedAnalyzer{
		inner:      inner,
		store:      s,
		ttl:        ttl,
		clock:      clock,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Analyze returns a cached result or calls the inner analyzer.
// Store failures degrade to a miss.
func (c *CachedAnalyzer) Analyze(ctx context.Context, report string) (domtriage.Result, error) {
	key := c.cacheKey(report, c.clock())

	if res, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		domain.UsageFromContext(ctx).MarkUsed()
		return res, nil
	}

	c.incCache("miss")

	res, err := c.inner.Analyze(ctx, report)
	if err != nil {
		return domtriage.Result{}, fmt.Errorf("analyze report: %w", err)
	}

	c.putToCache(ctx, key, res)
	return res, nil
}

func (c *CachedAnalyzer) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (c *CachedAnalyzer) cacheKey(report, clock string) string {
	h := sha256.Sum256([]byte(report + "\x00" + clock))
	return cacheKeyPrefix + hex.EncodeToString(h[:])
}

func (c *CachedAnalyzer) getFromCache(ctx context.Context, key string) (domtriage.Result, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached triage", zap.String("key", key), zap.Error(err))
		}
		return domtriage.Result{}, false
	}
	if len(data) == 0 {
		return domtriage.Result{}, false
	}

	var dto resultDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		c.logger.Warn("Failed to parse cached triage", zap.String("key", key), zap.Error(err))
		return domtriage.Result{}, false
	}
	res, err := dto.toDomain()
	if err != nil {
		c.logger.Warn("Cached triage is invalid", zap.String("key", key), zap.Error(err))
		return domtriage.Result{}, false
	}
	return res, true
}

func (c *CachedAnalyzer) putToCache(ctx context.Context, key string, res domtriage.Result) {
	data, err := json.Marshal(fromDomain(res))
	if err != nil {
		c.logger.Warn("Failed to encode triage for cache", zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache triage", zap.String("key", key), zap.Error(err))
	}
}
