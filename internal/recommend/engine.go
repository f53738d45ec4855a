package recommend

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/p-n-ai/pai-recommender/internal/catalog"
	"github.com/p-n-ai/pai-recommender/internal/platform/metrics"
)

const defaultCacheTTL = 5 * time.Minute

// EngineConfig holds dependencies for the recommendation engine.
type EngineConfig struct {
	Catalog  *catalog.Catalog // defaults to catalog.Sample()
	Cache    ResultCache      // optional
	CacheTTL time.Duration    // default 5m
}

// Engine serves recommendations from the current catalog. The catalog is
// read-only; Swap replaces it atomically so readers never see a partial one.
type Engine struct {
	catalog  atomic.Pointer[catalog.Catalog]
	cache    ResultCache
	cacheTTL time.Duration
}

// NewEngine creates a new recommendation engine.
func NewEngine(cfg EngineConfig) *Engine {
	c := cfg.Catalog
	if c == nil {
		c = catalog.Sample()
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	e := &Engine{cache: cfg.Cache, cacheTTL: ttl}
	e.catalog.Store(c)
	return e
}

// Catalog returns the catalog currently in use.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog.Load()
}

// Swap installs c and returns the previous catalog. A nil c is ignored.
func (e *Engine) Swap(c *catalog.Catalog) *catalog.Catalog {
	if c == nil {
		return e.catalog.Load()
	}
	old := e.catalog.Swap(c)
	slog.Info("catalog swapped", "source", c.Source(), "records", c.Len(), "fingerprint", c.Fingerprint())
	return old
}

// Recommend runs Recommend against the current catalog, consulting the
// result cache when one is configured. Cache failures only cost a lookup.
func (e *Engine) Recommend(ctx context.Context, interests []string, score float64, topK int) Result {
	c := e.catalog.Load()

	var key string
	if e.cache != nil && topK > 0 {
		key = CacheKey(c, interests, score, topK)
		res, ok, err := e.cache.Get(ctx, key)
		switch {
		case err != nil:
			slog.Warn("result cache lookup failed", "error", err)
			metrics.ResultCache.WithLabelValues("error").Inc()
		case ok:
			metrics.ResultCache.WithLabelValues("hit").Inc()
			observe(res)
			return res
		default:
			metrics.ResultCache.WithLabelValues("miss").Inc()
		}
	}

	res := Recommend(c, interests, score, topK)
	observe(res)

	if key != "" {
		if err := e.cache.Set(ctx, key, res, e.cacheTTL); err != nil {
			slog.Warn("result cache store failed", "error", err)
		}
	}

	slog.Debug("recommendation served",
		"difficulty", res.Difficulty,
		"tier", res.Tier.String(),
		"count", len(res.Records),
	)
	return res
}

func observe(res Result) {
	metrics.Recommendations.WithLabelValues(res.Tier.String()).Inc()
	metrics.RecommendationSize.Observe(float64(len(res.Records)))
}
