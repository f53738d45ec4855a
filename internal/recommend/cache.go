package recommend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/p-n-ai/pai-recommender/internal/catalog"
)

const cacheKeyPrefix = "recommend:"

// ResultCache stores recommendation results by request key.
type ResultCache interface {
	Get(ctx context.Context, key string) (Result, bool, error)
	Set(ctx context.Context, key string, res Result, ttl time.Duration) error
}

// CacheKey identifies a request against a specific catalog. Requests that
// normalize to the same interests and difficulty share a key.
func CacheKey(c *catalog.Catalog, interests []string, score float64, topK int) string {
	subjects := NormalizeInterests(interests)
	sort.Strings(subjects)

	var b strings.Builder
	b.WriteString(CacheKeyPrefix(c))
	b.WriteString(string(ScoreToDifficulty(score)))
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(topK))
	b.WriteByte(':')
	b.WriteString(strings.Join(subjects, "|"))
	return b.String()
}

// CacheKeyPrefix is shared by every key computed against c.
func CacheKeyPrefix(c *catalog.Catalog) string {
	if c == nil {
		return cacheKeyPrefix + ":"
	}
	return cacheKeyPrefix + c.Fingerprint() + ":"
}

// RedisCache keeps results in Redis/Dragonfly as JSON.
type RedisCache struct {
	client redis.UniversalClient
}

// NewRedisCache wraps an existing client.
func NewRedisCache(client redis.UniversalClient) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, key string) (Result, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return Result{}, false, nil
	}
	if err != nil {
		return Result{}, false, fmt.Errorf("get %s: %w", key, err)
	}

	var res Result
	if err := json.Unmarshal(data, &res); err != nil {
		return Result{}, false, fmt.Errorf("decode %s: %w", key, err)
	}
	if res.Records == nil {
		res.Records = []catalog.Record{}
	}
	return res, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, res Result, ttl time.Duration) error {
	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}
