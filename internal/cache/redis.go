package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ResultCache memoizes sanitize() outcomes in Redis, keyed by a hash of the
// input content and the active rule set's fingerprint. Intended for the
// streaming/line mode, where the same line (a repeated log template, a
// prompt resent after a retry) is often sanitized more than once.
type ResultCache struct {
	client *redis.Client
	config *Config
	logger *zap.Logger
	stats  cacheCounters
}

type cacheCounters struct {
	hits   int64
	misses int64
}

// NewResultCache creates a new Redis-backed result cache.
func NewResultCache(config *Config, logger *zap.Logger) (*ResultCache, error) {
	opts, err := redis.ParseURL(config.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	opts.PoolSize = config.MaxConnections
	opts.MinIdleConns = config.MinIdleConns

	client := redis.NewClient(opts)

	rc := &ResultCache{
		client: client,
		config: config,
		logger: logger,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rc.ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("result cache initialized",
		zap.String("redis_url", maskRedisURL(config.RedisURL)),
		zap.Int("max_connections", config.MaxConnections),
		zap.Duration("default_ttl", config.DefaultTTL))

	return rc, nil
}

func (rc *ResultCache) ping(ctx context.Context) error {
	_, err := rc.client.Ping(ctx).Result()
	return err
}

// Key derives a deterministic cache key from the raw input bytes and a
// rule-set fingerprint (e.g. a hash of the active rule names and their
// patterns), so a config reload invalidates stale entries implicitly.
func Key(prefix string, content []byte, rulesetFingerprint string) string {
	hasher := sha256.New()
	hasher.Write(content)
	hasher.Write([]byte{0})
	hasher.Write([]byte(rulesetFingerprint))
	hash := hex.EncodeToString(hasher.Sum(nil))
	return fmt.Sprintf("%s:res:%s", prefix, hash[:24])
}

// Get looks up a cached result. The returned bool reports a cache hit.
func (rc *ResultCache) Get(ctx context.Context, key string) (*CachedResult, bool) {
	data, err := rc.client.Get(ctx, key).Result()
	if err == redis.Nil {
		rc.stats.misses++
		return nil, false
	}
	if err != nil {
		rc.logger.Error("cache lookup failed", zap.Error(err))
		return nil, false
	}

	var result CachedResult
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		rc.logger.Error("failed to unmarshal cached result", zap.Error(err))
		rc.client.Del(ctx, key)
		return nil, false
	}

	rc.stats.hits++
	return &result, true
}

// Put stores a result under key with the cache's configured default TTL.
func (rc *ResultCache) Put(ctx context.Context, key string, result *CachedResult) error {
	result.CachedAt = time.Now()
	result.TTL = int64(rc.config.DefaultTTL.Seconds())

	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result for caching: %w", err)
	}

	if err := rc.client.Set(ctx, key, data, rc.config.DefaultTTL).Err(); err != nil {
		rc.logger.Error("failed to cache result", zap.Error(err))
		return fmt.Errorf("failed to cache result: %w", err)
	}
	return nil
}

// Stats returns current cache performance statistics.
func (rc *ResultCache) Stats(ctx context.Context) (*Stats, error) {
	info, err := rc.client.Info(ctx, "memory", "stats").Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get Redis info: %w", err)
	}

	stats := &Stats{
		Hits:   rc.stats.hits,
		Misses: rc.stats.misses,
	}

	total := stats.Hits + stats.Misses
	if total > 0 {
		stats.HitRate = float64(stats.Hits) / float64(total) * 100
	}

	for _, line := range strings.Split(info, "\r\n") {
		if strings.HasPrefix(line, "used_memory:") {
			if memStr := strings.TrimPrefix(line, "used_memory:"); memStr != "" {
				if mem, err := strconv.ParseInt(memStr, 10, 64); err == nil {
					stats.MemoryUsage = mem
				}
			}
		}
	}

	if keys, err := rc.client.DBSize(ctx).Result(); err == nil {
		stats.TotalKeys = keys
	}

	return stats, nil
}

// Clear removes all cached results under this cache's key prefix.
func (rc *ResultCache) Clear(ctx context.Context) error {
	pattern := rc.config.KeyPrefix + ":res:*"

	iter := rc.client.Scan(ctx, 0, pattern, 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cache keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}

	const batchSize = 100
	for i := 0; i < len(keys); i += batchSize {
		end := i + batchSize
		if end > len(keys) {
			end = len(keys)
		}
		if err := rc.client.Del(ctx, keys[i:end]...).Err(); err != nil {
			return fmt.Errorf("failed to delete cache keys: %w", err)
		}
	}

	rc.logger.Info("cache cleared", zap.Int("deleted_keys", len(keys)))
	return nil
}

// Close closes the Redis connection.
func (rc *ResultCache) Close() error {
	if rc.client != nil {
		return rc.client.Close()
	}
	return nil
}

func maskRedisURL(url string) string {
	if strings.Contains(url, "@") {
		parts := strings.Split(url, "@")
		if len(parts) >= 2 {
			userPart := parts[0]
			if strings.Contains(userPart, ":") {
				userParts := strings.Split(userPart, ":")
				if len(userParts) >= 3 {
					userParts[len(userParts)-1] = "***"
					parts[0] = strings.Join(userParts, ":")
				}
			}
			return strings.Join(parts, "@")
		}
	}
	return url
}
