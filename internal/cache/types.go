package cache

import "time"

// CachedResult is a memoized sanitization outcome for a given input, keyed
// by a hash of its content and the active rule set.
type CachedResult struct {
	Output    string                `json:"output"`
	Matches   []CachedMatch         `json:"matches"`
	CachedAt  time.Time             `json:"cached_at"`
	TTL       int64                 `json:"ttl"`
}

// CachedMatch is the serializable projection of a redact.RedactionMatch.
type CachedMatch struct {
	RuleName  string `json:"rule_name"`
	Start     int    `json:"start"`
	End       int    `json:"end"`
	Sanitized string `json:"sanitized"`
}

// Stats reports cache performance counters.
type Stats struct {
	Hits        int64   `json:"hits"`
	Misses      int64   `json:"misses"`
	HitRate     float64 `json:"hit_rate"`
	TotalKeys   int64   `json:"total_keys"`
	MemoryUsage int64   `json:"memory_usage_bytes"`
}

// Config contains cache configuration.
type Config struct {
	RedisURL        string        `yaml:"redis_url" mapstructure:"redis_url"`
	MaxConnections  int           `yaml:"max_connections" mapstructure:"max_connections"`
	MinIdleConns    int           `yaml:"min_idle_conns" mapstructure:"min_idle_conns"`
	DefaultTTL      time.Duration `yaml:"default_ttl" mapstructure:"default_ttl"`
	KeyPrefix       string        `yaml:"key_prefix" mapstructure:"key_prefix"`
}
