package config

import "time"

// Config is the main daemon/CLI configuration structure, loaded by Load and
// hot-reloaded by Watch. It configures the external collaborators around
// the sanitization engine; the engine itself never reads this struct.
type Config struct {
	Rules    RulesConfig    `yaml:"rules" mapstructure:"rules"`
	Sampling SamplingConfig `yaml:"sampling" mapstructure:"sampling"`
	Audit    AuditConfig    `yaml:"audit" mapstructure:"audit"`
	Cache    CacheConfig    `yaml:"cache" mapstructure:"cache"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Logging  LoggingConfig  `yaml:"logging" mapstructure:"logging"`
}

// RulesConfig controls which rules are active and where user overlays
// come from.
type RulesConfig struct {
	UserRulesPath string   `yaml:"user_rules_path" mapstructure:"user_rules_path"`
	ActiveSet     string   `yaml:"active_set" mapstructure:"active_set"` // "default" or "strict"
	Enable        []string `yaml:"enable" mapstructure:"enable"`
	Disable       []string `yaml:"disable" mapstructure:"disable"`
}

// SamplingConfig bounds the unique sample sets a RedactionSummary retains
// per rule.
type SamplingConfig struct {
	SampleCap int `yaml:"sample_cap" mapstructure:"sample_cap"`
}

// AuditConfig controls the optional append-only audit log and Parquet
// export path.
type AuditConfig struct {
	Enabled    bool   `yaml:"enabled" mapstructure:"enabled"`
	LogPath    string `yaml:"log_path" mapstructure:"log_path"`
	ExportPath string `yaml:"export_path" mapstructure:"export_path"`
}

// CacheConfig controls the optional Redis-backed memoization cache used by
// the line-buffered streaming mode.
type CacheConfig struct {
	Enabled  bool          `yaml:"enabled" mapstructure:"enabled"`
	Address  string        `yaml:"address" mapstructure:"address"`
	TTL      time.Duration `yaml:"ttl" mapstructure:"ttl"`
	Database int           `yaml:"database" mapstructure:"database"`
}

// ServerConfig configures the live redaction-event dashboard (`quietline
// serve`).
type ServerConfig struct {
	Port            int           `yaml:"port" mapstructure:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" mapstructure:"idle_timeout"`
	MaxConnections  int           `yaml:"max_connections" mapstructure:"max_connections"`
	PingInterval    time.Duration `yaml:"ping_interval" mapstructure:"ping_interval"`
	PongTimeout     time.Duration `yaml:"pong_timeout" mapstructure:"pong_timeout"`
	AllowedOrigins  []string      `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"` // json or console
	File   struct {
		Enabled  bool   `yaml:"enabled" mapstructure:"enabled"`
		Path     string `yaml:"path" mapstructure:"path"`
		MaxSize  int    `yaml:"max_size" mapstructure:"max_size"`
		MaxAge   int    `yaml:"max_age" mapstructure:"max_age"`
		Compress bool   `yaml:"compress" mapstructure:"compress"`
	} `yaml:"file" mapstructure:"file"`
	AllowDebugPII bool `yaml:"allow_debug_pii" mapstructure:"allow_debug_pii"`
}

// GetDefaults returns a configuration with sensible defaults.
func GetDefaults() *Config {
	return &Config{
		Rules: RulesConfig{
			ActiveSet: "default",
		},
		Sampling: SamplingConfig{
			SampleCap: 5,
		},
		Audit: AuditConfig{
			Enabled: false,
			LogPath: "quietline-audit.jsonl",
		},
		Cache: CacheConfig{
			Enabled:  false,
			Address:  "localhost:6379",
			TTL:      10 * time.Minute,
			Database: 0,
		},
		Server: ServerConfig{
			Port:           8787,
			ReadTimeout:    30 * time.Second,
			WriteTimeout:   30 * time.Second,
			IdleTimeout:    60 * time.Second,
			MaxConnections: 100,
			PingInterval:   54 * time.Second,
			PongTimeout:    60 * time.Second,
			AllowedOrigins: []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			File: struct {
				Enabled  bool   `yaml:"enabled" mapstructure:"enabled"`
				Path     string `yaml:"path" mapstructure:"path"`
				MaxSize  int    `yaml:"max_size" mapstructure:"max_size"`
				MaxAge   int    `yaml:"max_age" mapstructure:"max_age"`
				Compress bool   `yaml:"compress" mapstructure:"compress"`
			}{
				Enabled:  false,
				Path:     "logs/quietline.log",
				MaxSize:  100,
				MaxAge:   30,
				Compress: true,
			},
			AllowDebugPII: false,
		},
	}
}
