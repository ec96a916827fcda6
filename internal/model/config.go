package model

import (
	"os"
	"path/filepath"
)

// Config is the full runtime configuration, assembled from defaults,
// the config file, environment variables and CLI flags (in that order).
type Config struct {
	Input       InputConfig       `yaml:"input" mapstructure:"input"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
	Split       SplitConfig       `yaml:"split" mapstructure:"split"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	RateLimit   RateLimitConfig   `yaml:"rate_limit" mapstructure:"rate_limit"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Align       AlignConfig       `yaml:"align" mapstructure:"align"`
	Verbose     bool              `yaml:"verbose" mapstructure:"verbose"`
}

// InputConfig controls where source documents are resolved from.
type InputConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"` // base for relative document paths
}

// OutputConfig controls where result CSVs are written.
type OutputConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"` // created if missing
}

// SplitConfig controls how document text is chunked.
type SplitConfig struct {
	Mode         string `yaml:"mode" mapstructure:"mode"`                   // paragraph, sentence, length
	ChunkSize    int    `yaml:"chunk_size" mapstructure:"chunk_size"`       // bound in runes
	ChunkOverlap int    `yaml:"chunk_overlap" mapstructure:"chunk_overlap"` // runes, length mode only
}

// LLMConfig holds the provider configuration. Keys and endpoints are
// passed explicitly into the provider constructor; there is no ambient
// SDK state to mutate in tests.
type LLMConfig struct {
	Provider    string  `yaml:"provider" mapstructure:"provider"` // anthropic, openai, ollama
	Model       string  `yaml:"model" mapstructure:"model"`
	APIKey      string  `yaml:"-" mapstructure:"api_key"` // never serialized into config files
	BaseURL     string  `yaml:"base_url" mapstructure:"base_url"`
	Timeout     int     `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens   int     `yaml:"max_tokens" mapstructure:"max_tokens"`
	Temperature float32 `yaml:"temperature" mapstructure:"temperature"`
}

// ConcurrencyConfig bounds the chunk-extraction worker pool.
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// RateLimitConfig caps outbound LLM request rates.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int     `yaml:"burst" mapstructure:"burst"`
}

// CacheConfig controls the layered LLM response cache.
type CacheConfig struct {
	Enabled    bool   `yaml:"enabled" mapstructure:"enabled"`
	Dir        string `yaml:"dir" mapstructure:"dir"`
	MemoryTTL  int    `yaml:"memory_ttl" mapstructure:"memory_ttl"`   // minutes
	DiskTTLDay int    `yaml:"disk_ttl_days" mapstructure:"disk_ttl_days"`
}

// AlignConfig controls the term alignment step.
type AlignConfig struct {
	BatchSize      int  `yaml:"batch_size" mapstructure:"batch_size"`           // Chinese terms per alignment request
	KeepUnmatched  bool `yaml:"keep_unmatched" mapstructure:"keep_unmatched"`   // emit unmatched terms with empty counterpart
	WithConfidence bool `yaml:"with_confidence" mapstructure:"with_confidence"` // include confidence column in the glossary CSV
}

// DefaultConfig returns the built-in defaults. The worker count and
// alignment batch size mirror the defaults the tool has always shipped
// with (5 workers, 50 terms per batch).
func DefaultConfig() *Config {
	cacheDir := ".extract_terms/cache"
	if home, err := os.UserHomeDir(); err == nil {
		cacheDir = filepath.Join(home, ".extract_terms", "cache")
	}

	return &Config{
		Input:  InputConfig{Dir: "./input"},
		Output: OutputConfig{Dir: "./output"},
		Split: SplitConfig{
			Mode:         "paragraph",
			ChunkSize:    4096,
			ChunkOverlap: 0,
		},
		LLM: LLMConfig{
			Provider:    "anthropic",
			Model:       "",
			Timeout:     60,
			MaxTokens:   4096,
			Temperature: 0,
		},
		Concurrency: ConcurrencyConfig{Workers: 5},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 2.0,
			Burst:             5,
		},
		Cache: CacheConfig{
			Enabled:    true,
			Dir:        cacheDir,
			MemoryTTL:  60,
			DiskTTLDay: 7,
		},
		Align: AlignConfig{
			BatchSize:      50,
			KeepUnmatched:  false,
			WithConfidence: false,
		},
	}
}
