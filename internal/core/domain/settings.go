package domain

import (
	"fmt"
	"time"
)

// Default configuration values.
const (
	// DefaultTimeout bounds each network call. Timeouts apply per call,
	// not cumulatively across a retrieval.
	DefaultTimeout = 10 * time.Second

	// DefaultUserAgent identifies the engine to publishers.
	DefaultUserAgent = "aio-retriever/0.1 (ECR-compatible)"

	// DefaultAIOPath is the conventional structured-content location
	// probed when no other discovery signal is present.
	DefaultAIOPath = "/ai-content.aio"

	// DefaultUnsignedNoiseScore is assigned to structurally valid but
	// unsigned documents. Unsigned content is lower trust than signed,
	// but not fatal.
	DefaultUnsignedNoiseScore = 0.25

	// DefaultFallbackNoiseScore is the fixed score for scrape-derived
	// narratives, reflecting unverified, unstructured provenance.
	DefaultFallbackNoiseScore = 0.85

	// DefaultRequestsPerSecond throttles outbound fetches per client.
	DefaultRequestsPerSecond = 4.0

	// DefaultCacheTTL bounds how long cached envelopes are served.
	DefaultCacheTTL = 15 * time.Minute
)

// SupportedMajorVersions lists the aio_version majors the verifier accepts.
var SupportedMajorVersions = []int{1, 2}

// Config holds the engine settings. Values load from the TOML config
// file and may be overridden by AIO_* environment variables.
type Config struct {
	// TimeoutSeconds is the per-call network timeout.
	TimeoutSeconds int `toml:"timeout_seconds" envconfig:"TIMEOUT_SECONDS"`

	// UserAgent is sent on every outbound request.
	UserAgent string `toml:"user_agent" envconfig:"USER_AGENT"`

	// DefaultPath is the conventional AIO path probed by discovery.
	DefaultPath string `toml:"default_path" envconfig:"DEFAULT_PATH"`

	// UnsignedNoiseScore applies to valid-but-unsigned documents.
	UnsignedNoiseScore float64 `toml:"unsigned_noise_score" envconfig:"UNSIGNED_NOISE_SCORE"`

	// FallbackNoiseScore applies to scrape-derived envelopes.
	FallbackNoiseScore float64 `toml:"fallback_noise_score" envconfig:"FALLBACK_NOISE_SCORE"`

	// RequestsPerSecond caps outbound request rate.
	RequestsPerSecond float64 `toml:"requests_per_second" envconfig:"REQUESTS_PER_SECOND"`

	// CacheEnabled turns the envelope cache on.
	CacheEnabled bool `toml:"cache_enabled" envconfig:"CACHE_ENABLED"`

	// CacheTTLMinutes bounds cached envelope age.
	CacheTTLMinutes int `toml:"cache_ttl_minutes" envconfig:"CACHE_TTL_MINUTES"`
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		TimeoutSeconds:     int(DefaultTimeout / time.Second),
		UserAgent:          DefaultUserAgent,
		DefaultPath:        DefaultAIOPath,
		UnsignedNoiseScore: DefaultUnsignedNoiseScore,
		FallbackNoiseScore: DefaultFallbackNoiseScore,
		RequestsPerSecond:  DefaultRequestsPerSecond,
		CacheEnabled:       false,
		CacheTTLMinutes:    int(DefaultCacheTTL / time.Minute),
	}
}

// Timeout returns the per-call timeout as a duration.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return DefaultTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// CacheTTL returns the cache entry lifetime as a duration.
func (c Config) CacheTTL() time.Duration {
	if c.CacheTTLMinutes <= 0 {
		return DefaultCacheTTL
	}
	return time.Duration(c.CacheTTLMinutes) * time.Minute
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.UnsignedNoiseScore < 0 || c.UnsignedNoiseScore > 1 {
		return fmt.Errorf("%w: unsigned_noise_score must be in [0,1]", ErrInvalidInput)
	}
	if c.FallbackNoiseScore < 0 || c.FallbackNoiseScore > 1 {
		return fmt.Errorf("%w: fallback_noise_score must be in [0,1]", ErrInvalidInput)
	}
	if c.RequestsPerSecond <= 0 {
		return fmt.Errorf("%w: requests_per_second must be positive", ErrInvalidInput)
	}
	if c.DefaultPath == "" || c.DefaultPath[0] != '/' {
		return fmt.Errorf("%w: default_path must start with /", ErrInvalidInput)
	}
	return nil
}
