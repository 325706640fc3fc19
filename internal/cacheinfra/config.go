package cacheinfra

import (
	"time"
)

// Backend selects the store that holds serialized records.
type Backend string

const (
	// BackendRedis keeps entries in a Redis server or cluster.
	BackendRedis Backend = "redis"
	// BackendMemory keeps entries in an in-process sturdyc client.
	BackendMemory Backend = "memory"
)

// Config holds the configuration for the cache stores.
type Config struct {
	// Backend selects the store implementation. Default: redis
	Backend Backend

	// TTL is the default time-to-live for cached entries.
	// Must be greater than 0.
	TTL time.Duration

	// RedisURL is one redis:// URL, or a comma separated list of URLs or
	// host:port addresses for a cluster. Required for the redis backend.
	RedisURL string

	// ConnectionTimeout bounds dialing the redis server. Zero keeps the
	// client default.
	ConnectionTimeout time.Duration

	// MaxRetries is the number of connection level retries per command.
	// -1 disables retries.
	MaxRetries int

	// Capacity defines the maximum number of entries the memory backend stores.
	Capacity int

	// NumShards determines the number of memory backend shards.
	NumShards int

	// EvictionPercentage specifies what percentage of entries to evict
	// when the memory backend reaches its capacity. Must be between 1-100.
	EvictionPercentage int

	// EvictionInterval sets how often the memory backend checks for expired
	// entries. Zero value uses the default interval.
	EvictionInterval time.Duration
}

// DefaultConfig returns a Config with the defaults of the original service:
// a ten hour TTL, a three second connect timeout and three retries.
func DefaultConfig() Config {
	return Config{
		Backend:            BackendRedis,
		TTL:                36000 * time.Second,
		RedisURL:           "redis://:secret_password@localhost:6379",
		ConnectionTimeout:  3 * time.Second,
		MaxRetries:         3,
		Capacity:           10000,
		NumShards:          256,
		EvictionPercentage: 10,
		EvictionInterval:   0, // Use default
	}
}

// Validate checks if the configuration values are valid.
// Returns an error if any configuration parameter is invalid.
func (c Config) Validate() error {
	if c.TTL <= 0 {
		return &ConfigError{Field: "TTL", Message: "must be greater than 0"}
	}

	switch c.Backend {
	case BackendRedis:
		if c.RedisURL == "" {
			return &ConfigError{Field: "RedisURL", Message: "is required for the redis backend"}
		}
		if c.ConnectionTimeout < 0 {
			return &ConfigError{Field: "ConnectionTimeout", Message: "must be non-negative"}
		}
		if c.MaxRetries < -1 {
			return &ConfigError{Field: "MaxRetries", Message: "must be -1 or greater"}
		}
	case BackendMemory:
		if c.Capacity <= 0 {
			return &ConfigError{Field: "Capacity", Message: "must be greater than 0"}
		}
		if c.NumShards <= 0 {
			return &ConfigError{Field: "NumShards", Message: "must be greater than 0"}
		}
		if c.EvictionPercentage < 1 || c.EvictionPercentage > 100 {
			return &ConfigError{Field: "EvictionPercentage", Message: "must be between 1 and 100"}
		}
		if c.EvictionInterval < 0 {
			return &ConfigError{Field: "EvictionInterval", Message: "must be non-negative"}
		}
	default:
		return &ConfigError{Field: "Backend", Message: "must be one of redis, memory"}
	}

	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "config error in field " + e.Field + ": " + e.Message
}
