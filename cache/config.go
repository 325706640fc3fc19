package cache

import (
	"time"

	"github.com/goliatone/go-user-records/internal/cacheinfra"
)

// Backend names accepted in Config.Backend.
const (
	BackendRedis  = string(cacheinfra.BackendRedis)
	BackendMemory = string(cacheinfra.BackendMemory)
)

// Config exposes cache configuration options for consumers of the cache package.
type Config struct {
	Backend           string        `yaml:"backend" toml:"backend"`
	Codec             string        `yaml:"codec" toml:"codec"`
	TTL               time.Duration `yaml:"ttl" toml:"ttl"`
	RedisURL          string        `yaml:"redis_url" toml:"redis_url"`
	ConnectionTimeout time.Duration `yaml:"connection_timeout" toml:"connection_timeout"`
	MaxRetries        int           `yaml:"max_retries" toml:"max_retries"`

	Capacity           int           `yaml:"capacity" toml:"capacity"`
	NumShards          int           `yaml:"num_shards" toml:"num_shards"`
	EvictionPercentage int           `yaml:"eviction_percentage" toml:"eviction_percentage"`
	EvictionInterval   time.Duration `yaml:"eviction_interval" toml:"eviction_interval"`
}

// DefaultConfig returns a Config populated with the service defaults.
func DefaultConfig() Config {
	cfg := convertFromInternal(cacheinfra.DefaultConfig())
	cfg.Codec = CodecJSON
	return cfg
}

// Validate checks whether the configuration values are valid.
func (c Config) Validate() error {
	if c.Codec != "" {
		if _, err := CodecByName(c.Codec); err != nil {
			return &cacheinfra.ConfigError{Field: "Codec", Message: err.Error()}
		}
	}
	return c.toInternal().Validate()
}

func (c Config) toInternal() cacheinfra.Config {
	return cacheinfra.Config{
		Backend:            cacheinfra.Backend(c.Backend),
		TTL:                c.TTL,
		RedisURL:           c.RedisURL,
		ConnectionTimeout:  c.ConnectionTimeout,
		MaxRetries:         c.MaxRetries,
		Capacity:           c.Capacity,
		NumShards:          c.NumShards,
		EvictionPercentage: c.EvictionPercentage,
		EvictionInterval:   c.EvictionInterval,
	}
}

func convertFromInternal(cfg cacheinfra.Config) Config {
	return Config{
		Backend:            string(cfg.Backend),
		TTL:                cfg.TTL,
		RedisURL:           cfg.RedisURL,
		ConnectionTimeout:  cfg.ConnectionTimeout,
		MaxRetries:         cfg.MaxRetries,
		Capacity:           cfg.Capacity,
		NumShards:          cfg.NumShards,
		EvictionPercentage: cfg.EvictionPercentage,
		EvictionInterval:   cfg.EvictionInterval,
	}
}
