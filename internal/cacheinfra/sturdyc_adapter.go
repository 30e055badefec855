package cacheinfra

import (
	"context"
	"time"

	"github.com/viccon/sturdyc"
)

// Config holds the configuration for the sturdyc cache adapter.
type Config struct {
	// Capacity is the maximum number of entries across all shards.
	// Must be greater than 0.
	Capacity int

	// NumShards splits the keyspace into independently locked shards.
	// Must be greater than 0 and not larger than Capacity.
	NumShards int

	// TTL is measured from the moment an entry is stored. Entries are never
	// refreshed in place; once expired the next read fetches again.
	// Must be greater than 0.
	TTL time.Duration

	// EvictionPercentage is the share of a full shard evicted to make room.
	// Must be between 1-100.
	EvictionPercentage int

	// EvictionInterval sets how often expired entries are swept.
	// Zero uses the sturdyc default.
	EvictionInterval time.Duration

	// Clock overrides the time source. Nil uses the wall clock.
	Clock sturdyc.Clock
}

// DefaultConfig returns a Config sized for a small reference catalog with
// a ten minute TTL.
func DefaultConfig() Config {
	return Config{
		Capacity:           64,
		NumShards:          4,
		TTL:                10 * time.Minute,
		EvictionPercentage: 10,
	}
}

// ToSturdycOptions converts the optional parts of Config to sturdyc options.
// Capacity, NumShards, TTL and EvictionPercentage go to sturdyc.New directly.
// Early refreshes and missing record storage are never enabled: a cached
// value lives exactly TTL and fetch failures are not remembered.
func (c Config) ToSturdycOptions() []sturdyc.Option {
	var options []sturdyc.Option

	if c.EvictionInterval > 0 {
		options = append(options, sturdyc.WithEvictionInterval(c.EvictionInterval))
	}

	if c.Clock != nil {
		options = append(options, sturdyc.WithClock(c.Clock))
	}

	return options
}

// Validate checks if the configuration values are valid.
func (c Config) Validate() error {
	if c.Capacity <= 0 {
		return &ConfigError{Field: "Capacity", Message: "must be greater than 0"}
	}

	if c.NumShards <= 0 {
		return &ConfigError{Field: "NumShards", Message: "must be greater than 0"}
	}

	if c.NumShards > c.Capacity {
		return &ConfigError{Field: "NumShards", Message: "must not exceed Capacity"}
	}

	if c.TTL <= 0 {
		return &ConfigError{Field: "TTL", Message: "must be greater than 0"}
	}

	if c.EvictionPercentage < 1 || c.EvictionPercentage > 100 {
		return &ConfigError{Field: "EvictionPercentage", Message: "must be between 1 and 100"}
	}

	if c.EvictionInterval < 0 {
		return &ConfigError{Field: "EvictionInterval", Message: "must be non-negative"}
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

// SturdycService wraps a sturdyc client providing read-through caching.
//
// sturdyc deduplicates concurrent fetches for the same key, so a burst of
// misses on an expired entry reaches the source of truth once.
type SturdycService struct {
	client *sturdyc.Client[any]
}

// NewSturdycService validates cfg and builds the sturdyc client.
func NewSturdycService(cfg Config) (*SturdycService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client := sturdyc.New[any](
		cfg.Capacity,
		cfg.NumShards,
		cfg.TTL,
		cfg.EvictionPercentage,
		cfg.ToSturdycOptions()...,
	)

	return &SturdycService{client: client}, nil
}

// GetOrFetch returns the cached value for key, or runs fetchFn, stores its
// result and returns it. Errors from fetchFn are returned and not cached.
func (s *SturdycService) GetOrFetch(ctx context.Context, key string, fetchFn func(context.Context) (any, error)) (any, error) {
	if fetchFn == nil {
		return nil, &ConfigError{Field: "fetchFn", Message: "cannot be nil"}
	}

	// sturdyc rejects an untyped nil before looking at the error, so a
	// nil result travels boxed.
	value, err := s.client.GetOrFetch(ctx, key, func(ctx context.Context) (any, error) {
		value, err := fetchFn(ctx)
		if value == nil {
			return nilValue{}, err
		}
		return value, err
	})
	if err != nil {
		return nil, err
	}
	if _, ok := value.(nilValue); ok {
		return nil, nil
	}
	return value, nil
}

// nilValue stands in for a nil fetch result inside the sturdyc client.
type nilValue struct{}

// Delete removes key so the next GetOrFetch goes to the source of truth.
func (s *SturdycService) Delete(ctx context.Context, key string) error {
	s.client.Delete(key)
	return nil
}

// Size reports the number of entries currently stored.
func (s *SturdycService) Size() int {
	return s.client.Size()
}
