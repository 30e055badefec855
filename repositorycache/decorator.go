package repositorycache

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/goliatone/go-vaccination-registry/cache"
	"github.com/goliatone/go-vaccination-registry/internal/models"
	"github.com/goliatone/go-vaccination-registry/internal/store"
)

// Interface assertion to ensure CachedVaccineStore implements store.VaccineStore
var _ store.VaccineStore = (*CachedVaccineStore)(nil)

const methodListVaccines = "ListVaccines"

// Recorder observes catalog cache traffic.
type Recorder interface {
	CatalogHit()
	CatalogMiss()
	CatalogInvalidated()
}

type nopRecorder struct{}

func (nopRecorder) CatalogHit()         {}
func (nopRecorder) CatalogMiss()        {}
func (nopRecorder) CatalogInvalidated() {}

// Option configures a CachedVaccineStore.
type Option func(*CachedVaccineStore)

// WithRecorder reports hits, misses and invalidations to r.
func WithRecorder(r Recorder) Option {
	return func(c *CachedVaccineStore) {
		if r != nil {
			c.recorder = r
		}
	}
}

// WithLogger sets the logger used for invalidation failures.
func WithLogger(logger *slog.Logger) Option {
	return func(c *CachedVaccineStore) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// CachedVaccineStore decorates a VaccineStore so the full catalog is read
// through the cache. Single vaccine reads carry doses and go to the base
// store. Every successful write drops the cached catalog.
type CachedVaccineStore struct {
	base          store.VaccineStore
	cache         cache.CacheService
	keySerializer cache.KeySerializer
	keyRegistry   *sync.Map // Track active cache keys for invalidation
	generation    atomic.Uint64
	recorder      Recorder
	logger        *slog.Logger
}

// New creates a CachedVaccineStore that wraps base with caching.
func New(base store.VaccineStore, cacheService cache.CacheService, keySerializer cache.KeySerializer, opts ...Option) *CachedVaccineStore {
	c := &CachedVaccineStore{
		base:          base,
		cache:         cacheService,
		keySerializer: keySerializer,
		keyRegistry:   &sync.Map{},
		recorder:      nopRecorder{},
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListVaccines returns the catalog, from the cache when a live entry exists.
// The returned slice is shared with other readers and must not be modified.
//
// Keys carry the invalidation generation. A fetch still in flight when a
// write invalidates stores its result under the old generation, where no
// later reader looks.
func (c *CachedVaccineStore) ListVaccines(ctx context.Context) ([]*models.Vaccine, error) {
	key := c.keySerializer.SerializeKey(methodListVaccines, c.generation.Load())
	c.trackKey(key)

	fetched := false
	vaccines, err := cache.GetOrFetch(ctx, c.cache, key, func(ctx context.Context) ([]*models.Vaccine, error) {
		fetched = true
		return c.base.ListVaccines(ctx)
	})
	if err != nil {
		return nil, err
	}

	if fetched {
		c.recorder.CatalogMiss()
	} else {
		c.recorder.CatalogHit()
	}
	return vaccines, nil
}

// GetVaccine bypasses the cache.
func (c *CachedVaccineStore) GetVaccine(ctx context.Context, id int64) (*models.Vaccine, error) {
	return c.base.GetVaccine(ctx, id)
}

// CreateVaccine creates a vaccine and invalidates the catalog on success.
func (c *CachedVaccineStore) CreateVaccine(ctx context.Context, in models.VaccineInput) (*models.Vaccine, error) {
	result, err := c.base.CreateVaccine(ctx, in)
	if err == nil {
		c.Invalidate(ctx)
	}
	return result, err
}

// UpdateVaccine updates a vaccine and invalidates the catalog on success.
func (c *CachedVaccineStore) UpdateVaccine(ctx context.Context, id int64, patch models.VaccinePatch) (*models.Vaccine, error) {
	result, err := c.base.UpdateVaccine(ctx, id, patch)
	if err == nil {
		c.Invalidate(ctx)
	}
	return result, err
}

// DeleteVaccine deletes a vaccine and invalidates the catalog on success.
func (c *CachedVaccineStore) DeleteVaccine(ctx context.Context, id int64) (*models.Vaccine, error) {
	result, err := c.base.DeleteVaccine(ctx, id)
	if err == nil {
		c.Invalidate(ctx)
	}
	return result, err
}

// Invalidate drops every cached catalog read so the next one goes to the
// base store.
func (c *CachedVaccineStore) Invalidate(ctx context.Context) {
	c.generation.Add(1)
	c.invalidateByPrefix(ctx, c.keySerializer.SerializeKey(methodListVaccines))
	c.recorder.CatalogInvalidated()
}

// trackKey registers a cache key in the key registry for later invalidation
func (c *CachedVaccineStore) trackKey(key string) {
	c.keyRegistry.Store(key, struct{}{})
}

// invalidateByPrefix removes all cached keys that start with the given prefix
func (c *CachedVaccineStore) invalidateByPrefix(ctx context.Context, prefix string) {
	var keysToDelete []string
	c.keyRegistry.Range(func(k, v any) bool {
		if key, ok := k.(string); ok && strings.HasPrefix(key, prefix) {
			keysToDelete = append(keysToDelete, key)
		}
		return true
	})

	for _, key := range keysToDelete {
		if err := c.cache.Delete(ctx, key); err != nil {
			c.logger.WarnContext(ctx, "cache invalidation failed", "key", key, "error", err)
			continue
		}
		c.keyRegistry.Delete(key)
	}
}
