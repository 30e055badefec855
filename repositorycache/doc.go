// Package repositorycache provides the cached decorator for the vaccine
// catalog store.
//
// # Overview
//
// CachedVaccineStore wraps a store.VaccineStore and serves the full catalog
// through a cache.CacheService. Reads of a single vaccine and every write are
// delegated to the base store. A successful write drops the cached catalog,
// so the next read goes to the source of truth; a failed write leaves the
// cache untouched.
//
// # Basic Usage
//
//	svc, _ := cache.NewCacheService(cache.DefaultConfig().WithTTL(10 * time.Minute))
//	keys := cache.NewKeySerializer("vaccines")
//
//	catalog := repositorycache.New(bunstore.New(db), svc, keys,
//		repositorycache.WithRecorder(metrics),
//		repositorycache.WithLogger(logger),
//	)
//
//	vaccines, err := catalog.ListVaccines(ctx) // cached
//	v, err := catalog.GetVaccine(ctx, 1)       // always the base store
//
// # Staleness
//
// Entries live for the configured TTL measured from the moment they are
// stored. Writes made through the decorator invalidate immediately; writes
// that bypass it are visible once the entry expires.
//
// # Key Tracking
//
// Keys produced by the KeySerializer are recorded when read so invalidation
// can remove them by prefix without enumerating the backing cache.
package repositorycache
