// Package cache provides the read-through caching contract used by the
// repository decorators in this module.
//
// # Overview
//
//   - CacheService: get-or-fetch plus explicit delete, backed by sturdyc
//   - GetOrFetch: a generic wrapper that restores the static type of a cached value
//   - KeySerializer: builds namespaced keys from a method name and arguments
//
// # Basic Usage
//
//	svc, err := cache.NewCacheService(cache.DefaultConfig().WithTTL(10 * time.Minute))
//	keys := cache.NewKeySerializer("vaccines")
//
//	list, err := cache.GetOrFetch(ctx, svc, keys.SerializeKey("list"), func(ctx context.Context) ([]models.Vaccine, error) {
//		return store.ListVaccines(ctx)
//	})
//
// # Expiry and invalidation
//
// An entry lives exactly TTL from the moment it was stored. There is no early
// refresh and no negative caching: a failed fetch is returned to the caller
// and the next read tries again. Writers call Delete after a successful
// mutation so the next read repopulates from the source of truth.
//
// Concurrent misses on the same key share one fetch; this comes from sturdyc
// and is not something callers need to coordinate.
package cache
