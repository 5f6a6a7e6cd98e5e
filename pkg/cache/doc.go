// Package cache provides generic key-value caches with expiration.
//
// Two backends implement [Cache]: [Memory], an in-process LRU used for
// the hydration runtime's enhanced-event registry and as the default page
// cache, and [Redis], used to share generated static pages between
// instances.
//
//	pages := cache.NewMemory[Entry](cache.WithMaxEntries(500))
//	entry, err := cache.GetOrSet(ctx, pages, "/blog/hello", func(ctx context.Context) (Entry, time.Duration, error) {
//	    e, err := render(ctx)
//	    return e, time.Minute, err
//	})
//
// [GetOrSet] collapses concurrent misses for the same key into a single
// call of the loader.
package cache
