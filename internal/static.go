package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/hydrate/pkg/cache"
)

const defaultStaticEntries = 10000

// StaticEntry is a generated static page outcome as stored in the cache.
// It is JSON encoded by shared caches.
type StaticEntry struct {
	Props      Props         `json:"props,omitempty"`
	Redirect   *Redirect     `json:"redirect,omitempty"`
	NotFound   bool          `json:"notFound,omitempty"`
	Revalidate time.Duration `json:"revalidate,omitempty"`
}

func newStaticEntry(res Result) StaticEntry {
	e := StaticEntry{Revalidate: res.Revalidate()}
	switch {
	case res.IsNotFound():
		e.NotFound = true
	case res.IsRedirect():
		rd, _ := res.Redirect()
		e.Redirect = &rd
	default:
		e.Props = res.Props()
	}
	return e
}

func (e StaticEntry) result() Result {
	switch {
	case e.NotFound:
		return NotFoundResult().WithRevalidate(e.Revalidate)
	case e.Redirect != nil:
		return RedirectResult(*e.Redirect).WithRevalidate(e.Revalidate)
	default:
		return PropsResult(e.Props).WithRevalidate(e.Revalidate)
	}
}

// NewRedisStaticCache keeps generated static pages in Redis so every
// instance serves the same generation.
func NewRedisStaticCache(client redis.UniversalClient, opts ...cache.RedisOption) cache.Cache[StaticEntry] {
	opts = append([]cache.RedisOption{cache.WithPrefix("hydrate:static")}, opts...)
	return cache.NewRedis[StaticEntry](client, nil, opts...)
}

func staticKey(pattern string, params url.Values, locale string) string {
	return pattern + "|" + locale + "|" + params.Encode()
}

// staticResult serves a static page from cache, generating it on a miss.
// Concurrent misses for the same page generate it once. A page without a
// revalidate interval is kept until evicted.
func (a *App) staticResult(ctx context.Context, rt *route, params url.Values, locales Locales) (Result, error) {
	key := staticKey(rt.page.Pattern, params, locales.Locale)
	entry, err := cache.GetOrSet(ctx, a.staticCache, key, func(ctx context.Context) (StaticEntry, time.Duration, error) {
		res, err := rt.page.Static(ctx, &StaticContext{Locales: locales, Params: params})
		if err != nil {
			return StaticEntry{}, 0, err
		}
		ttl := cache.NoExpiration
		if res.Revalidate() > 0 {
			ttl = res.Revalidate()
		}
		a.logger.DebugContext(ctx, "static page generated",
			slog.String("key", key),
			slog.Duration("revalidate", res.Revalidate()),
		)
		return newStaticEntry(res), ttl, nil
	})
	if err != nil {
		return Result{}, err
	}
	return entry.result(), nil
}

// Prerender generates every static page listed by its Paths func, once per
// supported locale. It runs before the server accepts requests.
func (a *App) Prerender(ctx context.Context) error {
	var errs []error
	generated := 0

	for _, rt := range a.routes {
		if rt.page.Static == nil || rt.page.Paths == nil {
			continue
		}
		paths, err := rt.page.Paths(ctx)
		if err != nil {
			errs = append(errs, fmt.Errorf("paths %s: %w", rt.page.Pattern, err))
			continue
		}
		for _, params := range paths {
			for _, locales := range a.locales.All() {
				if _, err := a.staticResult(ctx, rt, params, locales); err != nil {
					errs = append(errs, fmt.Errorf("prerender %s: %w", rt.buildPath(params), err))
					continue
				}
				generated++
			}
		}
	}

	a.logger.InfoContext(ctx, "static pages generated",
		slog.Int("count", generated),
		slog.Int("failed", len(errs)),
	)
	return errors.Join(errs...)
}
