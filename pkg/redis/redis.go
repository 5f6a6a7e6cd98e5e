package redis

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Open parses a redis:// or rediss:// URL, applies pool settings and pings
// the server until it answers or the retry budget is spent.
//
//	client, err := redis.Open(ctx, os.Getenv("REDIS_URL"), redis.WithPoolSize(20, 5))
func Open(ctx context.Context, url string, opts ...Option) (redis.UniversalClient, error) {
	if url == "" {
		return nil, ErrEmptyConnectionURL
	}
	if !strings.HasPrefix(url, "redis://") && !strings.HasPrefix(url, "rediss://") {
		return nil, errors.Join(ErrFailedToParseURL, ErrUnsupportedScheme)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	ro, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseURL, err)
	}
	ro.PoolSize = cfg.poolSize
	ro.MinIdleConns = cfg.minIdle
	ro.ConnMaxIdleTime = cfg.maxIdleTime
	ro.ConnMaxLifetime = cfg.maxLifetime
	ro.DialTimeout = cfg.dialTimeout
	ro.ReadTimeout = cfg.readTimeout
	ro.WriteTimeout = cfg.writeTimeout

	var lastErr error
	for attempt := range max(cfg.attempts, 1) {
		if attempt > 0 {
			if err := sleep(ctx, time.Duration(attempt)*cfg.backoff); err != nil {
				return nil, errors.Join(ErrConnectionFailed, err)
			}
		}

		client := redis.NewClient(ro)
		if lastErr = client.Ping(ctx).Err(); lastErr == nil {
			return client, nil
		}
		_ = client.Close()
	}

	return nil, errors.Join(ErrConnectionFailed, lastErr)
}

// MustOpen is like Open but panics on failure.
func MustOpen(ctx context.Context, url string, opts ...Option) redis.UniversalClient {
	client, err := Open(ctx, url, opts...)
	if err != nil {
		panic(err)
	}
	return client
}

// Healthcheck returns a probe that pings the server.
func Healthcheck(client redis.UniversalClient) func(context.Context) error {
	return func(ctx context.Context) error {
		if client == nil {
			return ErrHealthcheckFailed
		}
		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}

// Shutdown adapts client.Close to a shutdown hook.
//
//	app.Run(addr, hydrate.ShutdownHook(redis.Shutdown(client)))
func Shutdown(client io.Closer) func(context.Context) error {
	return func(context.Context) error {
		return client.Close()
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
