// Package redis opens go-redis clients with pool defaults and startup
// retries.
//
// The hydrate host uses it to back the shared static page cache:
//
//	client := redis.MustOpen(ctx, os.Getenv("REDIS_URL"))
//	app := hydrate.New(hydrate.WithStaticCache(hydrate.NewRedisStaticCache(client)))
//	app.Run(":8080", hydrate.ShutdownHook(redis.Shutdown(client)))
//
// [Healthcheck] gives a ping probe for readiness endpoints.
package redis
