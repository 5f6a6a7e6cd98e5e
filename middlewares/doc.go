// Package middlewares provides net/http middleware for hydrate apps.
//
//	app := hydrate.New(
//	    hydrate.WithLogger(log),
//	    hydrate.WithMiddleware(
//	        middlewares.RequestID(),
//	        middlewares.Recover(middlewares.WithRecoverLogger(log)),
//	        middlewares.Timeout(10*time.Second),
//	    ),
//	)
//
// Pair [RequestIDExtractor] with the logger so every record carries the
// request ID.
package middlewares
