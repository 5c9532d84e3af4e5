// Package middlewares provides HTTP middleware for hxforge applications.
//
// # Request ID
//
// RequestID assigns an ID to each request for tracing. An upstream ID from
// X-Request-ID or X-Correlation-ID is kept, otherwise a UUID is generated.
//
//	app := hxforge.New(
//	    hxforge.WithLogger("web", middlewares.RequestIDExtractor()),
//	    hxforge.WithMiddleware(middlewares.RequestID()),
//	)
//
// # HTMX
//
// HTMX classifies the request once, adds Vary: HX-Request and exposes the
// result to handlers (GetFacts) and to log records (HTMXExtractor).
// HTMXHandler does the same for plain net/http handlers.
//
// # Recover
//
// Recover catches panics and converts them to a PanicError for the global
// ErrorHandler. Triggers and fragments queued before the panic are dropped
// unless WithRecoverKeepComposition is given.
//
//	app := hxforge.New(
//	    hxforge.WithMiddleware(middlewares.Recover()),
//	    hxforge.WithErrorHandler(func(c hxforge.Context, err error) error {
//	        if pe, ok := middlewares.AsPanicError(err); ok {
//	            c.LogError("panic", "value", pe.Value, "kind", pe.Kind)
//	        }
//	        return c.String(http.StatusInternalServerError, "Internal Server Error")
//	    }),
//	)
//
// # Metrics
//
// Metrics records Prometheus counters and a duration histogram labelled with
// the htmx request kind, plus the number of client events sent per phase.
//
//	reg := prometheus.NewRegistry()
//	app := hxforge.New(
//	    hxforge.WithMiddleware(middlewares.Metrics(middlewares.WithMetricsRegisterer(reg))),
//	)
package middlewares
