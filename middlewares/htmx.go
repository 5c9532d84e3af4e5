package middlewares

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/hxforge/internal"
	"github.com/dmitrymomot/hxforge/pkg/htmx"
	"github.com/dmitrymomot/hxforge/pkg/logger"
)

// HTMX returns middleware that classifies every request once and makes the
// result available to handlers and log records.
//
// Responses vary on HX-Request so caches keep full pages and fragments apart.
func HTMX() internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			facts := c.Facts()
			c.Set(factsKey{}, facts)
			c.Response().Header().Add("Vary", htmx.HeaderHXRequest)

			if facts.IsHTMX() {
				c.LogDebug("htmx request", slog.String("kind", facts.Kind()))
			}
			return next(c)
		}
	}
}

// HTMXHandler is HTMX for plain net/http stacks. It stores the request facts
// with htmx.WithFacts.
func HTMXHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		facts := htmx.FromRequest(r)
		w.Header().Add("Vary", htmx.HeaderHXRequest)
		next.ServeHTTP(w, r.WithContext(htmx.WithFacts(r.Context(), facts)))
	})
}

type factsKey struct{}

// GetFacts returns the facts stored by HTMX, or classifies the request
// when the middleware is not installed.
func GetFacts(c internal.Context) htmx.Facts {
	if f, ok := c.Get(factsKey{}).(htmx.Facts); ok {
		return f
	}
	return c.Facts()
}

// HTMXExtractor returns a ContextExtractor adding the request kind
// ("page", "htmx", "boosted" or "history-restore") as "htmx" to log entries.
func HTMXExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if f, ok := ctx.Value(factsKey{}).(htmx.Facts); ok {
			return slog.String("htmx", f.Kind()), true
		}
		if f, ok := htmx.FactsFromContext(ctx); ok {
			return slog.String("htmx", f.Kind()), true
		}
		return slog.Attr{}, false
	}
}
