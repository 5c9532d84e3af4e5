package middlewares_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/hxforge/internal"
	"github.com/dmitrymomot/hxforge/middlewares"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	t.Run("generates a uuid when not present", func(t *testing.T) {
		t.Parallel()

		res := serve(t, httptest.NewRequest(http.MethodGet, "/", nil), middlewares.RequestID(), nil)

		require.NoError(t, res.err)
		id := res.rec.Header().Get("X-Request-ID")
		require.NotEmpty(t, id)
		_, err := uuid.Parse(id)
		require.NoError(t, err)
	})

	t.Run("uses existing request ID from header", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "existing-request-id-123")

		res := serve(t, req, middlewares.RequestID(), nil)

		require.NoError(t, res.err)
		require.Equal(t, "existing-request-id-123", res.rec.Header().Get("X-Request-ID"))
	})

	t.Run("falls back to the correlation header", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Correlation-ID", "corr-1")

		res := serve(t, req, middlewares.RequestID(), nil)

		require.Equal(t, "corr-1", res.rec.Header().Get("X-Request-ID"))
	})

	t.Run("GetRequestID returns stored ID", func(t *testing.T) {
		t.Parallel()

		var captured string
		res := serve(t, httptest.NewRequest(http.MethodGet, "/", nil), middlewares.RequestID(), func(c internal.Context) error {
			captured = middlewares.GetRequestID(c)
			return nil
		})

		require.NotEmpty(t, captured)
		require.Equal(t, captured, res.rec.Header().Get("X-Request-ID"))
	})

	t.Run("header is sent with htmx fragments too", func(t *testing.T) {
		t.Parallel()

		res := serve(t, htmxRequest(http.MethodGet, "/"), middlewares.RequestID(), func(c internal.Context) error {
			c.HTMX().Trigger("loaded", nil)
			return c.String(http.StatusOK, "<li>row</li>")
		})

		require.NotEmpty(t, res.rec.Header().Get("X-Request-ID"))
		require.Equal(t, "loaded", res.rec.Header().Get("HX-Trigger"))
	})
}

func TestRequestID_CustomOptions(t *testing.T) {
	t.Parallel()

	t.Run("WithRequestIDHeaders respects priority order", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Custom-ID", "custom-123")
		req.Header.Set("X-Trace-ID", "trace-456")

		res := serve(t, req, middlewares.RequestID(
			middlewares.WithRequestIDHeaders("X-Custom-ID", "X-Trace-ID"),
		), nil)

		require.Equal(t, "custom-123", res.rec.Header().Get("X-Request-ID"))
	})

	t.Run("WithRequestIDHeaders falls back to later headers", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Trace-ID", "trace-456")

		res := serve(t, req, middlewares.RequestID(
			middlewares.WithRequestIDHeaders("X-Custom-ID", "X-Trace-ID"),
		), nil)

		require.Equal(t, "trace-456", res.rec.Header().Get("X-Request-ID"))
	})

	t.Run("WithRequestIDSources reads a query parameter", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/?rid=from-query", nil)
		res := serve(t, req, middlewares.RequestID(
			middlewares.WithRequestIDSources(internal.FromQuery("rid")),
		), nil)

		require.Equal(t, "from-query", res.rec.Header().Get("X-Request-ID"))
		require.Equal(t, "from-query", middlewares.GetRequestID(res.ctx))
	})

	t.Run("WithRequestIDSources are checked after headers", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/?rid=from-query", nil)
		req.Header.Set("X-Request-ID", "from-header")
		res := serve(t, req, middlewares.RequestID(
			middlewares.WithRequestIDSources(internal.FromQuery("rid")),
		), nil)

		require.Equal(t, "from-header", res.rec.Header().Get("X-Request-ID"))
	})

	t.Run("WithRequestIDSources falls through to a cookie", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "rid", Value: "from-cookie"})
		res := serve(t, req, middlewares.RequestID(
			middlewares.WithRequestIDSources(internal.FromQuery("rid"), internal.FromCookie("rid")),
		), nil)

		require.Equal(t, "from-cookie", res.rec.Header().Get("X-Request-ID"))
	})

	t.Run("WithRequestIDGenerator uses custom generator", func(t *testing.T) {
		t.Parallel()

		res := serve(t, httptest.NewRequest(http.MethodGet, "/", nil), middlewares.RequestID(
			middlewares.WithRequestIDGenerator(func() string { return "fixed" }),
		), nil)

		require.Equal(t, "fixed", res.rec.Header().Get("X-Request-ID"))
	})

	t.Run("nil generator keeps the default", func(t *testing.T) {
		t.Parallel()

		res := serve(t, httptest.NewRequest(http.MethodGet, "/", nil), middlewares.RequestID(
			middlewares.WithRequestIDGenerator(nil),
		), nil)

		require.NotEmpty(t, res.rec.Header().Get("X-Request-ID"))
	})

	t.Run("WithRequestIDResponseHeader sets custom response header", func(t *testing.T) {
		t.Parallel()

		res := serve(t, httptest.NewRequest(http.MethodGet, "/", nil), middlewares.RequestID(
			middlewares.WithRequestIDResponseHeader("X-Trace"),
		), nil)

		require.NotEmpty(t, res.rec.Header().Get("X-Trace"))
		require.Empty(t, res.rec.Header().Get("X-Request-ID"))
	})

	t.Run("empty response header stores the ID without echoing it", func(t *testing.T) {
		t.Parallel()

		res := serve(t, httptest.NewRequest(http.MethodGet, "/", nil), middlewares.RequestID(
			middlewares.WithRequestIDResponseHeader(""),
		), nil)

		require.Empty(t, res.rec.Header().Get("X-Request-ID"))
		require.NotEmpty(t, middlewares.GetRequestID(res.ctx))
	})
}

func TestGetRequestID(t *testing.T) {
	t.Parallel()

	t.Run("returns empty string when no request ID set", func(t *testing.T) {
		t.Parallel()

		var id string
		serve(t, httptest.NewRequest(http.MethodGet, "/", nil), passthrough, func(c internal.Context) error {
			id = middlewares.GetRequestID(c)
			return nil
		})

		require.Empty(t, id)
	})
}

func TestRequestIDExtractor(t *testing.T) {
	t.Parallel()

	t.Run("returns attribute when request ID present", func(t *testing.T) {
		t.Parallel()

		res := serve(t, httptest.NewRequest(http.MethodGet, "/", nil), middlewares.RequestID(), nil)

		attr, ok := middlewares.RequestIDExtractor()(res.ctx.Context())
		require.True(t, ok)
		require.Equal(t, "request_id", attr.Key)
		require.Equal(t, res.rec.Header().Get("X-Request-ID"), attr.Value.String())
	})

	t.Run("returns false when no request ID in context", func(t *testing.T) {
		t.Parallel()

		_, ok := middlewares.RequestIDExtractor()(context.Background())
		require.False(t, ok)
	})
}

func passthrough(next internal.HandlerFunc) internal.HandlerFunc { return next }
