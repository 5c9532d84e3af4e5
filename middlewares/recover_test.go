package middlewares_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/hxforge/internal"
	"github.com/dmitrymomot/hxforge/middlewares"
)

func TestRecover(t *testing.T) {
	t.Parallel()

	t.Run("recovers from panic and returns PanicError", func(t *testing.T) {
		t.Parallel()

		res := serve(t, httptest.NewRequest(http.MethodGet, "/", nil), middlewares.Recover(), func(c internal.Context) error {
			panic("test panic")
		})

		require.Error(t, res.err)
		require.True(t, middlewares.IsPanicError(res.err))

		pe, ok := middlewares.AsPanicError(res.err)
		require.True(t, ok)
		require.Equal(t, "test panic", pe.Value)
		require.Equal(t, "page", pe.Kind)
		require.NotEmpty(t, pe.Stack)
		require.Equal(t, http.StatusInternalServerError, res.rec.Code)
	})

	t.Run("passes through when no panic", func(t *testing.T) {
		t.Parallel()

		res := serve(t, httptest.NewRequest(http.MethodGet, "/", nil), middlewares.Recover(), func(c internal.Context) error {
			return c.String(http.StatusOK, "ok")
		})

		require.NoError(t, res.err)
		require.Equal(t, "ok", res.rec.Body.String())
	})

	t.Run("respects DisablePrintStack option", func(t *testing.T) {
		t.Parallel()

		res := serve(t, httptest.NewRequest(http.MethodGet, "/", nil), middlewares.Recover(middlewares.WithRecoverDisablePrintStack()), func(c internal.Context) error {
			panic("test panic")
		})

		pe, ok := middlewares.AsPanicError(res.err)
		require.True(t, ok)
		require.Nil(t, pe.Stack)
	})

	t.Run("stack is capped by WithRecoverStackSize", func(t *testing.T) {
		t.Parallel()

		res := serve(t, httptest.NewRequest(http.MethodGet, "/", nil), middlewares.Recover(middlewares.WithRecoverStackSize(64)), func(c internal.Context) error {
			panic("test")
		})

		pe, ok := middlewares.AsPanicError(res.err)
		require.True(t, ok)
		require.NotEmpty(t, pe.Stack)
		require.LessOrEqual(t, len(pe.Stack), 64)
	})
}

func TestRecover_PanicTypes(t *testing.T) {
	t.Parallel()

	type customError struct {
		Code    int
		Message string
	}
	panicErr := errors.New("error panic")

	tests := []struct {
		name  string
		value any
	}{
		{"string", "string panic"},
		{"error", panicErr},
		{"integer", 42},
		{"struct", customError{Code: 500, Message: "custom"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := serve(t, httptest.NewRequest(http.MethodGet, "/", nil), middlewares.Recover(), func(c internal.Context) error {
				panic(tt.value)
			})

			pe, ok := middlewares.AsPanicError(res.err)
			require.True(t, ok)
			require.Equal(t, tt.value, pe.Value)
		})
	}
}

func TestRecover_HTMXComposition(t *testing.T) {
	t.Parallel()

	panicking := func(c internal.Context) error {
		c.HTMX().
			Trigger("saved", nil).
			TriggerAfterSwap("flash", map[string]string{"level": "ok"}).
			Retarget("#form").
			StopPolling("done", nil)
		panic("boom")
	}

	t.Run("drops queued htmx state by default", func(t *testing.T) {
		t.Parallel()

		res := serve(t, htmxRequest(http.MethodPost, "/contacts"), middlewares.Recover(), panicking)

		pe, ok := middlewares.AsPanicError(res.err)
		require.True(t, ok)
		require.Equal(t, "htmx", pe.Kind)
		require.Equal(t, "panic in htmx request: boom", pe.Error())

		require.Equal(t, http.StatusInternalServerError, res.rec.Code)
		require.Empty(t, res.rec.Header().Get("HX-Trigger"))
		require.Empty(t, res.rec.Header().Get("HX-Trigger-After-Swap"))
		require.Empty(t, res.rec.Header().Get("HX-Retarget"))
		require.Contains(t, res.rec.Body.String(), "boom")
	})

	t.Run("keeps queued htmx state when asked", func(t *testing.T) {
		t.Parallel()

		res := serve(t, htmxRequest(http.MethodPost, "/contacts"), middlewares.Recover(middlewares.WithRecoverKeepComposition()), panicking)

		require.True(t, middlewares.IsPanicError(res.err))
		require.Equal(t, "saved", res.rec.Header().Get("HX-Trigger"))
		require.Equal(t, "#form", res.rec.Header().Get("HX-Retarget"))
		require.Equal(t, 286, res.rec.Code)
		require.Equal(t, "done", res.rec.Body.String())
	})
}

func TestPanicErrorHelpers(t *testing.T) {
	t.Parallel()

	t.Run("IsPanicError returns false for non-panic error", func(t *testing.T) {
		t.Parallel()
		require.False(t, middlewares.IsPanicError(http.ErrNoCookie))
	})

	t.Run("AsPanicError returns false for non-panic error", func(t *testing.T) {
		t.Parallel()
		_, ok := middlewares.AsPanicError(http.ErrNoCookie)
		require.False(t, ok)
	})
}
