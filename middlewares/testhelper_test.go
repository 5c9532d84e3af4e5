package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrymomot/hxforge/internal"
)

// result is what a single request through serve produced.
type result struct {
	rec *httptest.ResponseRecorder
	ctx internal.Context // context seen by the innermost handler
	err error            // error returned by the middleware chain
}

// serve runs req through a real App where mw wraps fn on every path.
// The chain's error is captured before the app's error handler sees it.
func serve(t *testing.T, req *http.Request, mw internal.Middleware, fn internal.HandlerFunc) result {
	t.Helper()

	var res result
	inner := func(c internal.Context) error {
		res.ctx = c
		if fn == nil {
			return nil
		}
		return fn(c)
	}

	h := routeAll(func(c internal.Context) error {
		res.err = mw(inner)(c)
		if res.ctx == nil {
			res.ctx = c
		}
		return res.err
	})

	app := internal.New(
		internal.WithHandlers(h),
		internal.WithErrorHandler(func(c internal.Context, err error) error {
			return c.String(http.StatusInternalServerError, err.Error())
		}),
	)

	res.rec = httptest.NewRecorder()
	app.ServeHTTP(res.rec, req)
	return res
}

type routeAll internal.HandlerFunc

func (h routeAll) Routes(r internal.Router) {
	r.GET("/*", internal.HandlerFunc(h))
	r.POST("/*", internal.HandlerFunc(h))
}

func htmxRequest(method, target string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set("HX-Request", "true")
	return req
}
