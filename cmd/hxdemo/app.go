package main

import (
	"embed"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/hxforge"
	"github.com/dmitrymomot/hxforge/middlewares"
	"github.com/dmitrymomot/hxforge/pkg/htmx"
)

//go:embed templates/*.html
var templates embed.FS

// newApp wires the board into an hxforge App. Metrics are registered on reg.
func newApp(cfg Config, log *slog.Logger, reg *prometheus.Registry) (*hxforge.App, error) {
	views, err := hxforge.NewViews(templates, "templates/*.html")
	if err != nil {
		return nil, err
	}

	mw := []hxforge.Middleware{
		middlewares.RequestID(),
		middlewares.HTMX(),
		middlewares.Recover(),
	}
	handlers := []hxforge.Handler{newBoard(cfg.Poll.Step)}
	if cfg.Metrics.Enabled {
		mw = append(mw, middlewares.Metrics(middlewares.WithMetricsRegisterer(reg), middlewares.WithMetricsNamespace("hxdemo")))
		handlers = append(handlers, metricsHandler{
			path:    cfg.Metrics.Path,
			handler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
		})
	}

	return hxforge.New(
		hxforge.WithCustomLogger(log),
		hxforge.WithMiddleware(mw...),
		hxforge.WithViews(views),
		hxforge.WithHandlers(handlers...),
		hxforge.WithErrorHandler(handleError),
		hxforge.WithNotFoundHandler(handleNotFound),
	), nil
}

type metricsHandler struct {
	path    string
	handler http.Handler
}

func (h metricsHandler) Routes(r hxforge.Router) {
	r.Mount(h.path, h.handler)
}

// errorField names the input that issued the failing request, if any.
var errorField = hxforge.NewExtractor(hxforge.FromTriggerName())

// handleError renders errors as a toast for htmx requests and as plain text
// otherwise. Nothing is swapped, so the toast fires on the immediate phase.
func handleError(c hxforge.Context, err error) error {
	code := http.StatusInternalServerError
	msg := http.StatusText(code)
	if httpErr := hxforge.AsHTTPError(err); httpErr != nil {
		code, msg = httpErr.Code, httpErr.Message
	} else {
		c.LogError("request failed", "error", err)
	}

	if !c.IsHTMX() {
		return c.String(code, msg)
	}
	toast := map[string]any{"level": "error", "text": msg}
	if field, ok := errorField.Extract(c); ok {
		toast["field"] = field
	}
	c.HTMX().
		Reswap(htmx.SwapNone).
		Trigger("toast", toast)
	return c.NoContent(code)
}

func handleNotFound(c hxforge.Context) error {
	return handleError(c, hxforge.NewHTTPError(http.StatusNotFound, "page not found"))
}
