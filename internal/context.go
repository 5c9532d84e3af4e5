package internal

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/hxforge/pkg/htmx"
	"github.com/dmitrymomot/hxforge/pkg/view"
)

// Component is the interface for renderable templates.
// This is compatible with templ.Component.
type Component interface {
	Render(ctx context.Context, w io.Writer) error
}

// Context provides request/response access and helper methods.
// It also implements context.Context by delegating to the underlying request context.
type Context interface {
	context.Context

	// Request returns the underlying *http.Request.
	Request() *http.Request

	// Response returns the response writer.
	Response() http.ResponseWriter

	// Context returns the request's context.Context.
	Context() context.Context

	// Param returns the URL parameter value by name.
	Param(name string) string

	// Query returns the query parameter value by name.
	Query(name string) string

	// QueryDefault returns the query parameter value or a default.
	QueryDefault(name, defaultValue string) string

	// Form returns the form value by name.
	Form(name string) string

	// Cookie returns a plain cookie value.
	Cookie(name string) (string, error)

	// Header returns the request header value by name.
	Header(name string) string

	// SetHeader sets a response header.
	SetHeader(name, value string)

	// JSON writes a JSON response with the given status code.
	JSON(code int, v any) error

	// String writes a plain text response with the given status code.
	String(code int, s string) error

	// NoContent writes a response with no body.
	NoContent(code int) error

	// Redirect redirects to the given URL with the given status code.
	// HTMX requests get HX-Redirect instead of a 3xx.
	Redirect(code int, url string) error

	// Error creates and returns an HTTPError without writing a response.
	Error(code int, message string, opts ...HTTPErrorOption) *HTTPError

	// IsHTMX returns true if the request originated from HTMX.
	IsHTMX() bool

	// Facts returns the classification of the request.
	Facts() htmx.Facts

	// HTMX returns the composer of this request. It is shared by every
	// middleware and the handler, and flushed when the response is written.
	HTMX() *htmx.Composer

	// Render writes a component with the given status code.
	// For HTMX requests the options are merged into the composer and
	// OOB components are appended after the main component.
	Render(code int, component Component, opts ...htmx.RenderOption) error

	// RenderPartial renders partial for HTMX requests and fullPage otherwise.
	RenderPartial(code int, fullPage, partial Component, opts ...htmx.RenderOption) error

	// View renders a named template with the app's view engine. Fragments
	// planned on the composer are rendered too and assembled into the body.
	View(code int, name string, data any) error

	// Written returns true if a response has already been written.
	Written() bool

	// Logger returns the logger for advanced usage.
	Logger() *slog.Logger

	LogDebug(msg string, attrs ...any)
	LogInfo(msg string, attrs ...any)
	LogWarn(msg string, attrs ...any)
	LogError(msg string, attrs ...any)

	// Set stores a value in the request context.
	Set(key any, value any)

	// Get retrieves a value from the request context.
	// Returns nil if the key is not found.
	Get(key any) any

	// ResponseWriter returns the wrapped writer for advanced usage.
	ResponseWriter() *ResponseWriter
}

// requestContext implements the Context interface.
type requestContext struct {
	request        *http.Request
	responseWriter *ResponseWriter
	composer       *htmx.Composer
	logger         *slog.Logger
	views          *view.Engine
}

// newContext wraps w and binds the request's composer.
// The writer and the composer are created once per request; nested
// middleware layers find them again and reuse them.
func newContext(w http.ResponseWriter, r *http.Request, app *App) *requestContext {
	rw, wrapped := w.(*ResponseWriter)
	if !wrapped {
		rw = NewResponseWriter(w)
	}

	composer, ok := htmx.ComposerFromContext(r.Context())
	if !ok {
		composer = htmx.NewComposer(htmx.FromRequest(r), rw.Header())
		r = r.WithContext(htmx.WithComposer(r.Context(), composer))
		wrapped = false
	}

	c := &requestContext{
		request:        r,
		responseWriter: rw,
		composer:       composer,
		logger:         app.logger,
		views:          app.views,
	}
	if !wrapped {
		c.attach()
	}
	return c
}

// attach wires the composer into the writer: triggers are flushed before
// the first byte of an HTMX response and forced status and body win.
func (c *requestContext) attach() {
	c.responseWriter.Compose(c.composer)
	c.responseWriter.OnBeforeWrite(func() {
		if !c.composer.Facts().IsHTMX() {
			return
		}
		if err := c.composer.Prepare(); err != nil {
			c.logger.ErrorContext(c.request.Context(), "failed to prepare htmx response", slog.Any("error", err))
		}
	})
}

// finish sends the header when the handler returned without writing
// anything, so queued triggers and a forced status or body still go out.
func (c *requestContext) finish() {
	if c.responseWriter.Written() {
		return
	}
	c.responseWriter.WriteHeader(http.StatusOK)
}

func (c *requestContext) Request() *http.Request {
	return c.request
}

func (c *requestContext) Response() http.ResponseWriter {
	return c.responseWriter
}

func (c *requestContext) Context() context.Context {
	return c.request.Context()
}

func (c *requestContext) Param(name string) string {
	return chi.URLParam(c.request, name)
}

func (c *requestContext) Query(name string) string {
	return c.request.URL.Query().Get(name)
}

func (c *requestContext) QueryDefault(name, defaultValue string) string {
	v := c.request.URL.Query().Get(name)
	if v == "" {
		return defaultValue
	}
	return v
}

func (c *requestContext) Form(name string) string {
	return c.request.FormValue(name)
}

func (c *requestContext) Cookie(name string) (string, error) {
	ck, err := c.request.Cookie(name)
	if err != nil {
		return "", err
	}
	return ck.Value, nil
}

func (c *requestContext) Deadline() (time.Time, bool) {
	return c.request.Context().Deadline()
}

func (c *requestContext) Done() <-chan struct{} {
	return c.request.Context().Done()
}

func (c *requestContext) Err() error {
	return c.request.Context().Err()
}

func (c *requestContext) Value(key any) any {
	return c.request.Context().Value(key)
}

func (c *requestContext) Header(name string) string {
	return c.request.Header.Get(name)
}

func (c *requestContext) SetHeader(name, value string) {
	c.responseWriter.Header().Set(name, value)
}

func (c *requestContext) JSON(code int, v any) error {
	c.responseWriter.Header().Set("Content-Type", "application/json; charset=utf-8")
	c.responseWriter.WriteHeader(code)
	return json.NewEncoder(c.responseWriter).Encode(v)
}

func (c *requestContext) String(code int, s string) error {
	c.responseWriter.Header().Set("Content-Type", "text/plain; charset=utf-8")
	c.responseWriter.WriteHeader(code)
	_, err := io.WriteString(c.responseWriter, s)
	return err
}

func (c *requestContext) NoContent(code int) error {
	c.responseWriter.WriteHeader(code)
	return nil
}

func (c *requestContext) Redirect(code int, url string) error {
	htmx.RedirectWithStatus(c.responseWriter, c.request, url, code)
	return nil
}

func (c *requestContext) Error(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	err := NewHTTPError(code, message)
	for _, opt := range opts {
		opt(err)
	}
	return err
}

func (c *requestContext) IsHTMX() bool {
	return c.composer.Facts().IsHTMX()
}

func (c *requestContext) Facts() htmx.Facts {
	return c.composer.Facts()
}

func (c *requestContext) HTMX() *htmx.Composer {
	return c.composer
}

func (c *requestContext) Render(code int, component Component, opts ...htmx.RenderOption) error {
	cfg := htmx.NewConfig(opts...)
	htmxReq := c.IsHTMX()
	if htmxReq {
		cfg.ApplyTo(c.composer)
	}

	c.responseWriter.Header().Set("Content-Type", "text/html; charset=utf-8")
	c.responseWriter.WriteHeader(code)

	if err := component.Render(c.request.Context(), c.responseWriter); err != nil {
		return err
	}
	if htmxReq {
		return cfg.RenderOOB(c.request.Context(), c.responseWriter)
	}
	return nil
}

func (c *requestContext) RenderPartial(code int, fullPage, partial Component, opts ...htmx.RenderOption) error {
	if c.IsHTMX() {
		return c.Render(code, partial, opts...)
	}
	return c.Render(code, fullPage)
}

func (c *requestContext) View(code int, name string, data any) error {
	if c.views == nil {
		return ErrNoViews
	}

	page, err := c.views.Render(name, data, c.composer.Fragments()...)
	if err != nil {
		return err
	}
	c.composer.Assemble(page)

	c.responseWriter.Header().Set("Content-Type", "text/html; charset=utf-8")
	c.responseWriter.WriteHeader(code)
	_, err = io.WriteString(c.responseWriter, page.Body())
	return err
}

func (c *requestContext) Written() bool {
	return c.responseWriter.Written()
}

func (c *requestContext) Logger() *slog.Logger {
	return c.logger
}

func (c *requestContext) LogDebug(msg string, attrs ...any) {
	c.logger.DebugContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogInfo(msg string, attrs ...any) {
	c.logger.InfoContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogWarn(msg string, attrs ...any) {
	c.logger.WarnContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogError(msg string, attrs ...any) {
	c.logger.ErrorContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) Set(key, value any) {
	ctx := context.WithValue(c.request.Context(), key, value)
	c.request = c.request.WithContext(ctx)
}

func (c *requestContext) Get(key any) any {
	return c.request.Context().Value(key)
}

func (c *requestContext) ResponseWriter() *ResponseWriter {
	return c.responseWriter
}
