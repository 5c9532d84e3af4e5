package hxforge

import (
	"context"
	"io/fs"
	"log/slog"
	"time"

	"github.com/dmitrymomot/hxforge/internal"
	"github.com/dmitrymomot/hxforge/pkg/htmx"
	"github.com/dmitrymomot/hxforge/pkg/logger"
	"github.com/dmitrymomot/hxforge/pkg/view"
)

// Type aliases - public API
type (
	// App orchestrates the application lifecycle.
	// It manages HTTP routing, middleware, and graceful shutdown.
	App = internal.App

	// Router is the interface handlers use to declare routes.
	Router = internal.Router

	// Context provides request/response access, the request's htmx
	// classification and its response composer.
	Context = internal.Context

	// Handler declares routes on a router.
	Handler = internal.Handler

	// HandlerFunc is the signature for route handlers.
	HandlerFunc = internal.HandlerFunc

	// Middleware wraps a HandlerFunc to add cross-cutting concerns.
	Middleware = internal.Middleware

	// ErrorHandler handles errors returned from handlers.
	ErrorHandler = internal.ErrorHandler

	// Option configures the application.
	Option = internal.Option

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// Component is the interface for renderable templates.
	Component = internal.Component

	// HTTPError is an error carrying an HTTP status code.
	HTTPError = internal.HTTPError

	// ResponseWriter wraps http.ResponseWriter with hooks and composer support.
	ResponseWriter = internal.ResponseWriter

	// Composer collects triggers, fragments and HX-* headers for a response.
	Composer = htmx.Composer

	// Facts is the htmx classification of a request.
	Facts = htmx.Facts

	// RenderOption configures the htmx side of Context.Render.
	RenderOption = htmx.RenderOption

	// ContextExtractor extracts a slog attribute from context.
	// Used with WithLogger to add request-scoped values to logs.
	ContextExtractor = logger.ContextExtractor

	// Extractor reads a string from the first request source that has one.
	Extractor = internal.Extractor

	// ExtractorSource reads a single value from a request.
	ExtractorSource = internal.ExtractorSource
)

// Constructors

// New creates a new application with the given options.
// The App is immutable after creation.
//
// Example:
//
//	app := hxforge.New(
//	    hxforge.WithMiddleware(middlewares.RequestID(), middlewares.HTMX()),
//	    hxforge.WithViews(engine),
//	    hxforge.WithHandlers(handlers.NewContacts(repo)),
//	)
//
//	err := app.Run(":8080", hxforge.Logger(log))
func New(opts ...Option) *App {
	return internal.New(opts...)
}

// NewViews parses templates matching patterns from fsys.
// See view.New.
func NewViews(fsys fs.FS, patterns ...string) (*view.Engine, error) {
	return view.New(fsys, patterns...)
}

// App options

// WithMiddleware adds global middleware to the application.
// Middleware is applied in the order provided.
func WithMiddleware(mw ...Middleware) Option {
	return internal.WithMiddleware(mw...)
}

// WithHandlers registers handlers that declare routes.
// Each handler's Routes method is called during setup.
func WithHandlers(h ...Handler) Option {
	return internal.WithHandlers(h...)
}

// WithViews sets the template engine used by Context.View.
// Fragment planning on the composer selects which blocks end up in the body.
func WithViews(e *view.Engine) Option {
	return internal.WithViews(e)
}

// WithStaticFiles mounts a static file handler at the given pattern.
// Directory listings are disabled.
//
// Example:
//
//	//go:embed public
//	var assets embed.FS
//
//	hxforge.New(
//	    hxforge.WithStaticFiles("/static/", assets, "public"),
//	)
func WithStaticFiles(pattern string, fsys fs.FS, subDir string) Option {
	return internal.WithStaticFiles(pattern, fsys, subDir)
}

// WithErrorHandler sets a custom error handler for handler errors.
// Called when a handler returns a non-nil error.
func WithErrorHandler(h ErrorHandler) Option {
	return internal.WithErrorHandler(h)
}

// WithNotFoundHandler sets a custom 404 handler.
func WithNotFoundHandler(h HandlerFunc) Option {
	return internal.WithNotFoundHandler(h)
}

// WithMethodNotAllowedHandler sets a custom 405 handler.
func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return internal.WithMethodNotAllowedHandler(h)
}

// WithLogger creates a logger with a component name and optional extractors.
// The component name is added to every log entry for easy filtering.
// Extractors pull values from context (e.g., request_id, htmx kind).
//
// Example:
//
//	hxforge.New(
//	    hxforge.WithLogger("web", middlewares.RequestIDExtractor(), middlewares.HTMXExtractor()),
//	)
func WithLogger(component string, extractors ...ContextExtractor) Option {
	return internal.WithLogger(component, extractors...)
}

// WithCustomLogger sets a fully custom logger.
func WithCustomLogger(l *slog.Logger) Option {
	return internal.WithCustomLogger(l)
}

// Run options

// Address sets the HTTP server address.
// Defaults to ":8080".
func Address(addr string) RunOption {
	return internal.Address(addr)
}

// Logger sets the server logger.
// If nil, logging is disabled.
func Logger(l *slog.Logger) RunOption {
	return internal.Logger(l)
}

// ShutdownTimeout sets the timeout for graceful shutdown.
// Defaults to 30 seconds.
func ShutdownTimeout(d time.Duration) RunOption {
	return internal.ShutdownTimeout(d)
}

// StartupHook registers a function to run before the server accepts
// connections. A failing hook aborts startup.
func StartupHook(fn func(context.Context) error) RunOption {
	return internal.StartupHook(fn)
}

// ShutdownHook registers a cleanup function to run during shutdown.
// Hooks are called in the order they were registered.
//
// Example:
//
//	hxforge.ShutdownHook(func(ctx context.Context) error { return sentry.Flush(2 * time.Second) })
func ShutdownHook(fn func(context.Context) error) RunOption {
	return internal.ShutdownHook(fn)
}

// WithContext sets a custom base context for signal handling.
func WithContext(ctx context.Context) RunOption {
	return internal.WithContext(ctx)
}

// Errors

// NewHTTPError creates an HTTPError with the given status code.
func NewHTTPError(code int, message string) *HTTPError {
	return internal.NewHTTPError(code, message)
}

// IsHTTPError reports whether err wraps an HTTPError.
func IsHTTPError(err error) bool {
	return internal.IsHTTPError(err)
}

// AsHTTPError returns the HTTPError wrapped by err, or nil.
func AsHTTPError(err error) *HTTPError {
	return internal.AsHTTPError(err)
}

// Request helpers

// Param returns a typed URL parameter.
func Param[T ~string | ~int | ~int64 | ~float64 | ~bool](c Context, name string) T {
	return internal.Param[T](c, name)
}

// Query returns a typed query parameter.
func Query[T ~string | ~int | ~int64 | ~float64 | ~bool](c Context, name string) T {
	return internal.Query[T](c, name)
}

// QueryDefault returns a typed query parameter or defaultValue when it is
// missing or invalid.
func QueryDefault[T ~string | ~int | ~int64 | ~float64 | ~bool](c Context, name string, defaultValue T) T {
	return internal.QueryDefault(c, name, defaultValue)
}

// Form returns a typed form value.
func Form[T ~string | ~int | ~int64 | ~float64 | ~bool](c Context, name string) T {
	return internal.Form[T](c, name)
}

// ContextValue returns a typed value stored with Context.Set.
func ContextValue[T any](c Context, key any) T {
	return internal.ContextValue[T](c, key)
}

// Extractors

// NewExtractor returns an extractor that tries sources in order.
//
// Example:
//
//	title := hxforge.NewExtractor(hxforge.FromPrompt(), hxforge.FromForm("title"))
//	v, ok := title.Extract(c)
func NewExtractor(sources ...ExtractorSource) Extractor {
	return internal.NewExtractor(sources...)
}

// FromHeader reads a request header.
func FromHeader(name string) ExtractorSource { return internal.FromHeader(name) }

// FromQuery reads a query parameter.
func FromQuery(name string) ExtractorSource { return internal.FromQuery(name) }

// FromParam reads a URL parameter.
func FromParam(name string) ExtractorSource { return internal.FromParam(name) }

// FromForm reads a form field.
func FromForm(name string) ExtractorSource { return internal.FromForm(name) }

// FromCookie reads a plain cookie.
func FromCookie(name string) ExtractorSource { return internal.FromCookie(name) }

// FromPrompt reads the user's answer to hx-prompt.
func FromPrompt() ExtractorSource { return internal.FromPrompt() }

// FromTriggerName reads the name of the element that triggered the request.
func FromTriggerName() ExtractorSource { return internal.FromTriggerName() }
