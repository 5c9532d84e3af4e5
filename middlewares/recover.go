package middlewares

import (
	"runtime"

	"github.com/dmitrymomot/hxforge/internal"
)

// DefaultStackSize is the default maximum stack trace size in bytes.
const DefaultStackSize = 4096

// RecoverConfig configures the recover middleware.
type RecoverConfig struct {
	StackSize         int  // Max stack trace size (default: 4096)
	DisablePrintStack bool // Disable stack trace in logs
	KeepComposition   bool // Keep queued htmx headers after a panic
}

// RecoverOption configures RecoverConfig.
type RecoverOption func(*RecoverConfig)

// WithRecoverStackSize sets the maximum stack trace size.
func WithRecoverStackSize(size int) RecoverOption {
	return func(cfg *RecoverConfig) {
		cfg.StackSize = size
	}
}

// WithRecoverDisablePrintStack disables including stack trace in logs.
func WithRecoverDisablePrintStack() RecoverOption {
	return func(cfg *RecoverConfig) {
		cfg.DisablePrintStack = true
	}
}

// WithRecoverKeepComposition keeps triggers, fragments and navigation
// directives queued before the panic. By default they are dropped so the
// error response does not fire client events for work that never finished.
func WithRecoverKeepComposition() RecoverOption {
	return func(cfg *RecoverConfig) {
		cfg.KeepComposition = true
	}
}

// Recover returns middleware that recovers from panics.
// It logs the panic and returns a PanicError to be handled by the global ErrorHandler.
// Request ID is automatically included via RequestIDExtractor() if configured.
func Recover(opts ...RecoverOption) internal.Middleware {
	cfg := &RecoverConfig{
		StackSize: DefaultStackSize,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}

				var stack []byte
				if !cfg.DisablePrintStack {
					stack = make([]byte, cfg.StackSize)
					n := runtime.Stack(stack, false)
					stack = stack[:n]
				}

				kind := c.Facts().Kind()
				if cfg.DisablePrintStack {
					c.LogError("panic recovered", "panic", r, "htmx_kind", kind)
				} else {
					c.LogError("panic recovered", "panic", r, "htmx_kind", kind, "stack", string(stack))
				}

				if !cfg.KeepComposition && !c.Written() {
					if composer := c.HTMX(); composer != nil {
						composer.Reset()
					}
				}

				err = &PanicError{
					Value: r,
					Kind:  kind,
					Stack: stack,
				}
			}()

			return next(c)
		}
	}
}
