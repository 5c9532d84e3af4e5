// Package logger builds log/slog loggers enriched with request-scoped attributes.
//
// A [ContextExtractor] pulls one attribute out of a context. Extractors run on
// every log call, so values stored per request (request id, the HTMX request
// kind) show up without passing them around:
//
//	log := logger.New(middlewares.RequestIDExtractor(), middlewares.HTMXExtractor())
//	log.InfoContext(r.Context(), "contacts listed", slog.Int("count", n))
//	// {"level":"INFO","msg":"contacts listed","count":3,"request_id":"...","htmx":"htmx"}
//
// [NewWithConfig] picks the output, format and level; [Decorate] wraps any
// other handler. [NewWithSentry] also forwards warnings and errors to Sentry
// and falls back to local output when no DSN is set.
//
// [NewNope] discards everything and is the default until a logger is set.
package logger
