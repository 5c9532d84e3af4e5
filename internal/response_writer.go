package internal

import (
	"bufio"
	"io"
	"net"
	"net/http"
	"sync"

	"github.com/dmitrymomot/hxforge/pkg/htmx"
)

// ResponseWriter wraps http.ResponseWriter to provide response interception.
// It tracks write status, runs hooks before the first write and applies the
// status and body forced by the request's htmx.Composer.
type ResponseWriter struct {
	http.ResponseWriter
	composer    *htmx.Composer
	beforeWrite []func()
	status      int
	size        int64
	written     bool
	discard     bool
	mu          sync.Mutex
}

// NewResponseWriter creates a new ResponseWriter.
func NewResponseWriter(w http.ResponseWriter) *ResponseWriter {
	return &ResponseWriter{
		ResponseWriter: w,
		status:         http.StatusOK,
	}
}

// Compose attaches the composer whose forced status and body win over what
// the handler writes.
func (w *ResponseWriter) Compose(c *htmx.Composer) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.composer = c
}

// OnBeforeWrite registers a hook to run before the first write.
// Hooks are called in registration order when WriteHeader or Write is first called.
func (w *ResponseWriter) OnBeforeWrite(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.beforeWrite = append(w.beforeWrite, fn)
}

// WriteHeader sends the response header. A status forced by the composer
// replaces code; a forced body is written right after and later handler
// writes are dropped.
func (w *ResponseWriter) WriteHeader(code int) {
	w.mu.Lock()
	if w.written {
		w.mu.Unlock()
		return
	}
	w.written = true
	hooks := w.beforeWrite
	w.beforeWrite = nil
	composer := w.composer
	w.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}

	var (
		body    string
		hasBody bool
	)
	if composer != nil {
		if forced := composer.Status(); forced != 0 {
			code = forced
		}
		body, hasBody = composer.Body()
	}

	w.status = code
	w.ResponseWriter.WriteHeader(code)

	if hasBody {
		n, _ := io.WriteString(w.ResponseWriter, body)
		w.size += int64(n)
		w.discard = true
	}
}

// Write writes the data to the connection as part of an HTTP reply.
func (w *ResponseWriter) Write(b []byte) (int, error) {
	if !w.Written() {
		w.WriteHeader(http.StatusOK)
	}
	if w.discard {
		return len(b), nil
	}

	n, err := w.ResponseWriter.Write(b)
	w.size += int64(n)
	return n, err
}

// Status returns the HTTP status code sent to the client.
func (w *ResponseWriter) Status() int {
	return w.status
}

// Size returns the number of bytes written to the response body.
func (w *ResponseWriter) Size() int64 {
	return w.size
}

// Written returns true if the response has been written.
func (w *ResponseWriter) Written() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.written
}

// Flush implements the http.Flusher interface.
func (w *ResponseWriter) Flush() {
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// Hijack implements the http.Hijacker interface.
func (w *ResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if hijacker, ok := w.ResponseWriter.(http.Hijacker); ok {
		return hijacker.Hijack()
	}
	return nil, nil, http.ErrNotSupported
}

// Unwrap returns the underlying ResponseWriter.
func (w *ResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
