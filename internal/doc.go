// Package internal contains the implementation of the hxforge application.
//
// This package is internal and should not be used directly. Import
// "github.com/dmitrymomot/hxforge" instead, which re-exports the public API.
//
// # Request lifecycle
//
// The first layer that sees a request (a global middleware or the route
// handler) wraps the http.ResponseWriter in a [ResponseWriter] and stores a
// fresh htmx.Composer in the request context. Every further layer reuses
// both, so triggers and fragment plans registered anywhere end up in the same
// response:
//
//	func (h *Contacts) create(c hxforge.Context) error {
//	    c.HTMX().Trigger("contact-created", map[string]int{"id": id})
//	    c.HTMX().SetFragments([]string{"rows", "counter"}, false)
//	    return c.View(http.StatusOK, "contacts", data)
//	}
//
// Before the first byte is written the ResponseWriter runs its hooks. For
// HTMX requests one of them calls Composer.Prepare, which turns the three
// trigger registries into HX-Trigger headers. Context.View renders the
// template, lets the composer assemble the planned fragments into the body
// and writes it.
//
// A status forced by the composer (Redirect, Refresh, StopPolling) replaces
// the status passed to WriteHeader. A body forced by StopPolling replaces the
// handler's output. When the handler returns without writing, the forced
// status and body are flushed on its behalf.
//
// # Errors
//
// Handlers return errors. The app passes them to the configured
// [ErrorHandler]; without one, an [HTTPError] status or 500 is written.
package internal
