// Package htmx provides utilities for working with HTMX requests and responses.
//
// HTMX drives partial page updates, client-side navigation and out-of-band
// swaps through a family of HX-* headers. This package classifies incoming
// requests from those headers and composes the headers and body of the reply.
//
// # Request Detection
//
// Classify reads HX-Request, HX-Boosted and HX-History-Restore-Request with a
// single boolean rule (see ParseBool) and returns immutable Facts:
//
//	f := htmx.FromRequest(r)
//	if f.IsPlain() {
//		// HTMX request that is not boosted: answer with a fragment
//	}
//
// Missing or malformed headers resolve to false, which selects the ordinary
// full-page code path. CurrentURL, PromptResponse, Target, TriggerName and
// TriggerID return the remaining request headers untouched.
//
// # Composing a Response
//
// A Composer is the per-request composition session. It collects triggers for
// the three client phases, the ordered list of fragments to render, and the
// HX-* response headers:
//
//	c := htmx.NewComposer(htmx.FromRequest(r), w.Header())
//	c.Trigger("contacts-updated", nil).
//		TriggerAfterSettle("flash", map[string]string{"level": "success"}).
//		SetFragments([]string{"contact-row", "contact-count"}, false)
//
//	_ = c.Prepare()   // before rendering: writes HX-Trigger* headers
//	// ... render templates into a View ...
//	c.Assemble(view)  // after rendering: builds the content region
//
// # Trigger Encoding
//
// When every event of a phase has no payload the header is the comma-joined
// list of names ("a,b"). As soon as one event carries a payload the whole
// phase is encoded as one JSON object in insertion order, with null for the
// events without payload ({"a":null,"b":7}).
//
// # Fragments and Out-of-Band Swaps
//
// Assemble walks the plan in order and skips fragments that were not rendered.
// The first rendered fragment is emitted verbatim; the root element of every
// following one receives hx-swap-oob="innerHTML" (InjectOOB), so one response
// can update several regions of the page.
//
// # Response Headers
//
// The package exports constants for all HTMX response headers. Common headers include:
//   - HX-Location: Client-side navigation with URL update
//   - HX-Redirect: Client-side redirect
//   - HX-Retarget: Change the target element
//   - HX-Reswap: Change the swap strategy
//   - HX-Refresh: Refresh the page
//
// Redirect and Refresh force status 200 because HTMX ignores 3xx responses;
// StopPolling answers with 286, which cancels polling on the client.
//
// # Navigation and Redirects
//
// Location and Redirect also exist as plain functions for handlers that work
// on http.ResponseWriter directly. They fall back to an HTTP redirect for
// regular requests:
//
//	htmx.Redirect(w, r, "/new-page")
//	htmx.LocationTarget(w, r, "/api/users", "#user-list")
//
// # Swap Strategies
//
// The SwapStrategy type defines how content should be inserted into the target element:
//   - SwapInnerHTML: Replace inner HTML (default)
//   - SwapOuterHTML: Replace entire element
//   - SwapBeforeBegin: Insert before element
//   - SwapAfterBegin: Insert before first child
//   - SwapBeforeEnd: Insert after last child
//   - SwapAfterEnd: Insert after element
//   - SwapDelete: Remove the element
//   - SwapNone: Don't swap
package htmx
