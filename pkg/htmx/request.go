package htmx

import (
	"context"
	"net/http"
	"strings"
)

// Facts describes how a request relates to the HTMX protocol.
// It is computed once from request headers and never changes afterwards.
type Facts struct {
	Request        bool // HX-Request
	Boosted        bool // HX-Boosted
	HistoryRestore bool // HX-History-Restore-Request
}

// Classify derives Facts from request headers.
// Missing or unparsable values resolve to false. Header names match
// case-insensitively, including keys of hand-built maps that were never
// canonicalised.
func Classify(h http.Header) Facts {
	if h == nil {
		return Facts{}
	}
	return Facts{
		Request:        ParseBool(first(h, HeaderHXRequest)),
		Boosted:        ParseBool(first(h, HeaderHXBoosted)),
		HistoryRestore: ParseBool(first(h, HeaderHXHistoryRestoreRequest)),
	}
}

func first(h http.Header, name string) string {
	v, _ := lookup(h, name)
	return v
}

// lookup returns the first value of name, falling back to a case-insensitive
// scan when the canonical key is absent.
func lookup(h http.Header, name string) (string, bool) {
	if values := h[http.CanonicalHeaderKey(name)]; len(values) > 0 {
		return values[0], true
	}
	for key, values := range h {
		if len(values) > 0 && strings.EqualFold(key, name) {
			return values[0], true
		}
	}
	return "", false
}

// FromRequest classifies r. A nil request is a plain full-page request.
func FromRequest(r *http.Request) Facts {
	if r == nil {
		return Facts{}
	}
	return Classify(r.Header)
}

// IsHTMX reports whether the request was issued by HTMX.
func (f Facts) IsHTMX() bool { return f.Request }

// IsBoosted reports whether the request comes from a boosted link or form.
func (f Facts) IsBoosted() bool { return f.Boosted }

// IsHistoryRestore reports whether HTMX asks for a page missing from its history cache.
func (f Facts) IsHistoryRestore() bool { return f.HistoryRestore }

// IsPlain reports an HTMX request that was not boosted.
// Such requests expect a fragment rather than a full page.
func (f Facts) IsPlain() bool { return f.Request && !f.Boosted }

// Kind returns a short label for logs and metrics.
func (f Facts) Kind() string {
	switch {
	case f.HistoryRestore:
		return "history-restore"
	case f.IsPlain():
		return "htmx"
	case f.Boosted:
		return "boosted"
	default:
		return "page"
	}
}

// CurrentURL returns the browser URL at the time of the request.
func CurrentURL(r *http.Request) (string, bool) {
	return headerValue(r, HeaderHXCurrentURL)
}

// PromptResponse returns the user response to an hx-prompt.
func PromptResponse(r *http.Request) (string, bool) {
	return headerValue(r, HeaderHXPrompt)
}

// Target returns the id of the target element.
func Target(r *http.Request) (string, bool) {
	return headerValue(r, HeaderHXTarget)
}

// TriggerName returns the name of the triggered element.
func TriggerName(r *http.Request) (string, bool) {
	return headerValue(r, HeaderHXTriggerName)
}

// TriggerID returns the id of the triggered element.
func TriggerID(r *http.Request) (string, bool) {
	return headerValue(r, HeaderHXTriggerID)
}

// headerValue distinguishes an absent header from an empty one.
func headerValue(r *http.Request, name string) (string, bool) {
	if r == nil {
		return "", false
	}
	return lookup(r.Header, name)
}

type (
	factsKey    struct{}
	composerKey struct{}
)

// WithFacts stores f in ctx.
func WithFacts(ctx context.Context, f Facts) context.Context {
	return context.WithValue(ctx, factsKey{}, f)
}

// FactsFromContext returns the Facts stored by WithFacts.
func FactsFromContext(ctx context.Context) (Facts, bool) {
	f, ok := ctx.Value(factsKey{}).(Facts)
	return f, ok
}

// WithComposer stores c in ctx so every layer of a request shares one session.
func WithComposer(ctx context.Context, c *Composer) context.Context {
	return context.WithValue(ctx, composerKey{}, c)
}

// ComposerFromContext returns the Composer stored by WithComposer.
func ComposerFromContext(ctx context.Context) (*Composer, bool) {
	c, ok := ctx.Value(composerKey{}).(*Composer)
	return c, ok && c != nil
}
