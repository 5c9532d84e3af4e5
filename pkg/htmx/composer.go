package htmx

import (
	"errors"
	"net/http"
)

// Composer collects everything an HTMX response needs while a request is handled:
// triggers for the three phases, the fragment plan and HX-* response headers.
//
// A Composer belongs to exactly one request and is not safe for concurrent use.
// Prepare flushes triggers before the body is rendered; Assemble builds the body
// from rendered fragments afterwards.
type Composer struct {
	header   http.Header
	body     *string
	triggers [len(Phases)]*Triggers
	plan     Plan
	status   int
	facts    Facts
	prepared bool
}

// NewComposer creates a session writing to header.
// A nil header gets a fresh map.
func NewComposer(facts Facts, header http.Header) *Composer {
	if header == nil {
		header = make(http.Header)
	}
	c := &Composer{facts: facts, header: header}
	for i := range c.triggers {
		c.triggers[i] = NewTriggers()
	}
	return c
}

// Facts returns the request classification.
func (c *Composer) Facts() Facts { return c.facts }

// Header returns the response header map the composer writes to.
func (c *Composer) Header() http.Header { return c.header }

// Status returns the status forced by Redirect, Refresh or StopPolling.
// Zero means the caller's status is kept.
func (c *Composer) Status() int { return c.status }

// Body returns the body set by StopPolling.
func (c *Composer) Body() (string, bool) {
	if c.body == nil {
		return "", false
	}
	return *c.body, true
}

// Prepared reports whether triggers were already flushed.
func (c *Composer) Prepared() bool { return c.prepared }

// Trigger registers an event dispatched as soon as the response arrives.
func (c *Composer) Trigger(name string, payload any) *Composer {
	c.triggers[PhaseImmediate].Add(name, payload)
	return c
}

// TriggerAfterSettle registers an event dispatched after the settle step.
func (c *Composer) TriggerAfterSettle(name string, payload any) *Composer {
	c.triggers[PhaseAfterSettle].Add(name, payload)
	return c
}

// TriggerAfterSwap registers an event dispatched after the swap step.
func (c *Composer) TriggerAfterSwap(name string, payload any) *Composer {
	c.triggers[PhaseAfterSwap].Add(name, payload)
	return c
}

// Triggers returns the registry of a phase.
func (c *Composer) Triggers(p Phase) *Triggers {
	if int(p) >= len(c.triggers) {
		p = PhaseImmediate
	}
	return c.triggers[p]
}

// Prepare writes the trigger headers. It runs once; later calls are no-ops.
// A phase whose payload cannot be encoded is skipped and reported in the error,
// the other phases are still written.
func (c *Composer) Prepare() error {
	if c.prepared {
		return nil
	}
	c.prepared = true

	var errs []error
	for _, p := range Phases {
		if err := c.triggers[p].Apply(c.header, p); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// SetFragments replaces the fragment plan, or extends it when appendMode is true.
func (c *Composer) SetFragments(names []string, appendMode bool) *Composer {
	c.plan.Set(names, appendMode)
	return c
}

// AddFragment appends a fragment to the plan.
func (c *Composer) AddFragment(name string) *Composer {
	c.plan.Add(name)
	return c
}

// ClearFragments empties the plan.
func (c *Composer) ClearFragments() *Composer {
	c.plan.Clear()
	return c
}

// Fragments returns the planned fragment names in order.
func (c *Composer) Fragments() []string {
	return c.plan.Names()
}

// Assemble replaces the content region of v with the planned fragments.
// With an empty plan v is left alone and false is returned. Otherwise the
// region is always replaced, with an empty string if no fragment was rendered.
func (c *Composer) Assemble(v View) bool {
	if c.plan.Len() == 0 {
		return false
	}
	v.Assign(ContentRegion, Assemble(c.plan.names, v))
	return true
}

// Location navigates the client without a full reload.
func (c *Composer) Location(url string) *Composer {
	c.header.Set(HeaderHXLocation, url)
	return c
}

// LocationWithOptions sets HX-Location to the JSON form of opts.
func (c *Composer) LocationWithOptions(opts LocationOptions) error {
	v, err := opts.encode()
	if err != nil {
		return err
	}
	c.header.Set(HeaderHXLocation, v)
	return nil
}

// PushURL pushes url onto the browser history stack.
func (c *Composer) PushURL(url string) *Composer {
	c.header.Set(HeaderHXPushURL, url)
	return c
}

// ReplaceURL replaces the current URL in the location bar.
func (c *Composer) ReplaceURL(url string) *Composer {
	c.header.Set(HeaderHXReplaceURL, url)
	return c
}

// Reswap overrides how the response is swapped.
func (c *Composer) Reswap(strategy SwapStrategy) *Composer {
	c.header.Set(HeaderHXReswap, string(strategy))
	return c
}

// Retarget points the swap at another element.
func (c *Composer) Retarget(selector string) *Composer {
	c.header.Set(HeaderHXRetarget, selector)
	return c
}

// Reselect chooses which part of the response is swapped in.
func (c *Composer) Reselect(selector string) *Composer {
	c.header.Set(HeaderHXReselect, selector)
	return c
}

// Redirect performs a client-side redirect. HTMX reads the header, so the
// status is forced to 200 instead of a 3xx.
func (c *Composer) Redirect(url string) *Composer {
	c.header.Set(HeaderHXRedirect, url)
	c.status = http.StatusOK
	return c
}

// Refresh asks the client for a full page reload.
func (c *Composer) Refresh() *Composer {
	c.header.Set(HeaderHXRefresh, "true")
	c.status = http.StatusOK
	return c
}

// StopPolling sets headers, forces status 286 and replaces the body with content.
func (c *Composer) StopPolling(content string, headers map[string]string) *Composer {
	for name, value := range headers {
		c.header.Set(name, value)
	}
	c.status = StatusStopPolling
	c.body = &content
	return c
}

// responseHeaders lists the HX-* headers the composer may set.
var responseHeaders = [...]string{
	HeaderHXLocation, HeaderHXPushURL, HeaderHXRedirect, HeaderHXRefresh,
	HeaderHXReplaceURL, HeaderHXReswap, HeaderHXRetarget, HeaderHXReselect,
	HeaderHXTrigger, HeaderHXTriggerAfterSwap, HeaderHXTriggerAfterSettle,
}

// Reset drops queued triggers, the fragment plan, the forced status and body,
// and every HX-* response header. Extra headers passed to StopPolling are kept.
// It has no effect once Prepare ran.
func (c *Composer) Reset() *Composer {
	if c.prepared {
		return c
	}
	for i := range c.triggers {
		c.triggers[i] = NewTriggers()
	}
	c.plan.Clear()
	c.status = 0
	c.body = nil
	for _, h := range responseHeaders {
		c.header.Del(h)
	}
	return c
}
