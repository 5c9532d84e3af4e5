package htmx

import (
	"bytes"
	"context"
	"io"
	"net/http"
)

// Renderable is the interface for OOB components.
// Compatible with templ.Component and hxforge.Component.
type Renderable interface {
	Render(ctx context.Context, w io.Writer) error
}

// Config holds HTMX render configuration.
// Exported so internal/context.go can access OOB components.
type Config struct {
	OOBComponents []Renderable
	Retarget      string
	Reswap        SwapStrategy
	Reselect      string
	PushURL       string
	ReplaceURL    string
	triggers      [len(Phases)]*Triggers
	Refresh       bool
}

// RenderOption configures HTMX render behavior.
type RenderOption func(*Config)

// NewConfig creates a Config from options.
func NewConfig(opts ...RenderOption) *Config {
	cfg := &Config{}
	for i := range cfg.triggers {
		cfg.triggers[i] = NewTriggers()
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Triggers returns the events collected for a phase.
func (c *Config) Triggers(p Phase) *Triggers {
	if int(p) >= len(c.triggers) {
		p = PhaseImmediate
	}
	return c.triggers[p]
}

// ApplyTo replays the options into a composition session, so triggers share
// the session's encoding and earlier events keep their position.
func (c *Config) ApplyTo(s *Composer) {
	if c == nil || s == nil {
		return
	}

	if c.Retarget != "" {
		s.Retarget(c.Retarget)
	}
	if c.Reswap != "" {
		s.Reswap(c.Reswap)
	}
	if c.Reselect != "" {
		s.Reselect(c.Reselect)
	}
	if c.PushURL != "" {
		s.PushURL(c.PushURL)
	}
	if c.ReplaceURL != "" {
		s.ReplaceURL(c.ReplaceURL)
	}
	for _, p := range Phases {
		src := c.triggers[p]
		for _, name := range src.Names() {
			payload, _ := src.Payload(name)
			s.Triggers(p).Add(name, payload)
		}
	}
	if c.Refresh {
		s.Refresh()
	}
}

// ApplyHeaders sets HTMX headers on the response without a session.
// Call it before WriteHeader.
func (c *Config) ApplyHeaders(w http.ResponseWriter) error {
	if c == nil {
		return nil
	}
	s := NewComposer(Facts{Request: true}, w.Header())
	c.ApplyTo(s)
	return s.Prepare()
}

// RenderOOB renders components one after another, marking the root element
// of each for an out-of-band swap.
func (c *Config) RenderOOB(ctx context.Context, w io.Writer) error {
	if c == nil {
		return nil
	}
	var buf bytes.Buffer
	for _, oob := range c.OOBComponents {
		buf.Reset()
		if err := oob.Render(ctx, &buf); err != nil {
			return err
		}
		if _, err := io.WriteString(w, InjectOOB(buf.String(), SwapInnerHTML)); err != nil {
			return err
		}
	}
	return nil
}

// WithOOB appends out-of-band components to render after the main component.
// Components need an id; hx-swap-oob is added when missing.
func WithOOB(components ...Renderable) RenderOption {
	return func(c *Config) {
		c.OOBComponents = append(c.OOBComponents, components...)
	}
}

// WithRetarget sets the HX-Retarget header to change the target element.
func WithRetarget(selector string) RenderOption {
	return func(c *Config) {
		c.Retarget = selector
	}
}

// WithReswap sets the HX-Reswap header to change the swap strategy.
func WithReswap(strategy SwapStrategy) RenderOption {
	return func(c *Config) {
		c.Reswap = strategy
	}
}

// WithReselect sets the HX-Reselect header to select a subset of the response.
func WithReselect(selector string) RenderOption {
	return func(c *Config) {
		c.Reselect = selector
	}
}

// WithPushURL sets the HX-Push-Url header to update browser history.
// Pass "false" to prevent URL update.
func WithPushURL(url string) RenderOption {
	return func(c *Config) {
		c.PushURL = url
	}
}

// WithReplaceURL sets the HX-Replace-Url header to replace current URL.
// Pass "false" to prevent URL replacement.
func WithReplaceURL(url string) RenderOption {
	return func(c *Config) {
		c.ReplaceURL = url
	}
}

// WithTrigger adds client-side events without payload to HX-Trigger.
func WithTrigger(events ...string) RenderOption {
	return func(c *Config) {
		for _, e := range events {
			c.triggers[PhaseImmediate].Add(e, nil)
		}
	}
}

// WithTriggerDetail adds an event carrying a payload to HX-Trigger.
// Any payload switches the header to its JSON form.
func WithTriggerDetail(event string, detail any) RenderOption {
	return func(c *Config) {
		c.triggers[PhaseImmediate].Add(event, detail)
	}
}

// WithTriggerAfterSwap sets the HX-Trigger-After-Swap header.
// Events trigger after the swap completes.
func WithTriggerAfterSwap(events ...string) RenderOption {
	return func(c *Config) {
		for _, e := range events {
			c.triggers[PhaseAfterSwap].Add(e, nil)
		}
	}
}

// WithTriggerAfterSettle sets the HX-Trigger-After-Settle header.
// Events trigger after the settle phase.
func WithTriggerAfterSettle(events ...string) RenderOption {
	return func(c *Config) {
		for _, e := range events {
			c.triggers[PhaseAfterSettle].Add(e, nil)
		}
	}
}

// WithRefresh sets the HX-Refresh header to force a full page refresh.
func WithRefresh() RenderOption {
	return func(c *Config) {
		c.Refresh = true
	}
}
