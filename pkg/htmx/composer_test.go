package htmx_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/hxforge/pkg/htmx"
)

func newComposer() (*htmx.Composer, http.Header) {
	h := http.Header{}
	return htmx.NewComposer(htmx.Facts{Request: true}, h), h
}

func TestComposerPrepare(t *testing.T) {
	t.Parallel()

	t.Run("writes each phase independently", func(t *testing.T) {
		t.Parallel()

		c, h := newComposer()
		c.Trigger("a", nil).Trigger("b", nil)
		c.TriggerAfterSettle("settled", map[string]int{"id": 1})
		c.TriggerAfterSwap("swapped", "done")

		require.NoError(t, c.Prepare())
		assert.Equal(t, "a,b", h.Get("HX-Trigger"))
		assert.Equal(t, `{"settled":{"id":1}}`, h.Get("HX-Trigger-After-Settle"))
		assert.Equal(t, `{"swapped":"done"}`, h.Get("HX-Trigger-After-Swap"))
		assert.True(t, c.Prepared())
	})

	t.Run("empty phases leave caller headers untouched", func(t *testing.T) {
		t.Parallel()

		c, h := newComposer()
		h.Set("HX-Trigger-After-Swap", "from-caller")
		c.Trigger("only", nil)

		require.NoError(t, c.Prepare())
		assert.Equal(t, "only", h.Get("HX-Trigger"))
		assert.Equal(t, "from-caller", h.Get("HX-Trigger-After-Swap"))
		assert.Empty(t, h.Values("HX-Trigger-After-Settle"))
	})

	t.Run("runs once", func(t *testing.T) {
		t.Parallel()

		c, h := newComposer()
		c.Trigger("first", nil)
		require.NoError(t, c.Prepare())

		c.Trigger("late", nil)
		require.NoError(t, c.Prepare())
		assert.Equal(t, "first", h.Get("HX-Trigger"))
	})

	t.Run("encoding failure skips only the broken phase", func(t *testing.T) {
		t.Parallel()

		c, h := newComposer()
		c.Trigger("broken", func() {})
		c.TriggerAfterSwap("fine", nil)

		err := c.Prepare()
		require.Error(t, err)
		assert.ErrorIs(t, err, htmx.ErrEncodeTriggers)
		assert.Empty(t, h.Get("HX-Trigger"))
		assert.Equal(t, "fine", h.Get("HX-Trigger-After-Swap"))
	})

	t.Run("overwrite keeps a single key", func(t *testing.T) {
		t.Parallel()

		c, h := newComposer()
		c.Trigger("x", nil).Trigger("x", map[string]int{"id": 1})

		require.NoError(t, c.Prepare())
		assert.Equal(t, `{"x":{"id":1}}`, h.Get("HX-Trigger"))
		assert.Equal(t, []string{"x"}, c.Triggers(htmx.PhaseImmediate).Names())
	})
}

func TestComposerAssemble(t *testing.T) {
	t.Parallel()

	t.Run("replaces content with planned fragments", func(t *testing.T) {
		t.Parallel()

		c, _ := newComposer()
		c.SetFragments([]string{"first"}, false).AddFragment("second")

		view := stubView{
			htmx.ContentRegion: "<main>full page</main>",
			"first":            `<div id="first">1</div>`,
			"second":           `<div id="second">2</div>`,
		}

		assert.True(t, c.Assemble(view))
		assert.Equal(t, `<div id="first">1</div><div id="second" hx-swap-oob="innerHTML">2</div>`, view[htmx.ContentRegion])
	})

	t.Run("all missing clears the content region", func(t *testing.T) {
		t.Parallel()

		c, _ := newComposer()
		c.SetFragments([]string{"missing"}, false)
		view := stubView{htmx.ContentRegion: "<main>full page</main>"}

		assert.True(t, c.Assemble(view))
		assert.Equal(t, "", view[htmx.ContentRegion])
	})

	t.Run("empty plan keeps the content region", func(t *testing.T) {
		t.Parallel()

		c, _ := newComposer()
		c.SetFragments([]string{"first"}, false).ClearFragments()
		view := stubView{htmx.ContentRegion: "<main>full page</main>"}

		assert.False(t, c.Assemble(view))
		assert.Equal(t, "<main>full page</main>", view[htmx.ContentRegion])
	})

	t.Run("append and replace batches", func(t *testing.T) {
		t.Parallel()

		c, _ := newComposer()
		c.SetFragments([]string{"a", "b"}, false).
			SetFragments([]string{"c"}, true)
		assert.Equal(t, []string{"a", "b", "c"}, c.Fragments())

		c.SetFragments([]string{"z"}, false)
		assert.Equal(t, []string{"z"}, c.Fragments())
	})
}

func TestComposerMutators(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		apply      func(*htmx.Composer)
		header     string
		value      string
		wantStatus int
	}{
		{name: "location", apply: func(c *htmx.Composer) { c.Location("/contacts") }, header: "HX-Location", value: "/contacts"},
		{name: "push url", apply: func(c *htmx.Composer) { c.PushURL("/contacts/7") }, header: "HX-Push-Url", value: "/contacts/7"},
		{name: "replace url", apply: func(c *htmx.Composer) { c.ReplaceURL("/contacts?page=2") }, header: "HX-Replace-Url", value: "/contacts?page=2"},
		{name: "reswap", apply: func(c *htmx.Composer) { c.Reswap(htmx.SwapOuterHTML) }, header: "HX-Reswap", value: "outerHTML"},
		{name: "retarget", apply: func(c *htmx.Composer) { c.Retarget("#errors") }, header: "HX-Retarget", value: "#errors"},
		{name: "reselect", apply: func(c *htmx.Composer) { c.Reselect(".rows") }, header: "HX-Reselect", value: ".rows"},
		{name: "redirect", apply: func(c *htmx.Composer) { c.Redirect("/login") }, header: "HX-Redirect", value: "/login", wantStatus: http.StatusOK},
		{name: "refresh", apply: func(c *htmx.Composer) { c.Refresh() }, header: "HX-Refresh", value: "true", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, h := newComposer()
			h.Set("X-Unrelated", "keep")

			tt.apply(c)

			assert.Equal(t, tt.value, h.Get(tt.header))
			assert.Equal(t, "keep", h.Get("X-Unrelated"))
			assert.Equal(t, tt.wantStatus, c.Status())
			_, hasBody := c.Body()
			assert.False(t, hasBody)
		})
	}
}

func TestComposerStopPolling(t *testing.T) {
	t.Parallel()

	c, h := newComposer()
	h.Set("HX-Trigger", "kept")

	c.StopPolling("<p>finished</p>", map[string]string{"X-Job": "done"})

	assert.Equal(t, htmx.StatusStopPolling, c.Status())
	body, ok := c.Body()
	require.True(t, ok)
	assert.Equal(t, "<p>finished</p>", body)
	assert.Equal(t, "done", h.Get("X-Job"))
	assert.Equal(t, "kept", h.Get("HX-Trigger"))
}

func TestComposerLocationWithOptions(t *testing.T) {
	t.Parallel()

	c, h := newComposer()
	require.NoError(t, c.LocationWithOptions(htmx.LocationOptions{Path: "/contacts", Target: "#main"}))
	assert.JSONEq(t, `{"path":"/contacts","target":"#main"}`, h.Get("HX-Location"))
}

func TestNewComposerNilHeader(t *testing.T) {
	t.Parallel()

	c := htmx.NewComposer(htmx.Facts{}, nil)
	c.PushURL("/x")

	assert.Equal(t, "/x", c.Header().Get("HX-Push-Url"))
	assert.False(t, c.Facts().IsHTMX())
	assert.Equal(t, 0, c.Status())
}

func TestComposerReset(t *testing.T) {
	t.Parallel()

	t.Run("drops queued state", func(t *testing.T) {
		t.Parallel()

		c, h := newComposer()
		h.Set("X-Unrelated", "1")
		c.Trigger("saved", nil).AddFragment("rows").Retarget("#main").StopPolling("done", map[string]string{"X-Job": "done"})

		c.Reset()

		assert.Equal(t, 0, c.Status())
		_, hasBody := c.Body()
		assert.False(t, hasBody)
		assert.Empty(t, c.Fragments())
		assert.Empty(t, h.Get("HX-Retarget"))
		assert.Equal(t, "1", h.Get("X-Unrelated"))
		assert.Equal(t, "done", h.Get("X-Job"))

		require.NoError(t, c.Prepare())
		assert.Empty(t, h.Get("HX-Trigger"))
	})

	t.Run("no effect after prepare", func(t *testing.T) {
		t.Parallel()

		c, h := newComposer()
		c.Trigger("saved", nil)
		require.NoError(t, c.Prepare())

		c.Reset()

		assert.Equal(t, "saved", h.Get("HX-Trigger"))
	})
}
