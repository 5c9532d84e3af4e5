package htmx_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/hxforge/pkg/htmx"
)

func TestTriggersEncode(t *testing.T) {
	t.Parallel()

	t.Run("empty registry encodes to nothing", func(t *testing.T) {
		t.Parallel()

		v, err := htmx.NewTriggers().Encode()
		require.NoError(t, err)
		assert.Empty(t, v)
	})

	t.Run("null payloads use comma-joined names", func(t *testing.T) {
		t.Parallel()

		v, err := htmx.NewTriggers().Add("a", nil).Add("b", nil).Encode()
		require.NoError(t, err)
		assert.Equal(t, "a,b", v)
	})

	t.Run("typed nil payloads stay in comma-joined form", func(t *testing.T) {
		t.Parallel()

		type item struct{ ID int }
		v, err := htmx.NewTriggers().
			Add("a", nil).
			Add("b", (*item)(nil)).
			Add("c", map[string]any(nil)).
			Add("d", []int(nil)).
			Encode()
		require.NoError(t, err)
		assert.Equal(t, "a,b,c,d", v)
	})

	t.Run("one payload switches the whole phase to JSON", func(t *testing.T) {
		t.Parallel()

		v, err := htmx.NewTriggers().Add("a", nil).Add("b", 7).Encode()
		require.NoError(t, err)
		assert.Equal(t, `{"a":null,"b":7}`, v)
	})

	t.Run("JSON keys keep insertion order", func(t *testing.T) {
		t.Parallel()

		v, err := htmx.NewTriggers().
			Add("zeta", "last-alphabetically").
			Add("alpha", []int{1, 2}).
			Add("mid", map[string]any{"ok": true}).
			Encode()
		require.NoError(t, err)
		assert.Equal(t, `{"zeta":"last-alphabetically","alpha":[1,2],"mid":{"ok":true}}`, v)
	})

	t.Run("re-adding keeps position and replaces payload", func(t *testing.T) {
		t.Parallel()

		tr := htmx.NewTriggers().Add("x", nil).Add("y", nil).Add("x", map[string]int{"id": 1})

		assert.Equal(t, []string{"x", "y"}, tr.Names())
		v, err := tr.Encode()
		require.NoError(t, err)
		assert.Equal(t, `{"x":{"id":1},"y":null}`, v)
	})

	t.Run("last write wins back to null", func(t *testing.T) {
		t.Parallel()

		v, err := htmx.NewTriggers().Add("x", 1).Add("x", nil).Encode()
		require.NoError(t, err)
		assert.Equal(t, "x", v)
	})

	t.Run("empty names are ignored", func(t *testing.T) {
		t.Parallel()

		tr := htmx.NewTriggers().Add("", "payload")
		assert.Equal(t, 0, tr.Len())
	})

	t.Run("unencodable payload is an error", func(t *testing.T) {
		t.Parallel()

		_, err := htmx.NewTriggers().Add("bad", make(chan int)).Encode()
		require.Error(t, err)
		assert.ErrorIs(t, err, htmx.ErrEncodeTriggers)
	})

	t.Run("zero value registry is usable", func(t *testing.T) {
		t.Parallel()

		var tr htmx.Triggers
		assert.Equal(t, 0, tr.Len())
		tr.Add("a", nil)
		v, err := tr.Encode()
		require.NoError(t, err)
		assert.Equal(t, "a", v)
	})
}

func TestPayload(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		payload  htmx.Payload
		wantJSON string
		wantNull bool
	}{
		{name: "null", payload: htmx.Null(), wantJSON: "null", wantNull: true},
		{name: "zero value", payload: htmx.Payload{}, wantJSON: "null", wantNull: true},
		{name: "scalar", payload: htmx.Scalar("saved"), wantJSON: `"saved"`},
		{name: "structured", payload: htmx.Structured(map[string]int{"id": 3}), wantJSON: `{"id":3}`},
		{name: "structured nil", payload: htmx.Structured(nil), wantJSON: "null", wantNull: true},
		{name: "structured nil pointer", payload: htmx.Structured((*struct{ A int })(nil)), wantJSON: "null", wantNull: true},
		{name: "structured nil map", payload: htmx.Structured(map[string]int(nil)), wantJSON: "null", wantNull: true},
		{name: "structured empty map", payload: htmx.Structured(map[string]int{}), wantJSON: `{}`},
		{name: "of nil slice", payload: htmx.PayloadOf([]string(nil)), wantJSON: "null", wantNull: true},
		{name: "of string", payload: htmx.PayloadOf("x"), wantJSON: `"x"`},
		{name: "of payload", payload: htmx.PayloadOf(htmx.Scalar("y")), wantJSON: `"y"`},
		{name: "of number", payload: htmx.PayloadOf(1.5), wantJSON: `1.5`},
		{name: "of raw JSON", payload: htmx.PayloadOf(json.RawMessage(`{"a":[1]}`)), wantJSON: `{"a":[1]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data, err := json.Marshal(tt.payload)
			require.NoError(t, err)
			assert.JSONEq(t, tt.wantJSON, string(data))
			assert.Equal(t, tt.wantNull, tt.payload.IsNull())
		})
	}
}

func TestTriggersApply(t *testing.T) {
	t.Parallel()

	t.Run("empty registry leaves existing header alone", func(t *testing.T) {
		t.Parallel()

		h := http.Header{}
		h.Set("HX-Trigger", "set-by-caller")

		require.NoError(t, htmx.NewTriggers().Apply(h, htmx.PhaseImmediate))
		assert.Equal(t, "set-by-caller", h.Get("HX-Trigger"))
	})

	t.Run("writes the phase header", func(t *testing.T) {
		t.Parallel()

		h := http.Header{}
		require.NoError(t, htmx.NewTriggers().Add("done", nil).Apply(h, htmx.PhaseAfterSwap))
		assert.Equal(t, "done", h.Get("HX-Trigger-After-Swap"))
		assert.Empty(t, h.Get("HX-Trigger"))
	})
}

func TestPhase(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "HX-Trigger", htmx.PhaseImmediate.Header())
	assert.Equal(t, "HX-Trigger-After-Settle", htmx.PhaseAfterSettle.Header())
	assert.Equal(t, "HX-Trigger-After-Swap", htmx.PhaseAfterSwap.Header())
	assert.Equal(t, "after-settle", htmx.PhaseAfterSettle.String())
}
