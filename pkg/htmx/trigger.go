package htmx

import (
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Phase is the moment at which the client dispatches a trigger.
type Phase uint8

const (
	PhaseImmediate   Phase = iota // as soon as the response is received
	PhaseAfterSettle              // after the settle step
	PhaseAfterSwap                // after the swap step
)

// Phases lists every phase in header emission order.
var Phases = [...]Phase{PhaseImmediate, PhaseAfterSettle, PhaseAfterSwap}

// Header returns the response header carrying triggers for the phase.
func (p Phase) Header() string {
	switch p {
	case PhaseAfterSettle:
		return HeaderHXTriggerAfterSettle
	case PhaseAfterSwap:
		return HeaderHXTriggerAfterSwap
	default:
		return HeaderHXTrigger
	}
}

func (p Phase) String() string {
	switch p {
	case PhaseAfterSettle:
		return "after-settle"
	case PhaseAfterSwap:
		return "after-swap"
	default:
		return "immediate"
	}
}

type payloadKind uint8

const (
	payloadNull payloadKind = iota
	payloadScalar
	payloadStructured
)

// Payload is the optional detail attached to a trigger.
// The zero value is the null payload.
type Payload struct {
	value  any
	scalar string
	kind   payloadKind
}

// Null returns the empty payload.
func Null() Payload { return Payload{} }

// Scalar returns a string payload.
func Scalar(s string) Payload {
	return Payload{kind: payloadScalar, scalar: s}
}

// Structured returns a payload encoded with encoding/json.
// A nil value, including a typed nil pointer, map or slice, yields the null
// payload.
func Structured(v any) Payload {
	if isNil(v) {
		return Payload{}
	}
	return Payload{kind: payloadStructured, value: v}
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}

// PayloadOf picks the variant matching v: nil is null, a string is a scalar,
// a Payload is used as is, anything else is structured.
func PayloadOf(v any) Payload {
	switch p := v.(type) {
	case nil:
		return Null()
	case Payload:
		return p
	case string:
		return Scalar(p)
	default:
		return Structured(p)
	}
}

// IsNull reports whether the payload carries no data.
func (p Payload) IsNull() bool { return p.kind == payloadNull }

// MarshalJSON implements json.Marshaler.
func (p Payload) MarshalJSON() ([]byte, error) {
	switch p.kind {
	case payloadScalar:
		return json.Marshal(p.scalar)
	case payloadStructured:
		return json.Marshal(p.value)
	default:
		return []byte("null"), nil
	}
}

// Triggers is an ordered set of client events for one phase.
// Re-adding a name replaces its payload but keeps its original position.
type Triggers struct {
	events *orderedmap.OrderedMap[string, Payload]
}

// NewTriggers creates an empty registry.
func NewTriggers() *Triggers {
	return &Triggers{events: orderedmap.New[string, Payload]()}
}

// Add registers an event. The payload goes through PayloadOf.
// Empty names are ignored.
func (t *Triggers) Add(name string, payload any) *Triggers {
	if name == "" {
		return t
	}
	if t.events == nil {
		t.events = orderedmap.New[string, Payload]()
	}
	t.events.Set(name, PayloadOf(payload))
	return t
}

// Len returns the number of registered events.
func (t *Triggers) Len() int {
	if t == nil || t.events == nil {
		return 0
	}
	return t.events.Len()
}

// Names returns event names in insertion order.
func (t *Triggers) Names() []string {
	names := make([]string, 0, t.Len())
	if t.Len() == 0 {
		return names
	}
	for pair := t.events.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// Payload returns the payload registered for name.
func (t *Triggers) Payload(name string) (Payload, bool) {
	if t.Len() == 0 {
		return Payload{}, false
	}
	return t.events.Get(name)
}

// Encode renders the header value.
//
// An empty registry encodes to "". When every payload is null the result is
// the comma-joined list of names. A single non-null payload switches the whole
// registry to a JSON object keyed by name, in insertion order.
func (t *Triggers) Encode() (string, error) {
	if t.Len() == 0 {
		return "", nil
	}

	if !t.hasPayload() {
		return strings.Join(t.Names(), ","), nil
	}

	data, err := json.Marshal(t.events)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncodeTriggers, err)
	}
	return string(data), nil
}

// Apply writes the encoded registry to the phase header.
// Nothing is written, and nothing is cleared, when the registry is empty.
func (t *Triggers) Apply(h http.Header, phase Phase) error {
	if t.Len() == 0 {
		return nil
	}
	v, err := t.Encode()
	if err != nil {
		return fmt.Errorf("%s: %w", phase, err)
	}
	h.Set(phase.Header(), v)
	return nil
}

func (t *Triggers) hasPayload() bool {
	for pair := t.events.Oldest(); pair != nil; pair = pair.Next() {
		if !pair.Value.IsNull() {
			return true
		}
	}
	return false
}
