package htmx

import "errors"

// Sentinel errors for response composition.
var (
	// ErrEncodeTriggers is returned when a structured trigger payload cannot be encoded as JSON.
	ErrEncodeTriggers = errors.New("htmx: failed to encode triggers")

	// ErrEncodeLocation is returned when location options cannot be encoded as JSON.
	ErrEncodeLocation = errors.New("htmx: failed to encode location")
)
