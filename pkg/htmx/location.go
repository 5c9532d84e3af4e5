package htmx

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// LocationOptions represents the configuration for HX-Location header.
type LocationOptions struct {
	Path    string            `json:"path"`
	Source  string            `json:"source,omitempty"`
	Event   string            `json:"event,omitempty"`
	Handler string            `json:"handler,omitempty"`
	Target  string            `json:"target,omitempty"`
	Swap    string            `json:"swap,omitempty"`
	Values  map[string]string `json:"values,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
	Select  string            `json:"select,omitempty"`
}

// encode returns the JSON form of the HX-Location value.
func (o LocationOptions) encode() (string, error) {
	data, err := json.Marshal(o)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncodeLocation, err)
	}
	return string(data), nil
}

// Location performs a client-side navigation with URL update and history entry.
func Location(w http.ResponseWriter, r *http.Request, path string) {
	if IsHTMX(r) {
		w.Header().Set(HeaderHXLocation, path)
		w.WriteHeader(http.StatusOK)
		return
	}

	http.Redirect(w, r, path, http.StatusFound)
}

// LocationTarget performs a client-side navigation that updates a specific element.
func LocationTarget(w http.ResponseWriter, r *http.Request, path, target string) {
	LocationWithOptions(w, r, LocationOptions{
		Path:   path,
		Target: target,
	})
}

// LocationWithOptions performs a client-side navigation with full HTMX location options.
func LocationWithOptions(w http.ResponseWriter, r *http.Request, opts LocationOptions) {
	if !IsHTMX(r) {
		http.Redirect(w, r, opts.Path, http.StatusFound)
		return
	}

	v, err := opts.encode()
	if err != nil {
		// Fall back to the bare path; the client still navigates.
		v = opts.Path
	}
	w.Header().Set(HeaderHXLocation, v)
	w.WriteHeader(http.StatusOK)
}
