package htmx

import "strings"

// ContentRegion is the view region replaced by an assembled fragment body.
const ContentRegion = "content"

// Fragments gives read access to rendered template fragments.
type Fragments interface {
	// Exists reports whether the fragment was rendered.
	Exists(name string) bool
	// Fetch returns the fragment markup.
	Fetch(name string) string
}

// View is the template-side collaborator of a Composer.
type View interface {
	Fragments
	// Assign replaces the markup of a named region.
	Assign(name, content string)
}

// Plan is the ordered list of fragments to render. Duplicates are allowed.
type Plan struct {
	names []string
}

// Set replaces the plan, or appends to it when appendMode is true.
func (p *Plan) Set(names []string, appendMode bool) {
	if !appendMode {
		p.names = nil
	}
	p.names = append(p.names, names...)
}

// Add appends a single fragment.
func (p *Plan) Add(name string) {
	p.names = append(p.names, name)
}

// Clear empties the plan.
func (p *Plan) Clear() {
	p.names = nil
}

// Names returns a copy of the plan.
func (p *Plan) Names() []string {
	out := make([]string, len(p.names))
	copy(out, p.names)
	return out
}

// Len returns the number of planned fragments.
func (p *Plan) Len() int {
	return len(p.names)
}

// Assemble concatenates the fragments listed in plan.
// Missing fragments are skipped. The first present fragment is used verbatim;
// every following one gets an out-of-band swap marker on its root element.
func Assemble(plan []string, src Fragments) string {
	var (
		b     strings.Builder
		first = true
	)
	for _, name := range plan {
		if !src.Exists(name) {
			continue
		}
		markup := src.Fetch(name)
		if first {
			b.WriteString(markup)
			first = false
			continue
		}
		b.WriteString(InjectOOB(markup, SwapInnerHTML))
	}
	return b.String()
}
