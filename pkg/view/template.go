package view

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"

	"github.com/dmitrymomot/hxforge/pkg/htmx"
)

// Engine renders html/template sets into pages.
type Engine struct {
	tmpl *template.Template
}

// New parses every file in fsys matching patterns into one template set.
// Fragments are plain {{define}} blocks inside those files.
func New(fsys fs.FS, patterns ...string) (*Engine, error) {
	return NewWithFuncs(fsys, nil, patterns...)
}

// NewWithFuncs is New with template functions registered before parsing.
func NewWithFuncs(fsys fs.FS, funcs template.FuncMap, patterns ...string) (*Engine, error) {
	if len(patterns) == 0 {
		return nil, ErrNoTemplates
	}

	t := template.New("")
	if funcs != nil {
		t = t.Funcs(funcs)
	}

	t, err := t.ParseFS(fsys, patterns...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoTemplates, err)
	}
	return &Engine{tmpl: t}, nil
}

// Has reports whether a template or fragment is defined.
func (e *Engine) Has(name string) bool {
	return e.tmpl.Lookup(name) != nil
}

// Render executes name into the content region and each defined fragment
// into a block of the same name. Undefined fragments are left out.
func (e *Engine) Render(name string, data any, fragments ...string) (*Page, error) {
	if !e.Has(name) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	body, err := e.execute(name, data)
	if err != nil {
		return nil, err
	}
	page := NewPage(body)

	for _, frag := range fragments {
		if frag == htmx.ContentRegion || page.Exists(frag) || !e.Has(frag) {
			continue
		}
		markup, err := e.execute(frag, data)
		if err != nil {
			return nil, err
		}
		page.Assign(frag, markup)
	}
	return page, nil
}

func (e *Engine) execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := e.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrRender, name, err)
	}
	return buf.String(), nil
}
