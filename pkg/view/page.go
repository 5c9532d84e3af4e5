package view

import "github.com/dmitrymomot/hxforge/pkg/htmx"

// Page is the rendered output of a template pass, split into named blocks.
type Page struct {
	blocks map[string]string
}

// NewPage creates a page whose content region holds body.
func NewPage(body string) *Page {
	return &Page{blocks: map[string]string{htmx.ContentRegion: body}}
}

// Exists reports whether a block was rendered.
func (p *Page) Exists(name string) bool {
	if p == nil {
		return false
	}
	_, ok := p.blocks[name]
	return ok
}

// Fetch returns the markup of a block, or "" when it is absent.
func (p *Page) Fetch(name string) string {
	if p == nil {
		return ""
	}
	return p.blocks[name]
}

// Assign sets the markup of a block.
func (p *Page) Assign(name, content string) {
	if p.blocks == nil {
		p.blocks = make(map[string]string)
	}
	p.blocks[name] = content
}

// Body returns the content region.
func (p *Page) Body() string {
	return p.Fetch(htmx.ContentRegion)
}
