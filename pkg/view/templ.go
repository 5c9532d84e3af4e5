package view

import (
	"bytes"
	"context"
	"fmt"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/hxforge/pkg/htmx"
)

// RenderComponents renders main into the content region and every fragment
// component into a block named by its key. Nil components are skipped.
func RenderComponents(ctx context.Context, main templ.Component, fragments map[string]templ.Component) (*Page, error) {
	page := NewPage("")

	var buf bytes.Buffer
	if main != nil {
		if err := main.Render(ctx, &buf); err != nil {
			return nil, fmt.Errorf("%w: content: %w", ErrRender, err)
		}
		page.Assign(htmx.ContentRegion, buf.String())
	}

	for name, c := range fragments {
		if c == nil {
			continue
		}
		buf.Reset()
		if err := c.Render(ctx, &buf); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrRender, name, err)
		}
		page.Assign(name, buf.String())
	}
	return page, nil
}
