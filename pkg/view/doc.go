// Package view renders templates into named blocks that an HTMX composer
// can assemble into a partial response.
//
// A [Page] holds the rendered markup of the main template in the content
// region and the markup of every requested fragment under its own name.
// It satisfies htmx.View, so a composer can replace the content region with
// the planned fragments after rendering:
//
//	engine, err := view.New(templates, "templates/*.html")
//	page, err := engine.Render("contacts", data, "rows", "counter")
//	composer.Assemble(page)
//	w.Write([]byte(page.Body()))
//
// Templ components are supported through [RenderComponents].
package view
