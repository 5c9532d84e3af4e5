// Package hxforge is a small HTTP framework for server-rendered applications
// driven by HTMX.
//
// Every request is classified once from its HX-* headers (see [Facts]) and
// gets a [Composer] that collects what the response should tell the client:
// events to trigger, the fragments to render instead of a full page, and
// navigation directives such as HX-Location or HX-Redirect. Handlers and
// middleware share the same composer, so a middleware can queue a toast event
// that ends up in the handler's response.
//
// # Quick Start
//
//	engine, err := hxforge.NewViews(templates, "templates/*.html")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	app := hxforge.New(
//	    hxforge.WithLogger("web", middlewares.RequestIDExtractor(), middlewares.HTMXExtractor()),
//	    hxforge.WithMiddleware(middlewares.RequestID(), middlewares.HTMX(), middlewares.Recover()),
//	    hxforge.WithViews(engine),
//	    hxforge.WithHandlers(handlers.NewContacts(repo)),
//	)
//
//	if err := app.Run(":8080"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Handlers
//
// Handlers implement the [Handler] interface to declare routes:
//
//	func (h *Contacts) Routes(r hxforge.Router) {
//	    r.GET("/contacts", h.list)
//	    r.POST("/contacts", h.create)
//	}
//
//	func (h *Contacts) create(c hxforge.Context) error {
//	    contact, err := h.repo.Create(c, hxforge.Form[string](c, "name"))
//	    if err != nil {
//	        return err
//	    }
//	    c.HTMX().
//	        Trigger("contacts-changed", nil).
//	        TriggerAfterSwap("flash", map[string]string{"text": "Saved"}).
//	        SetFragments([]string{"rows", "counter"}, false)
//	    return c.View(http.StatusOK, "contacts", h.page(c, contact))
//	}
//
// # Response lifecycle
//
// Triggers are written to their headers right before the first byte of an
// HTMX response. Template views render every planned fragment and the
// assembled blocks replace the page body. Redirect and Refresh force a 200
// status, StopPolling forces 286 and replaces the body. A handler that returns
// without writing still sends its queued headers.
package hxforge
