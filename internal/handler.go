package internal

// Handler declares routes on a router.
//
// Example:
//
//	type ContactsHandler struct {
//	    repo *contacts.Repo
//	}
//
//	func (h *ContactsHandler) Routes(r hxforge.Router) {
//	    r.GET("/contacts", h.list)
//	    r.POST("/contacts", h.create)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc is the signature for route handlers.
// Returning a non-nil error hands it to the app's error handler.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc to add cross-cutting concerns.
//
// Example:
//
//	func Toast(next hxforge.HandlerFunc) hxforge.HandlerFunc {
//	    return func(c hxforge.Context) error {
//	        if c.Request().Method != http.MethodGet {
//	            c.HTMX().TriggerAfterSettle("toast", "saved")
//	        }
//	        return next(c)
//	    }
//	}
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler handles errors returned from handlers.
type ErrorHandler func(Context, error) error
