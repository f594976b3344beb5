package internal

// Handler declares routes on a router.
//
// Example:
//
//	type Domains struct {
//	    state *handlers.State
//	}
//
//	func (h *Domains) Routes(r metadata.Router) {
//	    r.GET("/domains/{domain_name}", h.show)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc is the signature for route handlers.
// It receives a Context and returns an error.
// Returning a non-nil error hands it to the App error handler.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc to add cross-cutting concerns.
// Middleware can inspect/modify the request, short-circuit processing,
// or wrap the response.
//
// Example:
//
//	func ReadOnly(next metadata.HandlerFunc) metadata.HandlerFunc {
//	    return func(c metadata.Context) error {
//	        if c.Request().Method != http.MethodGet {
//	            return c.Error(http.StatusMethodNotAllowed, "read-only service")
//	        }
//	        return next(c)
//	    }
//	}
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler handles errors returned from handlers.
type ErrorHandler func(Context, error) error
