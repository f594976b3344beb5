// Package internal holds the HTTP core of the metadata service: App, Context,
// Router and the error rendering pipeline.
//
// The root metadata package re-exports the public surface; import that
// instead.
//
// # Core Types
//
//   - App: routing, middleware, health endpoints and graceful shutdown
//   - Context: request and response access; it is also a context.Context
//   - Router: the interface handlers use to declare routes
//   - Handler: a type that declares routes on a Router
//   - HandlerFunc: a route handler returning an error
//   - Middleware: wraps a HandlerFunc
//   - ErrorHandler: optional hook run before the default error rendering
//
// # Context as context.Context
//
// Deadline, Done, Err and Value delegate to the request context, so a
// Context can be handed straight to a query:
//
//	func (h *Domains) show(c metadata.Context, repo *repositories.DomainRepository) error {
//	    domain, err := repo.FindByName(c, c.Param("domain_name"))
//	    ...
//	}
//
// SetContext swaps the request context, which is how the timeout middleware
// gives handlers a deadline.
//
// # Errors
//
// A handler error never leaks to the client as text. The App renders it as
// application/problem+json: values implementing problem.Problem keep their
// type, title and detail, database errors are classified, and anything else
// becomes an opaque 500. HTTPError is the lightweight problem used for
// routing failures such as 404 and 405.
//
// # Response writer
//
// ResponseWriter records status and size for logging and metrics. Takeover
// lets a middleware claim the response while the handler is still running;
// later handler writes fail with http.ErrHandlerTimeout.
package internal
