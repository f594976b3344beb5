// Package problem renders failures as RFC 9457 problem details.
//
// Any type implementing [Problem] can be returned from a handler. The optional
// [StatusProblem], [InstanceProblem] and [HeaderProblem] refinements add the
// status, instance and extra headers. [PartsOf] collects them into [Parts].
//
// Handlers return either a Problem or a database error. [Database] wraps the
// latter; [From] normalises anything else:
//
//	domain, err := repo.FindByName(ctx, name)
//	if errors.Is(err, repositories.ErrNotFound) {
//		return DomainNotFoundError{Name: name}
//	}
//	if err != nil {
//		return problem.Database(err)
//	}
//
// [Render] writes the envelope with Content-Type application/problem+json and
// Cache-Control no-store. Database errors become 504 with Retry-After when the
// pool is closed or timed out, and 500 otherwise.
package problem
