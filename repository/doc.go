// Package repository binds request-scoped repositories to the shared
// PostgreSQL pool.
//
// A repository is any type built from a db.DBTX. Its constructor is its
// Factory:
//
//	func NewDomainRepository(q db.DBTX) *DomainRepository
//
// Handle wraps a route handler so each request gets a repository bound to the
// pool held by the application state. Repositories share the pool and acquire
// a connection per query; none of them owns a connection.
//
// When the pool has been closed, for example during shutdown, Handle answers
// with a 503 problem carrying Retry-After instead of calling the handler.
package repository
