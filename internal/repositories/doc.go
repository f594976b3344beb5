// Package repositories holds the PostgreSQL queries of the metadata service.
//
// Repositories are built per request from a db.DBTX by their New functions,
// which double as repository.Factory values. Lookups that match nothing
// return ErrNotFound; any other error comes straight from pgx and is meant to
// be wrapped with problem.Database by the caller.
package repositories
