// Package handlers serves the domain and block lookup endpoints.
//
//	GET|HEAD /domains/{domain_name}
//	GET|HEAD /domains/{domain_name}/{block_name}
//	GET|HEAD /by-id/domains/{id}
//	GET|HEAD /by-id/blocks/{id}
//
// Every route runs through repository.Handle, so it receives a repository
// bound to the pool held by State. Misses answer with a 404 problem; database
// failures are wrapped with problem.Database and rendered by the App.
package handlers
