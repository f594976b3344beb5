// Package models defines the entities served by the metadata service.
//
// A Domain is a top-level namespace. A Block is nested under a domain or under
// another block; Parent records which, as a tagged reference that serialises
// as {"type":"domain","domain_uuid":...} or {"type":"block","block_uuid":...}.
package models
