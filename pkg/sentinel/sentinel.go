// Package sentinel holds sentinel errors for infrastructure facts. Stores
// return these (optionally wrapped) so services can translate them into
// coded domain errors without importing store packages.
package sentinel

import "errors"

var (
	// ErrNotFound: the record does not exist in the store.
	ErrNotFound = errors.New("not found")
	// ErrStale: an optimistic version check failed; the caller holds an
	// out-of-date copy and must re-fetch before retrying.
	ErrStale = errors.New("stale state")
	// ErrConflict: a uniqueness or append-only constraint was violated.
	ErrConflict = errors.New("conflict")
)
