// Package sentinel holds infrastructure facts shared across layers. Stores
// and adapters return these, optionally wrapped, and services translate them
// into domain errors.
//
// They describe the state of a resource, not a validation failure. For bad
// input use pkg/domain-errors directly.
package sentinel

import "errors"

var (
	// ErrNotFound means the resource does not exist in the store.
	ErrNotFound = errors.New("not found")
	// ErrUnavailable means the resource is temporarily unreachable and the
	// call may succeed if retried.
	ErrUnavailable = errors.New("unavailable")
)
