// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import "errors"

var (
	// ErrInvalidField reports a field-search request naming a field
	// outside the allow-list. A client error, not retryable.
	ErrInvalidField = errors.New("invalid search field")

	// ErrBusy reports that the index lock could not be acquired within
	// the configured busy timeout, typically because a rebuild holds its
	// exclusive section. Callers may retry.
	ErrBusy = errors.New("index busy")

	// ErrUnavailable reports that the index store could not be reached
	// or initialized. Searches and aggregations degrade to an explicit
	// unavailable result instead of blocking.
	ErrUnavailable = errors.New("index unavailable")
)
