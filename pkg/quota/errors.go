package quota

import "errors"

var (
	// ErrStoreUnavailable indicates the backing store could not serve the
	// operation. Callers must deny rather than allow unmetered usage.
	ErrStoreUnavailable = errors.New("quota store unavailable")

	// ErrUserRequired indicates an empty user ID.
	ErrUserRequired = errors.New("user ID is required")
)
