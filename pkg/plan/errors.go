package plan

import "errors"

var (
	// ErrUnknownPlan indicates a plan name outside the catalog.
	ErrUnknownPlan = errors.New("unknown plan")

	// ErrInvalidCatalog indicates a catalog file that parsed but failed validation.
	ErrInvalidCatalog = errors.New("invalid plan catalog")

	// ErrCatalogNotFound indicates the catalog file does not exist.
	ErrCatalogNotFound = errors.New("plan catalog file not found")
)
