package types

import "errors"

// Error taxonomy shared by the store, the lifecycle controller and the routes.
// Wrapped errors keep these as their root so callers branch with errors.Is.
var (
	ErrNotFound = errors.New("note not found")
	ErrStorage  = errors.New("storage failure")
	ErrConflict = errors.New("note id conflict")
)
