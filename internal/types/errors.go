package types

import "errors"

// Error kinds shared by the store, image storage and service layers.
// Callers classify failures with errors.Is.
var (
	ErrNotFound   = errors.New("not found")
	ErrStorage    = errors.New("storage error")
	ErrValidation = errors.New("validation error")
)
