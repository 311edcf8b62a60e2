package platform

import "errors"

// Contract errors
var (
	// ErrNotImplemented is returned by every UnimplementedModule method.
	// Receiving it in production means the concrete implementation is
	// incomplete; callers should propagate it rather than recover.
	ErrNotImplemented = errors.New("not implemented")
)

// Validation errors
var (
	ErrInvalidModuleType = errors.New("invalid module type")
)
