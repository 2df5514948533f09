package entity

import "errors"

// Domain error kinds. Services and handlers match on these with errors.Is
// and never reinterpret them on the way up.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("concurrent update conflict")
)
