package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidRange indicates a date range with from after to.
	ErrInvalidRange = errors.New("invalid date range")
)
