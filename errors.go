package hwt

import "errors"

var (
	// ErrInvalidK is returned when a negative neighbor count is requested.
	ErrInvalidK = errors.New("k must not be negative")
)
