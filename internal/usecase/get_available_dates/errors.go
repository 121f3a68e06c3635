package get_available_dates

import "errors"

var (
	// ErrInvalidInput is returned for malformed request data.
	ErrInvalidInput = errors.New("get_available_dates: invalid input data")

	// ErrInternal is returned for unexpected failures.
	ErrInternal = errors.New("get_available_dates: internal error")
)
