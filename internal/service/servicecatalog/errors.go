package servicecatalog

import "errors"

var (
	// ErrServiceNotFound is returned when no catalog service matches the lookup.
	ErrServiceNotFound = errors.New("servicecatalog.service: service not found")

	// ErrServiceReferenced is returned when deleting a service that
	// booking history still references. Deactivate instead.
	ErrServiceReferenced = errors.New("servicecatalog.service: service referenced by bookings")

	// ErrInvalidInput is returned for malformed service data.
	ErrInvalidInput = errors.New("servicecatalog.service: invalid input")

	// ErrInternal wraps unexpected repository failures.
	ErrInternal = errors.New("servicecatalog.service: internal error")
)
