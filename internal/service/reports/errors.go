package reports

import "errors"

var (
	// ErrInvalidPeriod is returned when from is after to.
	ErrInvalidPeriod = errors.New("reports.service: invalid report period")

	// ErrInternal wraps unexpected repository failures.
	ErrInternal = errors.New("reports.service: internal error")
)
