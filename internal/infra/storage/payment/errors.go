package payment

import "errors"

var (
	// ErrPaymentNotFound is returned when no payment matches the lookup.
	ErrPaymentNotFound = errors.New("payment.repository: payment not found")

	// ErrDuplicateReference is returned when the generated payment
	// reference collides with an existing one.
	ErrDuplicateReference = errors.New("payment.repository: duplicate payment reference")

	// ErrBuildQuery is returned when the SQL query cannot be built.
	ErrBuildQuery = errors.New("payment.repository: failed to build query")

	// ErrExecQuery is returned when the SQL query fails to execute.
	ErrExecQuery = errors.New("payment.repository: failed to execute query")

	// ErrScanRow is returned when a result row cannot be scanned.
	ErrScanRow = errors.New("payment.repository: failed to scan row")
)
