package timeslot

import "errors"

var (
	// ErrSlotNotFound is returned when no slot matches the lookup.
	ErrSlotNotFound = errors.New("timeslot.repository: time slot not found")

	// ErrSlotNotAvailable is returned when a reservation loses the race:
	// the conditional update matched no available row.
	ErrSlotNotAvailable = errors.New("timeslot.repository: time slot not available")

	// ErrDuplicateSlot is returned when a slot already exists for the
	// same (date, start_time, end_time) triple.
	ErrDuplicateSlot = errors.New("timeslot.repository: duplicate time slot")

	// ErrBuildQuery is returned when the SQL query cannot be built.
	ErrBuildQuery = errors.New("timeslot.repository: failed to build query")

	// ErrExecQuery is returned when the SQL query fails to execute.
	ErrExecQuery = errors.New("timeslot.repository: failed to execute query")

	// ErrScanRow is returned when a result row cannot be scanned.
	ErrScanRow = errors.New("timeslot.repository: failed to scan row")
)
