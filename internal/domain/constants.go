package domain

import "time"

// Default business configuration. Tunable via the [booking] section of
// config.toml; these are the values the salon actually runs with.
const (
	DefaultBusinessStartHour   = 9
	DefaultBusinessEndHour     = 18
	DefaultSlotDurationMinutes = 30
	DefaultMinNoticeHours      = 2
	DefaultMaxAdvanceMonths    = 3
	DefaultClosedWeekday       = int(time.Sunday)

	// How many calendar dates the date picker offers by default.
	DefaultAvailableDatesCount = 14

	// Refund policy window for completed payments.
	RefundWindowDays = 30

	// Cancellation requires at least this much notice before the appointment.
	CancellationNoticeHours = 24
)

// Client segmentation thresholds for the admin reports.
const (
	VIPSpendThreshold     = 20000.0 // KSh, lifetime completed spend
	InactiveClientMonths  = 3
	MaxServicesPerBooking = 2
	MaxNotesLength        = 500
	MaxCancelReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Reference prefixes, kept short so staff can read them over the phone.
const (
	BookingReferencePrefix = "JN"
	BookingReferenceLength = 6
	PaymentReferencePrefix = "PAY"
	PaymentReferenceLength = 8
)
