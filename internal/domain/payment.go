package domain

import (
	"encoding/json"
	"time"
)

// PaymentMethod is how the client pays.
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "cash"
	MethodMpesa        PaymentMethod = "mpesa"
	MethodCard         PaymentMethod = "card"
	MethodBankTransfer PaymentMethod = "bank_transfer"
)

// PaymentStatus is the lifecycle state of one payment attempt.
type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "pending"
	PaymentProcessing PaymentStatus = "processing"
	PaymentCompleted  PaymentStatus = "completed"
	PaymentFailed     PaymentStatus = "failed"
	PaymentCancelled  PaymentStatus = "cancelled"
	PaymentRefunded   PaymentStatus = "refunded"
)

// Payment is one payment attempt against a booking. A booking may carry
// several attempts; the most recently created row determines the booking's
// effective payment status.
type Payment struct {
	ID               int64
	BookingID        int64
	PaymentReference string
	Amount           float64
	Method           PaymentMethod
	Status           PaymentStatus
	TransactionID    *string
	Provider         *string
	ProviderResponse json.RawMessage
	Notes            *string
	ProcessedAt      *time.Time
	FailedAt         *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanBeRefunded implements the 30-day refund policy: only completed
// payments processed within the window qualify.
func (p *Payment) CanBeRefunded(now time.Time) bool {
	if p.Status != PaymentCompleted || p.ProcessedAt == nil {
		return false
	}
	return now.Sub(*p.ProcessedAt) <= RefundWindowDays*24*time.Hour
}

// IsCompleted returns true if the payment went through.
func (p *Payment) IsCompleted() bool {
	return p.Status == PaymentCompleted
}

// ValidPaymentMethod reports whether the string is a known method.
func ValidPaymentMethod(s string) bool {
	switch PaymentMethod(s) {
	case MethodCash, MethodMpesa, MethodCard, MethodBankTransfer:
		return true
	}
	return false
}

// ValidPaymentStatus reports whether the string is a known payment status.
func ValidPaymentStatus(s string) bool {
	switch PaymentStatus(s) {
	case PaymentPending, PaymentProcessing, PaymentCompleted, PaymentFailed, PaymentCancelled, PaymentRefunded:
		return true
	}
	return false
}

// PaymentsFilter narrows admin payment listings.
type PaymentsFilter struct {
	Search *string // matches payment reference or transaction id
	Status *PaymentStatus
	Method *PaymentMethod
	Date   *time.Time // creation date
	Limit  uint64
	Offset uint64
}
