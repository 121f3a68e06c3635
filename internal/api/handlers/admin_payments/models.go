package admin_payments

import (
	"time"

	"github.com/jnails/salon-booking-service/internal/domain"
)

// CreateRequest is the HTTP request body for recording a payment.
type CreateRequest struct {
	BookingID int64   `json:"bookingId"`
	Amount    float64 `json:"amount"`
	Method    string  `json:"method"`
	Provider  *string `json:"provider,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

// UpdateStatusRequest asks for a ledger transition.
type UpdateStatusRequest struct {
	Action        string  `json:"action"` // complete, fail or refund
	TransactionID *string `json:"transactionId,omitempty"`
	Reason        *string `json:"reason,omitempty"`
}

// PaymentRow is one payment in the admin listing.
type PaymentRow struct {
	ID               int64   `json:"id"`
	BookingID        int64   `json:"bookingId"`
	PaymentReference string  `json:"paymentReference"`
	Amount           float64 `json:"amount"`
	Method           string  `json:"method"`
	Status           string  `json:"status"`
	TransactionID    *string `json:"transactionId,omitempty"`
	Provider         *string `json:"provider,omitempty"`
	ProcessedAt      *string `json:"processedAt,omitempty"`
	FailedAt         *string `json:"failedAt,omitempty"`
	CreatedAt        string  `json:"createdAt"`
}

// PaymentDetail is the single-payment view with refund eligibility.
type PaymentDetail struct {
	PaymentRow
	Notes         *string `json:"notes,omitempty"`
	CanBeRefunded bool    `json:"canBeRefunded"`
}

// ListResponse is the paginated admin listing.
type ListResponse struct {
	Payments []PaymentRow `json:"payments"`
	Total    int64        `json:"total"`
	Limit    uint64       `json:"limit"`
	Offset   uint64       `json:"offset"`
}

func toRow(p *domain.Payment) PaymentRow {
	return PaymentRow{
		ID:               p.ID,
		BookingID:        p.BookingID,
		PaymentReference: p.PaymentReference,
		Amount:           p.Amount,
		Method:           string(p.Method),
		Status:           string(p.Status),
		TransactionID:    p.TransactionID,
		Provider:         p.Provider,
		ProcessedAt:      formatTime(p.ProcessedAt),
		FailedAt:         formatTime(p.FailedAt),
		CreatedAt:        p.CreatedAt.Format(time.RFC3339),
	}
}

// FromDomainPayment converts one payment into the detail view.
func FromDomainPayment(p *domain.Payment, now time.Time) *PaymentDetail {
	return &PaymentDetail{
		PaymentRow:    toRow(p),
		Notes:         p.Notes,
		CanBeRefunded: p.CanBeRefunded(now),
	}
}

// FromDomainPayments converts payments into the admin listing.
func FromDomainPayments(payments []*domain.Payment, total int64, filter domain.PaymentsFilter) *ListResponse {
	rows := make([]PaymentRow, 0, len(payments))
	for _, p := range payments {
		rows = append(rows, toRow(p))
	}

	return &ListResponse{
		Payments: rows,
		Total:    total,
		Limit:    filter.Limit,
		Offset:   filter.Offset,
	}
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
