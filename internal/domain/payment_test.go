package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jnails/salon-booking-service/pkg/ptr"
)

func TestPayment_CanBeRefunded(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		status      PaymentStatus
		processedAt *time.Time
		expected    bool
	}{
		{
			name:        "completed yesterday",
			status:      PaymentCompleted,
			processedAt: ptr.Ptr(now.AddDate(0, 0, -1)),
			expected:    true,
		},
		{
			name:        "completed exactly 30 days ago",
			status:      PaymentCompleted,
			processedAt: ptr.Ptr(now.AddDate(0, 0, -30)),
			expected:    true,
		},
		{
			name:        "completed 31 days ago",
			status:      PaymentCompleted,
			processedAt: ptr.Ptr(now.AddDate(0, 0, -31)),
			expected:    false,
		},
		{
			name:        "pending payment",
			status:      PaymentPending,
			processedAt: nil,
			expected:    false,
		},
		{
			name:        "completed without processed timestamp",
			status:      PaymentCompleted,
			processedAt: nil,
			expected:    false,
		},
		{
			name:        "already refunded",
			status:      PaymentRefunded,
			processedAt: ptr.Ptr(now.AddDate(0, 0, -1)),
			expected:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Payment{Status: tt.status, ProcessedAt: tt.processedAt}
			assert.Equal(t, tt.expected, p.CanBeRefunded(now))
		})
	}
}

func TestValidPaymentMethod(t *testing.T) {
	assert.True(t, ValidPaymentMethod("cash"))
	assert.True(t, ValidPaymentMethod("mpesa"))
	assert.True(t, ValidPaymentMethod("card"))
	assert.True(t, ValidPaymentMethod("bank_transfer"))
	assert.False(t, ValidPaymentMethod("cheque"))
}

func TestValidPaymentStatus(t *testing.T) {
	assert.True(t, ValidPaymentStatus("processing"))
	assert.True(t, ValidPaymentStatus("refunded"))
	assert.False(t, ValidPaymentStatus("partial"))
}
