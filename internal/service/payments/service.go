package payments

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/jnails/salon-booking-service/internal/domain"
	bookingRepo "github.com/jnails/salon-booking-service/internal/infra/storage/booking"
	paymentRepo "github.com/jnails/salon-booking-service/internal/infra/storage/payment"
)

// How many reference collisions to tolerate before giving up. With an
// 8-digit space collisions are effectively impossible in practice.
const maxReferenceAttempts = 5

// Service owns the payment ledger. Every ledger transition writes the
// booking's payment status cache in the same transaction, so the two
// views never drift.
type Service struct {
	paymentRepo PaymentRepository
	bookingRepo BookingRepository
	txManager   TransactionManager
	timeProv    TimeProvider
	logger      Logger
}

// NewService creates the payment ledger service.
func NewService(
	paymentRepo PaymentRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	timeProv TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		paymentRepo: paymentRepo,
		bookingRepo: bookingRepo,
		txManager:   txManager,
		timeProv:    timeProv,
		logger:      logger,
	}
}

// CreateRequest is the input for recording a new payment attempt.
type CreateRequest struct {
	BookingID int64
	Amount    float64
	Method    domain.PaymentMethod
	Provider  *string
	Notes     *string
}

// CreateForBooking records a new payment attempt. Cash payments covering
// the full booking amount complete immediately, front desk takes the money
// and the ledger reflects it in one step. Everything else starts pending.
func (s *Service) CreateForBooking(ctx context.Context, req CreateRequest) (*domain.Payment, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if !domain.ValidPaymentMethod(string(req.Method)) {
		return nil, ErrInvalidMethod
	}

	booking, err := s.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("CreateForBooking: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("CreateForBooking: repository error for booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: CreateForBooking - repository error: %v", ErrInternal, err)
	}

	var payment *domain.Payment
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		reference, err := s.generateReference(ctx)
		if err != nil {
			return err
		}

		payment = &domain.Payment{
			BookingID:        req.BookingID,
			PaymentReference: reference,
			Amount:           req.Amount,
			Method:           req.Method,
			Status:           domain.PaymentPending,
			Provider:         req.Provider,
			Notes:            req.Notes,
		}

		payment, err = s.paymentRepo.Create(ctx, payment)
		if err != nil {
			return fmt.Errorf("%w: CreateForBooking - create payment: %v", ErrInternal, err)
		}

		if req.Method == domain.MethodCash && req.Amount >= booking.TotalAmount {
			if err := s.completeLocked(ctx, payment, booking, nil); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("CreateForBooking: transaction failed for booking id=%d: %v", req.BookingID, err)
		return nil, err
	}

	s.logger.Info("CreateForBooking: payment ref=%s recorded for booking id=%d, status=%s",
		payment.PaymentReference, req.BookingID, payment.Status)
	return payment, nil
}

// MarkAsCompleted settles a pending or processing payment, optionally
// recording the provider transaction id.
func (s *Service) MarkAsCompleted(ctx context.Context, id int64, transactionID *string) error {
	payment, booking, err := s.loadPair(ctx, id, "MarkAsCompleted")
	if err != nil {
		return err
	}

	if payment.Status != domain.PaymentPending && payment.Status != domain.PaymentProcessing {
		s.logger.Warn("MarkAsCompleted: payment id=%d status=%s cannot complete", id, payment.Status)
		return ErrInvalidTransition
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		return s.completeLocked(ctx, payment, booking, transactionID)
	})
	if err != nil {
		s.logger.Error("MarkAsCompleted: transaction failed for payment id=%d: %v", id, err)
		return err
	}

	s.logger.Info("MarkAsCompleted: payment id=%d completed", id)
	return nil
}

// completeLocked settles the payment and propagates the booking cache.
// Must run inside a transaction.
func (s *Service) completeLocked(ctx context.Context, payment *domain.Payment, booking *domain.Booking, transactionID *string) error {
	if err := s.paymentRepo.MarkCompleted(ctx, payment.ID, transactionID); err != nil {
		return fmt.Errorf("%w: complete payment: %v", ErrInternal, err)
	}

	state := domain.PaymentStateCompleted
	if payment.Amount < booking.TotalAmount {
		state = domain.PaymentStatePartial
	}
	if err := s.bookingRepo.UpdatePaymentStatus(ctx, booking.ID, state); err != nil {
		return fmt.Errorf("%w: propagate payment status: %v", ErrInternal, err)
	}

	payment.Status = domain.PaymentCompleted
	return nil
}

// MarkAsFailed records a failed attempt and pushes the failure into the
// booking's payment status cache.
func (s *Service) MarkAsFailed(ctx context.Context, id int64, reason *string) error {
	payment, booking, err := s.loadPair(ctx, id, "MarkAsFailed")
	if err != nil {
		return err
	}

	if payment.Status != domain.PaymentPending && payment.Status != domain.PaymentProcessing {
		s.logger.Warn("MarkAsFailed: payment id=%d status=%s cannot fail", id, payment.Status)
		return ErrInvalidTransition
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.paymentRepo.MarkFailed(ctx, id, reason); err != nil {
			return fmt.Errorf("%w: MarkAsFailed - fail payment: %v", ErrInternal, err)
		}
		if err := s.bookingRepo.UpdatePaymentStatus(ctx, booking.ID, domain.PaymentStateFailed); err != nil {
			return fmt.Errorf("%w: MarkAsFailed - propagate payment status: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("MarkAsFailed: transaction failed for payment id=%d: %v", id, err)
		return err
	}

	s.logger.Info("MarkAsFailed: payment id=%d failed", id)
	return nil
}

// MarkAsRefunded refunds a completed payment within the 30-day window.
func (s *Service) MarkAsRefunded(ctx context.Context, id int64) error {
	payment, booking, err := s.loadPair(ctx, id, "MarkAsRefunded")
	if err != nil {
		return err
	}

	if !payment.CanBeRefunded(s.timeProv.Now()) {
		s.logger.Warn("MarkAsRefunded: payment id=%d not refundable, status=%s processed_at=%v",
			id, payment.Status, payment.ProcessedAt)
		return ErrNotRefundable
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.paymentRepo.MarkRefunded(ctx, id); err != nil {
			return fmt.Errorf("%w: MarkAsRefunded - refund payment: %v", ErrInternal, err)
		}
		if err := s.bookingRepo.UpdatePaymentStatus(ctx, booking.ID, domain.PaymentStateRefunded); err != nil {
			return fmt.Errorf("%w: MarkAsRefunded - propagate payment status: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("MarkAsRefunded: transaction failed for payment id=%d: %v", id, err)
		return err
	}

	s.logger.Info("MarkAsRefunded: payment id=%d refunded", id)
	return nil
}

func (s *Service) loadPair(ctx context.Context, id int64, method string) (*domain.Payment, *domain.Booking, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			s.logger.Warn("%s: payment id=%d not found", method, id)
			return nil, nil, ErrPaymentNotFound
		}
		s.logger.Error("%s: repository error for payment id=%d: %v", method, id, err)
		return nil, nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}

	booking, err := s.bookingRepo.GetByID(ctx, payment.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d behind payment id=%d not found", method, payment.BookingID, id)
			return nil, nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", method, payment.BookingID, err)
		return nil, nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}

	return payment, booking, nil
}

// GetByID fetches one payment.
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			return nil, ErrPaymentNotFound
		}
		s.logger.Error("GetByID: repository error for payment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	return payment, nil
}

// List returns payments matching the admin filter with the total count.
func (s *Service) List(ctx context.Context, filter domain.PaymentsFilter) ([]*domain.Payment, int64, error) {
	payments, total, err := s.paymentRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, 0, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return payments, total, nil
}

// generateReference draws PAY-prefixed numeric references until one is
// unused.
func (s *Service) generateReference(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxReferenceAttempts; attempt++ {
		reference := randomReference(domain.PaymentReferencePrefix, domain.PaymentReferenceLength)

		taken, err := s.paymentRepo.ExistsByReference(ctx, reference)
		if err != nil {
			return "", fmt.Errorf("%w: generateReference - existence check: %v", ErrInternal, err)
		}
		if !taken {
			return reference, nil
		}
		s.logger.Warn("generateReference: collision on %s, retrying", reference)
	}
	return "", ErrReferenceExhausted
}

func randomReference(prefix string, digits int) string {
	var b strings.Builder
	b.WriteString(prefix)
	for i := 0; i < digits; i++ {
		b.WriteByte(byte('0' + rand.IntN(10)))
	}
	return b.String()
}
