package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/jnails/salon-booking-service/internal/domain"
	bookingRepo "github.com/jnails/salon-booking-service/internal/infra/storage/booking"
	paymentRepo "github.com/jnails/salon-booking-service/internal/infra/storage/payment"
)

// Service manages the booking lifecycle after creation: lookups, the admin
// status machine, cancellation and deletion. Slot custody follows the
// status: any move into a terminal state releases the slot.
type Service struct {
	bookingRepo BookingRepository
	paymentRepo PaymentRepository
	slots       SlotReleaser
	txManager   TransactionManager
	timeProv    TimeProvider
	logger      Logger
}

// NewService creates the booking lifecycle service.
func NewService(
	bookingRepo BookingRepository,
	paymentRepo PaymentRepository,
	slots SlotReleaser,
	txManager TransactionManager,
	timeProv TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		paymentRepo: paymentRepo,
		slots:       slots,
		txManager:   txManager,
		timeProv:    timeProv,
		logger:      logger,
	}
}

// GetByID fetches a booking with its service snapshots.
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return s.withServices(ctx, booking)
}

// GetByReference fetches a booking by its public reference, the lookup key
// clients get in their confirmation.
func (s *Service) GetByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByReference: booking ref=%s not found", reference)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByReference: repository error for ref=%s: %v", reference, err)
		return nil, fmt.Errorf("%w: GetByReference - repository error: %v", ErrInternal, err)
	}

	return s.withServices(ctx, booking)
}

func (s *Service) withServices(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	services, err := s.bookingRepo.GetServices(ctx, booking.ID)
	if err != nil {
		s.logger.Error("withServices: failed to load services for booking id=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: withServices - load services: %v", ErrInternal, err)
	}
	booking.Services = services
	return booking, nil
}

// List returns bookings matching the admin filter with the total count.
func (s *Service) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, int64, error) {
	bookings, total, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, 0, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d of %d bookings", len(bookings), total)
	return bookings, total, nil
}

// Cancel cancels a booking on behalf of the client. The booking must still
// be pending or confirmed and start at least 24 hours from now; the slot is
// released in the same transaction.
func (s *Service) Cancel(ctx context.Context, reference string, reason *string) error {
	booking, err := s.bookingRepo.GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking ref=%s not found", reference)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for ref=%s: %v", reference, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !booking.CanBeCancelled(s.timeProv.Now()) {
		s.logger.Warn("Cancel: booking ref=%s cannot be cancelled, status=%s date=%s %s",
			reference, booking.Status, booking.AppointmentDate.Format(domain.DateFormat), booking.StartTime)
		return ErrCannotCancel
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.bookingRepo.Cancel(ctx, booking.ID, reason); err != nil {
			return fmt.Errorf("%w: Cancel - cancel booking: %v", ErrInternal, err)
		}
		if err := s.slots.ReleaseTimeSlot(ctx, booking.ID); err != nil {
			return fmt.Errorf("%w: Cancel - release slot: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Cancel: transaction failed for ref=%s: %v", reference, err)
		return err
	}

	s.logger.Info("Cancel: booking ref=%s cancelled", reference)
	return nil
}

// UpdateStatus moves a booking through the admin state machine. Completing
// a booking requires its latest payment to be completed. Terminal moves
// (completed, cancelled, no_show) release the slot in the same transaction.
func (s *Service) UpdateStatus(ctx context.Context, id int64, next domain.BookingStatus) error {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found", id)
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	if !booking.CanTransitionTo(next) {
		s.logger.Warn("UpdateStatus: booking id=%d %s -> %s not allowed", id, booking.Status, next)
		return ErrInvalidTransition
	}

	if next == domain.StatusCompleted {
		if err := s.checkPaymentCompleted(ctx, booking); err != nil {
			return err
		}
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.bookingRepo.UpdateStatus(ctx, id, next); err != nil {
			return fmt.Errorf("%w: UpdateStatus - update booking: %v", ErrInternal, err)
		}
		if next == domain.StatusCompleted || next == domain.StatusCancelled || next == domain.StatusNoShow {
			if err := s.slots.ReleaseTimeSlot(ctx, id); err != nil {
				return fmt.Errorf("%w: UpdateStatus - release slot: %v", ErrInternal, err)
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("UpdateStatus: transaction failed for booking id=%d: %v", id, err)
		return err
	}

	s.logger.Info("UpdateStatus: booking id=%d moved %s -> %s", id, booking.Status, next)
	return nil
}

// checkPaymentCompleted decides off the latest ledger entry; a booking with
// no ledger entries falls back to its cached payment status.
func (s *Service) checkPaymentCompleted(ctx context.Context, booking *domain.Booking) error {
	payment, err := s.paymentRepo.GetLatestByBookingID(ctx, booking.ID)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			if booking.PaymentStatus == domain.PaymentStateCompleted {
				return nil
			}
			s.logger.Warn("checkPaymentCompleted: booking id=%d has no completed payment", booking.ID)
			return ErrPaymentIncomplete
		}
		s.logger.Error("checkPaymentCompleted: repository error for booking id=%d: %v", booking.ID, err)
		return fmt.Errorf("%w: checkPaymentCompleted - repository error: %v", ErrInternal, err)
	}

	if !payment.IsCompleted() {
		s.logger.Warn("checkPaymentCompleted: booking id=%d latest payment status=%s", booking.ID, payment.Status)
		return ErrPaymentIncomplete
	}
	return nil
}

// Delete removes a booking entirely. Only non-active bookings (cancelled or
// no_show) or completed ones may be deleted; the slot is released first in
// case a stale reservation is still attached.
func (s *Service) Delete(ctx context.Context, id int64) error {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Delete: booking id=%d not found", id)
			return ErrBookingNotFound
		}
		s.logger.Error("Delete: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	if booking.Status == domain.StatusPending || booking.Status == domain.StatusConfirmed ||
		booking.Status == domain.StatusInProgress {
		s.logger.Warn("Delete: booking id=%d is still active, status=%s", id, booking.Status)
		return ErrBookingActive
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.slots.ReleaseTimeSlot(ctx, id); err != nil {
			return fmt.Errorf("%w: Delete - release slot: %v", ErrInternal, err)
		}
		if err := s.bookingRepo.Delete(ctx, id); err != nil {
			return fmt.Errorf("%w: Delete - delete booking: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Delete: transaction failed for booking id=%d: %v", id, err)
		return err
	}

	s.logger.Info("Delete: booking id=%d removed", id)
	return nil
}
