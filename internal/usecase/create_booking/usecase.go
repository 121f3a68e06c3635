package create_booking

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/jnails/salon-booking-service/internal/domain"
	"github.com/jnails/salon-booking-service/internal/service/availability"
	"github.com/jnails/salon-booking-service/internal/service/payments"
)

const maxReferenceAttempts = 5

// UseCase creates a booking: rule checks, the booking row, its service
// snapshots and the slot reservation, all inside one serializable
// transaction. Either everything lands or nothing does.
type UseCase struct {
	bookingRepo  BookingRepository
	catalog      CatalogService
	availability AvailabilityService
	payments     PaymentService
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase creates the booking creation flow.
func NewUseCase(
	bookingRepo BookingRepository,
	catalog CatalogService,
	availabilitySvc AvailabilityService,
	paymentSvc PaymentService,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		catalog:      catalog,
		availability: availabilitySvc,
		payments:     paymentSvc,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute runs the booking creation flow.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: client=%s date=%s time=%s services=%v",
		req.ClientEmail, req.Date.Format(domain.DateFormat), req.StartTime, req.ServiceIDs)

	// 1. Request shape.
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Booking

	// 2. Everything that writes runs serializable, with retries on
	// serialization conflicts handled by the transaction manager.
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Resolve services; all must exist and be active. Prices
		// and durations are snapshotted as of right now.
		services, err := uc.catalog.GetActiveByIDs(txCtx, req.ServiceIDs)
		if err != nil {
			uc.logger.Warn("CreateBooking: service lookup failed: %v", err)
			return ErrServiceNotFound
		}

		totalAmount := 0.0
		totalDuration := 0
		snapshots := make([]*domain.BookingService, 0, len(services))
		for _, service := range services {
			totalAmount += service.Price
			totalDuration += service.DurationMinutes
			snapshots = append(snapshots, &domain.BookingService{
				ServiceID:              service.ID,
				ServicePrice:           service.Price,
				ServiceDurationMinutes: service.DurationMinutes,
				ServiceName:            service.Name,
			})
		}

		// 2.2. The appointment runs for the sum of the service durations.
		endTime, err := req.StartTime.AddMinutes(totalDuration)
		if err != nil {
			return fmt.Errorf("%w: invalid start time", ErrInvalidInput)
		}

		// 2.3. Booking-window rules: past date, closed day, horizon,
		// minimum notice, slot existence and availability for the exact
		// interval. Re-checked here even if the client validated earlier,
		// the slot may have been taken in between.
		violations, err := uc.availability.ValidateBookingTime(txCtx, req.Date, req.StartTime, endTime)
		if err != nil {
			return fmt.Errorf("%w: validate booking time: %v", ErrInternal, err)
		}
		if len(violations) > 0 {
			uc.logger.Warn("CreateBooking: time rejected: %v", violations)
			return mapAvailabilityError(violations[0])
		}

		// 2.4. A fresh public reference.
		reference, err := uc.generateReference(txCtx)
		if err != nil {
			return err
		}

		method := req.PaymentMethod
		if method == "" {
			method = domain.MethodCash
		}

		// 2.5. The booking row.
		booking := &domain.Booking{
			BookingReference: reference,
			ClientName:       strings.TrimSpace(req.ClientName),
			ClientEmail:      strings.ToLower(strings.TrimSpace(req.ClientEmail)),
			ClientPhone:      strings.TrimSpace(req.ClientPhone),
			AppointmentDate:  req.Date,
			StartTime:        req.StartTime,
			EndTime:          endTime,
			Status:           domain.StatusPending,
			Notes:            req.Notes,
			TotalAmount:      totalAmount,
			PaymentStatus:    domain.PaymentStatePending,
			PaymentMethod:    method,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: create booking: %v", ErrInternal, err)
		}

		// 2.6. Reserve the slot. This is the compare-and-set: under
		// concurrency exactly one booking gets the slot and every loser
		// rolls back the rows above.
		if _, err := uc.availability.BookTimeSlot(txCtx, req.Date, req.StartTime, endTime, created.ID); err != nil {
			uc.logger.Warn("CreateBooking: slot reservation failed for booking id=%d: %v", created.ID, err)
			return mapAvailabilityError(err)
		}

		// 2.7. Price and duration snapshots.
		if err := uc.bookingRepo.CreateServiceSnapshots(txCtx, created.ID, snapshots); err != nil {
			uc.logger.Error("CreateBooking: failed to snapshot services: %v", err)
			return fmt.Errorf("%w: snapshot services: %v", ErrInternal, err)
		}

		// 2.8. The opening ledger entry. Cash for the full amount settles
		// immediately; everything else waits for the front desk.
		payment, err := uc.payments.CreateForBooking(txCtx, payments.CreateRequest{
			BookingID: created.ID,
			Amount:    totalAmount,
			Method:    method,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to open payment for booking id=%d: %v", created.ID, err)
			return fmt.Errorf("%w: open payment: %v", ErrInternal, err)
		}
		if payment.Status == domain.PaymentCompleted {
			created.PaymentStatus = domain.PaymentStateCompleted
		}

		created.Services = snapshots
		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: created booking id=%d ref=%s total=%.2f",
		result.ID, result.BookingReference, result.TotalAmount)

	return toResponse(result), nil
}

// generateReference draws JN-prefixed numeric references until one is unused.
func (uc *UseCase) generateReference(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxReferenceAttempts; attempt++ {
		reference := randomReference(domain.BookingReferencePrefix, domain.BookingReferenceLength)

		taken, err := uc.bookingRepo.ExistsByReference(ctx, reference)
		if err != nil {
			return "", fmt.Errorf("%w: reference existence check: %v", ErrInternal, err)
		}
		if !taken {
			return reference, nil
		}
		uc.logger.Warn("CreateBooking: reference collision on %s, retrying", reference)
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

// mapAvailabilityError converts engine sentinels into this flow's errors so
// handlers only ever see create_booking errors.
func mapAvailabilityError(err error) error {
	switch {
	case errors.Is(err, availability.ErrDateInPast):
		return ErrInvalidDate
	case errors.Is(err, availability.ErrDateClosed):
		return ErrSalonClosed
	case errors.Is(err, availability.ErrDateTooFar):
		return ErrDateTooFarInFuture
	case errors.Is(err, availability.ErrSlotNotFound):
		return ErrSlotNotFound
	case errors.Is(err, availability.ErrSlotNotAvailable):
		return ErrSlotNotAvailable
	case errors.Is(err, availability.ErrTooSoon):
		return ErrTooLateToBook
	default:
		return fmt.Errorf("%w: availability: %v", ErrInternal, err)
	}
}

func toResponse(b *domain.Booking) *Response {
	services := make([]BookedService, 0, len(b.Services))
	for _, s := range b.Services {
		services = append(services, BookedService{
			ServiceID:       s.ServiceID,
			Name:            s.ServiceName,
			Price:           s.ServicePrice,
			DurationMinutes: s.ServiceDurationMinutes,
		})
	}

	return &Response{
		ID:               b.ID,
		BookingReference: b.BookingReference,
		ClientName:       b.ClientName,
		ClientEmail:      b.ClientEmail,
		ClientPhone:      b.ClientPhone,
		AppointmentDate:  b.AppointmentDate,
		StartTime:        b.StartTime,
		EndTime:          b.EndTime,
		Status:           string(b.Status),
		PaymentStatus:    string(b.PaymentStatus),
		PaymentMethod:    string(b.PaymentMethod),
		TotalAmount:      b.TotalAmount,
		Notes:            b.Notes,
		Services:         services,
		CreatedAt:        b.CreatedAt,
	}
}
