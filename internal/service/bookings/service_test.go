package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jnails/salon-booking-service/internal/domain"
	bookingRepo "github.com/jnails/salon-booking-service/internal/infra/storage/booking"
	paymentRepo "github.com/jnails/salon-booking-service/internal/infra/storage/payment"
	"github.com/jnails/salon-booking-service/pkg/ptr"
	"github.com/jnails/salon-booking-service/pkg/types"
)

var testNow = time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type passthroughTx struct{}

func (passthroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (passthroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (passthroughTx) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeBookingRepo struct {
	byID      map[int64]*domain.Booking
	services  map[int64][]*domain.BookingService
	cancelled map[int64]*string
	statuses  map[int64]domain.BookingStatus
	deleted   map[int64]bool
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		byID:      make(map[int64]*domain.Booking),
		services:  make(map[int64][]*domain.BookingService),
		cancelled: make(map[int64]*string),
		statuses:  make(map[int64]domain.BookingStatus),
		deleted:   make(map[int64]bool),
	}
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.byID[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeBookingRepo) GetByReference(_ context.Context, reference string) (*domain.Booking, error) {
	for _, b := range f.byID {
		if b.BookingReference == reference {
			return b, nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (f *fakeBookingRepo) List(_ context.Context, _ domain.BookingsFilter) ([]*domain.Booking, int64, error) {
	out := make([]*domain.Booking, 0, len(f.byID))
	for _, b := range f.byID {
		out = append(out, b)
	}
	return out, int64(len(out)), nil
}

func (f *fakeBookingRepo) GetServices(_ context.Context, bookingID int64) ([]*domain.BookingService, error) {
	return f.services[bookingID], nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	f.statuses[id] = status
	return nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64, reason *string) error {
	f.cancelled[id] = reason
	return nil
}

func (f *fakeBookingRepo) Delete(_ context.Context, id int64) error {
	f.deleted[id] = true
	return nil
}

type fakePaymentRepo struct {
	latest map[int64]*domain.Payment
}

func (f *fakePaymentRepo) GetLatestByBookingID(_ context.Context, bookingID int64) (*domain.Payment, error) {
	p, ok := f.latest[bookingID]
	if !ok {
		return nil, paymentRepo.ErrPaymentNotFound
	}
	return p, nil
}

type fakeSlotReleaser struct {
	released []int64
}

func (f *fakeSlotReleaser) ReleaseTimeSlot(_ context.Context, bookingID int64) error {
	f.released = append(f.released, bookingID)
	return nil
}

type fixture struct {
	svc      *Service
	bookings *fakeBookingRepo
	payments *fakePaymentRepo
	slots    *fakeSlotReleaser
}

func newFixture() *fixture {
	bookings := newFakeBookingRepo()
	payments := &fakePaymentRepo{latest: make(map[int64]*domain.Payment)}
	slots := &fakeSlotReleaser{}
	svc := NewService(bookings, payments, slots, passthroughTx{}, fixedClock{testNow}, nopLogger{})
	return &fixture{svc: svc, bookings: bookings, payments: payments, slots: slots}
}

func booking(id int64, reference string, status domain.BookingStatus, date time.Time, start string) *domain.Booking {
	return &domain.Booking{
		ID:               id,
		BookingReference: reference,
		Status:           status,
		AppointmentDate:  date,
		StartTime:        types.TimeString(start),
	}
}

func TestService_GetByReference_LoadsSnapshots(t *testing.T) {
	fx := newFixture()
	b := booking(1, "JN000001", domain.StatusConfirmed, testNow.AddDate(0, 0, 2), "10:00")
	fx.bookings.byID[1] = b
	fx.bookings.services[1] = []*domain.BookingService{
		{ID: 10, BookingID: 1, ServiceID: 3, ServicePrice: 1500, ServiceDurationMinutes: 30, ServiceName: "Gel Manicure"},
	}

	got, err := fx.svc.GetByReference(context.Background(), "JN000001")
	require.NoError(t, err)
	require.Len(t, got.Services, 1)
	assert.Equal(t, "Gel Manicure", got.Services[0].ServiceName)

	_, err = fx.svc.GetByReference(context.Background(), "JN999999")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_Cancel(t *testing.T) {
	fx := newFixture()
	// Appointment two days out, well past the 24h notice.
	fx.bookings.byID[1] = booking(1, "JN000001", domain.StatusConfirmed, testNow.AddDate(0, 0, 2), "10:00")

	reason := ptr.Ptr("travel")
	require.NoError(t, fx.svc.Cancel(context.Background(), "JN000001", reason))

	assert.Equal(t, reason, fx.bookings.cancelled[1])
	assert.Equal(t, []int64{1}, fx.slots.released)
}

func TestService_Cancel_RefusesInsideNoticeWindow(t *testing.T) {
	fx := newFixture()
	// Appointment tomorrow at 10:00; now is 12:00, only 22 hours of notice.
	fx.bookings.byID[1] = booking(1, "JN000001", domain.StatusConfirmed, testNow.AddDate(0, 0, 1), "10:00")

	err := fx.svc.Cancel(context.Background(), "JN000001", nil)
	assert.ErrorIs(t, err, ErrCannotCancel)
	assert.Empty(t, fx.slots.released)
}

func TestService_Cancel_RefusesTerminalStatus(t *testing.T) {
	fx := newFixture()
	fx.bookings.byID[1] = booking(1, "JN000001", domain.StatusCompleted, testNow.AddDate(0, 0, 5), "10:00")

	err := fx.svc.Cancel(context.Background(), "JN000001", nil)
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestService_UpdateStatus_Transitions(t *testing.T) {
	fx := newFixture()
	fx.bookings.byID[1] = booking(1, "JN000001", domain.StatusPending, testNow.AddDate(0, 0, 2), "10:00")

	require.NoError(t, fx.svc.UpdateStatus(context.Background(), 1, domain.StatusConfirmed))
	assert.Equal(t, domain.StatusConfirmed, fx.bookings.statuses[1])
	// Confirming is not terminal; the slot stays held.
	assert.Empty(t, fx.slots.released)

	err := fx.svc.UpdateStatus(context.Background(), 1, domain.StatusCompleted)
	assert.ErrorIs(t, err, ErrInvalidTransition, "stored status in fake is not re-read; transition checked against original")
}

func TestService_UpdateStatus_InvalidTransition(t *testing.T) {
	fx := newFixture()
	fx.bookings.byID[1] = booking(1, "JN000001", domain.StatusCancelled, testNow.AddDate(0, 0, 2), "10:00")

	err := fx.svc.UpdateStatus(context.Background(), 1, domain.StatusConfirmed)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestService_UpdateStatus_CompleteRequiresCompletedPayment(t *testing.T) {
	fx := newFixture()
	fx.bookings.byID[1] = booking(1, "JN000001", domain.StatusInProgress, testNow, "10:00")

	// No payment at all.
	err := fx.svc.UpdateStatus(context.Background(), 1, domain.StatusCompleted)
	assert.ErrorIs(t, err, ErrPaymentIncomplete)

	// Latest payment still pending.
	fx.payments.latest[1] = &domain.Payment{BookingID: 1, Status: domain.PaymentPending}
	err = fx.svc.UpdateStatus(context.Background(), 1, domain.StatusCompleted)
	assert.ErrorIs(t, err, ErrPaymentIncomplete)

	// Completed payment unlocks completion and releases the slot.
	fx.payments.latest[1] = &domain.Payment{BookingID: 1, Status: domain.PaymentCompleted}
	require.NoError(t, fx.svc.UpdateStatus(context.Background(), 1, domain.StatusCompleted))
	assert.Equal(t, domain.StatusCompleted, fx.bookings.statuses[1])
	assert.Equal(t, []int64{1}, fx.slots.released)
}

func TestService_UpdateStatus_CompleteFallsBackToCachedPaymentStatus(t *testing.T) {
	fx := newFixture()
	b := booking(1, "JN000001", domain.StatusInProgress, testNow, "10:00")
	b.PaymentStatus = domain.PaymentStateCompleted
	fx.bookings.byID[1] = b

	// No ledger entries, but the cached status says paid.
	require.NoError(t, fx.svc.UpdateStatus(context.Background(), 1, domain.StatusCompleted))
	assert.Equal(t, domain.StatusCompleted, fx.bookings.statuses[1])
}

func TestService_UpdateStatus_NoShowReleasesSlot(t *testing.T) {
	fx := newFixture()
	fx.bookings.byID[1] = booking(1, "JN000001", domain.StatusConfirmed, testNow, "10:00")

	require.NoError(t, fx.svc.UpdateStatus(context.Background(), 1, domain.StatusNoShow))
	assert.Equal(t, []int64{1}, fx.slots.released)
}

func TestService_Delete(t *testing.T) {
	fx := newFixture()
	fx.bookings.byID[1] = booking(1, "JN000001", domain.StatusCancelled, testNow, "10:00")
	fx.bookings.byID[2] = booking(2, "JN000002", domain.StatusConfirmed, testNow.AddDate(0, 0, 2), "10:00")

	require.NoError(t, fx.svc.Delete(context.Background(), 1))
	assert.True(t, fx.bookings.deleted[1])
	assert.Equal(t, []int64{1}, fx.slots.released)

	err := fx.svc.Delete(context.Background(), 2)
	assert.ErrorIs(t, err, ErrBookingActive)
	assert.False(t, fx.bookings.deleted[2])

	err = fx.svc.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
