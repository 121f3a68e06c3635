package payments

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jnails/salon-booking-service/internal/domain"
	bookingRepo "github.com/jnails/salon-booking-service/internal/infra/storage/booking"
	paymentRepo "github.com/jnails/salon-booking-service/internal/infra/storage/payment"
	"github.com/jnails/salon-booking-service/pkg/ptr"
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

type fakePaymentRepo struct {
	nextID     int64
	byID       map[int64]*domain.Payment
	references map[string]bool
	// collisions forces this many reference collisions before success.
	collisions int
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{nextID: 1, byID: make(map[int64]*domain.Payment), references: make(map[string]bool)}
}

func (f *fakePaymentRepo) Create(_ context.Context, p *domain.Payment) (*domain.Payment, error) {
	p.ID = f.nextID
	f.nextID++
	f.byID[p.ID] = p
	f.references[p.PaymentReference] = true
	return p, nil
}

func (f *fakePaymentRepo) GetByID(_ context.Context, id int64) (*domain.Payment, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, paymentRepo.ErrPaymentNotFound
	}
	return p, nil
}

func (f *fakePaymentRepo) GetLatestByBookingID(_ context.Context, bookingID int64) (*domain.Payment, error) {
	var latest *domain.Payment
	for _, p := range f.byID {
		if p.BookingID != bookingID {
			continue
		}
		if latest == nil || p.ID > latest.ID {
			latest = p
		}
	}
	if latest == nil {
		return nil, paymentRepo.ErrPaymentNotFound
	}
	return latest, nil
}

func (f *fakePaymentRepo) ExistsByReference(_ context.Context, reference string) (bool, error) {
	if f.collisions > 0 {
		f.collisions--
		return true, nil
	}
	return f.references[reference], nil
}

func (f *fakePaymentRepo) List(_ context.Context, _ domain.PaymentsFilter) ([]*domain.Payment, int64, error) {
	out := make([]*domain.Payment, 0, len(f.byID))
	for _, p := range f.byID {
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (f *fakePaymentRepo) MarkCompleted(_ context.Context, id int64, transactionID *string) error {
	p := f.byID[id]
	p.Status = domain.PaymentCompleted
	p.TransactionID = transactionID
	now := testNow
	p.ProcessedAt = &now
	return nil
}

func (f *fakePaymentRepo) MarkFailed(_ context.Context, id int64, reason *string) error {
	p := f.byID[id]
	p.Status = domain.PaymentFailed
	p.Notes = reason
	now := testNow
	p.FailedAt = &now
	return nil
}

func (f *fakePaymentRepo) MarkRefunded(_ context.Context, id int64) error {
	f.byID[id].Status = domain.PaymentRefunded
	return nil
}

type fakeBookingRepo struct {
	byID   map[int64]*domain.Booking
	states map[int64]domain.PaymentState
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{byID: make(map[int64]*domain.Booking), states: make(map[int64]domain.PaymentState)}
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.byID[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeBookingRepo) UpdatePaymentStatus(_ context.Context, id int64, state domain.PaymentState) error {
	f.states[id] = state
	return nil
}

type fixture struct {
	svc      *Service
	payments *fakePaymentRepo
	bookings *fakeBookingRepo
}

func newFixture() *fixture {
	payments := newFakePaymentRepo()
	bookings := newFakeBookingRepo()
	svc := NewService(payments, bookings, passthroughTx{}, fixedClock{testNow}, nopLogger{})
	return &fixture{svc: svc, payments: payments, bookings: bookings}
}

func TestService_CreateForBooking_CashFullAmountCompletes(t *testing.T) {
	fx := newFixture()
	fx.bookings.byID[1] = &domain.Booking{ID: 1, TotalAmount: 2000}

	payment, err := fx.svc.CreateForBooking(context.Background(), CreateRequest{
		BookingID: 1,
		Amount:    2000,
		Method:    domain.MethodCash,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.PaymentCompleted, payment.Status)
	assert.True(t, strings.HasPrefix(payment.PaymentReference, "PAY"))
	assert.Len(t, payment.PaymentReference, 3+domain.PaymentReferenceLength)
	assert.Equal(t, domain.PaymentStateCompleted, fx.bookings.states[1])
}

func TestService_CreateForBooking_CashPartialStaysPartial(t *testing.T) {
	fx := newFixture()
	fx.bookings.byID[1] = &domain.Booking{ID: 1, TotalAmount: 2000}

	payment, err := fx.svc.CreateForBooking(context.Background(), CreateRequest{
		BookingID: 1,
		Amount:    500,
		Method:    domain.MethodCash,
	})
	require.NoError(t, err)

	// Partial cash is taken immediately but the booking stays partial.
	assert.Equal(t, domain.PaymentCompleted, payment.Status)
	assert.Equal(t, domain.PaymentStatePartial, fx.bookings.states[1])
}

func TestService_CreateForBooking_NonCashStaysPending(t *testing.T) {
	fx := newFixture()
	fx.bookings.byID[1] = &domain.Booking{ID: 1, TotalAmount: 2000}

	payment, err := fx.svc.CreateForBooking(context.Background(), CreateRequest{
		BookingID: 1,
		Amount:    2000,
		Method:    domain.MethodMpesa,
		Provider:  ptr.Ptr("safaricom"),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.PaymentPending, payment.Status)
	assert.NotContains(t, fx.bookings.states, int64(1))
}

func TestService_CreateForBooking_Validation(t *testing.T) {
	fx := newFixture()
	fx.bookings.byID[1] = &domain.Booking{ID: 1, TotalAmount: 2000}

	_, err := fx.svc.CreateForBooking(context.Background(), CreateRequest{BookingID: 1, Amount: 0, Method: domain.MethodCash})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = fx.svc.CreateForBooking(context.Background(), CreateRequest{BookingID: 1, Amount: 100, Method: "cheque"})
	assert.ErrorIs(t, err, ErrInvalidMethod)

	_, err = fx.svc.CreateForBooking(context.Background(), CreateRequest{BookingID: 99, Amount: 100, Method: domain.MethodCash})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_CreateForBooking_ReferenceCollisionRetries(t *testing.T) {
	fx := newFixture()
	fx.bookings.byID[1] = &domain.Booking{ID: 1, TotalAmount: 2000}
	fx.payments.collisions = 3

	payment, err := fx.svc.CreateForBooking(context.Background(), CreateRequest{
		BookingID: 1,
		Amount:    2000,
		Method:    domain.MethodMpesa,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, payment.PaymentReference)
}

func TestService_CreateForBooking_ReferenceExhausted(t *testing.T) {
	fx := newFixture()
	fx.bookings.byID[1] = &domain.Booking{ID: 1, TotalAmount: 2000}
	fx.payments.collisions = maxReferenceAttempts

	_, err := fx.svc.CreateForBooking(context.Background(), CreateRequest{
		BookingID: 1,
		Amount:    2000,
		Method:    domain.MethodMpesa,
	})
	assert.ErrorIs(t, err, ErrReferenceExhausted)
}

func TestService_MarkAsCompleted(t *testing.T) {
	fx := newFixture()
	fx.bookings.byID[1] = &domain.Booking{ID: 1, TotalAmount: 2000}
	fx.payments.byID[1] = &domain.Payment{ID: 1, BookingID: 1, Amount: 2000, Status: domain.PaymentPending}
	fx.payments.nextID = 2

	txID := ptr.Ptr("MPESA12345")
	require.NoError(t, fx.svc.MarkAsCompleted(context.Background(), 1, txID))

	assert.Equal(t, domain.PaymentCompleted, fx.payments.byID[1].Status)
	assert.Equal(t, txID, fx.payments.byID[1].TransactionID)
	assert.Equal(t, domain.PaymentStateCompleted, fx.bookings.states[1])

	// Completed payments cannot complete again.
	err := fx.svc.MarkAsCompleted(context.Background(), 1, nil)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestService_MarkAsFailed(t *testing.T) {
	fx := newFixture()
	fx.bookings.byID[1] = &domain.Booking{ID: 1, TotalAmount: 2000}
	fx.payments.byID[1] = &domain.Payment{ID: 1, BookingID: 1, Amount: 2000, Status: domain.PaymentProcessing}
	fx.payments.nextID = 2

	reason := ptr.Ptr("card declined")
	require.NoError(t, fx.svc.MarkAsFailed(context.Background(), 1, reason))

	assert.Equal(t, domain.PaymentFailed, fx.payments.byID[1].Status)
	assert.Equal(t, domain.PaymentStateFailed, fx.bookings.states[1])

	err := fx.svc.MarkAsFailed(context.Background(), 1, nil)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestService_MarkAsRefunded(t *testing.T) {
	fx := newFixture()
	fx.bookings.byID[1] = &domain.Booking{ID: 1, TotalAmount: 2000}

	processed := testNow.AddDate(0, 0, -5)
	fx.payments.byID[1] = &domain.Payment{
		ID: 1, BookingID: 1, Amount: 2000,
		Status: domain.PaymentCompleted, ProcessedAt: &processed,
	}
	fx.payments.nextID = 2

	require.NoError(t, fx.svc.MarkAsRefunded(context.Background(), 1))
	assert.Equal(t, domain.PaymentRefunded, fx.payments.byID[1].Status)
	assert.Equal(t, domain.PaymentStateRefunded, fx.bookings.states[1])
}

func TestService_MarkAsRefunded_OutsideWindow(t *testing.T) {
	fx := newFixture()
	fx.bookings.byID[1] = &domain.Booking{ID: 1, TotalAmount: 2000}

	processed := testNow.AddDate(0, 0, -45)
	fx.payments.byID[1] = &domain.Payment{
		ID: 1, BookingID: 1, Amount: 2000,
		Status: domain.PaymentCompleted, ProcessedAt: &processed,
	}
	fx.payments.nextID = 2

	err := fx.svc.MarkAsRefunded(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNotRefundable)
	assert.Equal(t, domain.PaymentCompleted, fx.payments.byID[1].Status)
}

func TestService_MarkAsRefunded_NeverCompleted(t *testing.T) {
	fx := newFixture()
	fx.bookings.byID[1] = &domain.Booking{ID: 1, TotalAmount: 2000}
	fx.payments.byID[1] = &domain.Payment{ID: 1, BookingID: 1, Amount: 2000, Status: domain.PaymentPending}
	fx.payments.nextID = 2

	err := fx.svc.MarkAsRefunded(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNotRefundable)
}
