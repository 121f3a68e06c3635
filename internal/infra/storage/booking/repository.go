package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/jnails/salon-booking-service/internal/domain"
	"github.com/jnails/salon-booking-service/pkg/dbmetrics"
	"github.com/jnails/salon-booking-service/pkg/psqlbuilder"
)

const sqlStateUniqueViolation = "23505"

// Repository persists bookings and their service snapshot rows.
type Repository struct {
	db DBExecutor
}

// NewRepository creates a booking repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a new booking and returns it with generated fields filled.
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"booking_reference", "client_name", "client_email", "client_phone",
			"appointment_date", "start_time", "end_time",
			"status", "notes", "total_amount", "payment_status", "payment_method",
		).
		Values(
			b.BookingReference, b.ClientName, b.ClientEmail, b.ClientPhone,
			b.AppointmentDate, b.StartTime, b.EndTime,
			b.Status, b.Notes, b.TotalAmount, b.PaymentStatus, b.PaymentMethod,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&b.ID, &createdAt, &updatedAt)
	if isUniqueViolation(err) {
		return nil, ErrDuplicateReference
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time
	return b, nil
}

// CreateServiceSnapshots inserts the immutable price/duration snapshot rows
// for a booking's services.
func (r *Repository) CreateServiceSnapshots(ctx context.Context, bookingID int64, services []*domain.BookingService) error {
	if len(services) == 0 {
		return nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	insert := psqlbuilder.Insert("booking_services").
		Columns("booking_id", "service_id", "service_price", "service_duration_minutes")
	for _, s := range services {
		insert = insert.Values(bookingID, s.ServiceID, s.ServicePrice, s.ServiceDurationMinutes)
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: CreateServiceSnapshots - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: CreateServiceSnapshots - execute insert: %v", ErrExecQuery, err)
	}
	return nil
}

// GetByID fetches one booking without its service snapshots.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, "GetByID")
}

// GetByReference fetches one booking by its public reference.
func (r *Repository) GetByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	return r.getOne(ctx, squirrel.Eq{"booking_reference": reference}, "GetByReference")
}

func (r *Repository) getOne(ctx context.Context, cond squirrel.Eq, method string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBookings().Where(cond).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, method, err)
	}

	b, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan booking: %v", ErrScanRow, method, err)
	}
	return b, nil
}

// ExistsByReference reports whether the reference is already taken.
func (r *Repository) ExistsByReference(ctx context.Context, reference string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("bookings").
		Where(squirrel.Eq{"booking_reference": reference}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ExistsByReference - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: ExistsByReference - scan row: %v", ErrScanRow, err)
	}
	return true, nil
}

// List returns bookings matching the filter, newest first, with the total
// count before pagination.
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	conds := filterConds(filter)

	countQuery, countArgs, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(conds).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - build count query: %v", ErrBuildQuery, err)
	}

	var total int64
	if err := executor.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: List - scan count: %v", ErrScanRow, err)
	}

	builder := selectBookings().
		Where(conds).
		OrderBy("created_at DESC")
	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit).Offset(filter.Offset)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings, err := scanBookings(rows)
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

func filterConds(filter domain.BookingsFilter) squirrel.And {
	conds := squirrel.And{}
	if filter.Search != nil && *filter.Search != "" {
		pattern := "%" + *filter.Search + "%"
		conds = append(conds, squirrel.Or{
			squirrel.ILike{"booking_reference": pattern},
			squirrel.ILike{"client_name": pattern},
			squirrel.ILike{"client_email": pattern},
		})
	}
	if filter.Status != nil {
		conds = append(conds, squirrel.Eq{"status": *filter.Status})
	}
	if filter.Date != nil {
		conds = append(conds, squirrel.Eq{"appointment_date": *filter.Date})
	}
	return conds
}

// UpdateStatus changes the booking status. Moving to confirmed also stamps
// confirmed_at.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})
	if status == domain.StatusConfirmed {
		builder = builder.Set("confirmed_at", squirrel.Expr("NOW()"))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdateStatus")
}

// Cancel marks the booking cancelled with a reason and timestamp.
func (r *Repository) Cancel(ctx context.Context, id int64, reason *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Cancel")
}

// UpdatePaymentStatus writes the booking-level payment status cache.
func (r *Repository) UpdatePaymentStatus(ctx context.Context, id int64, state domain.PaymentState) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("payment_status", state).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdatePaymentStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdatePaymentStatus")
}

// Delete removes a booking. Snapshot rows go with it via ON DELETE CASCADE.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Delete")
}

func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, query string, args []interface{}, method string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, method, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, method, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// GetServices loads the service snapshot rows for a booking, joined with
// the catalog for the display name.
func (r *Repository) GetServices(ctx context.Context, bookingID int64) ([]*domain.BookingService, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"bs.id",
		"bs.booking_id",
		"bs.service_id",
		"bs.service_price",
		"bs.service_duration_minutes",
		"s.name",
		"bs.created_at",
	).
		From("booking_services bs").
		Join("services s ON s.id = bs.service_id").
		Where(squirrel.Eq{"bs.booking_id": bookingID}).
		OrderBy("bs.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetServices - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]*domain.BookingService, 0)
	for rows.Next() {
		var s domain.BookingService
		var createdAt sql.NullTime
		err := rows.Scan(
			&s.ID, &s.BookingID, &s.ServiceID,
			&s.ServicePrice, &s.ServiceDurationMinutes,
			&s.ServiceName, &createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetServices - scan row: %v", ErrScanRow, err)
		}
		s.CreatedAt = createdAt.Time
		services = append(services, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetServices - rows error: %v", ErrScanRow, err)
	}
	return services, nil
}

// ExistsByServiceID reports whether any booking snapshot references the
// catalog service. Referenced services may only be deactivated.
func (r *Repository) ExistsByServiceID(ctx context.Context, serviceID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("booking_services").
		Where(squirrel.Eq{"service_id": serviceID}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ExistsByServiceID - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: ExistsByServiceID - scan row: %v", ErrScanRow, err)
	}
	return true, nil
}

// ReportSummary aggregates booking counts and revenue over a date range for
// the admin dashboard. Revenue counts only completed bookings.
type ReportSummary struct {
	TotalBookings     int64
	CompletedBookings int64
	CancelledBookings int64
	NoShowBookings    int64
	TotalRevenue      float64
}

// GetReportSummary computes the dashboard aggregates for appointments in
// [from, to].
func (r *Repository) GetReportSummary(ctx context.Context, from, to time.Time) (ReportSummary, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"COUNT(*)",
		"COUNT(*) FILTER (WHERE status = 'completed')",
		"COUNT(*) FILTER (WHERE status = 'cancelled')",
		"COUNT(*) FILTER (WHERE status = 'no_show')",
		"COALESCE(SUM(total_amount) FILTER (WHERE status = 'completed'), 0)",
	).
		From("bookings").
		Where(squirrel.GtOrEq{"appointment_date": from}).
		Where(squirrel.LtOrEq{"appointment_date": to}).
		ToSql()
	if err != nil {
		return ReportSummary{}, fmt.Errorf("%w: GetReportSummary - build select query: %v", ErrBuildQuery, err)
	}

	var summary ReportSummary
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&summary.TotalBookings,
		&summary.CompletedBookings,
		&summary.CancelledBookings,
		&summary.NoShowBookings,
		&summary.TotalRevenue,
	)
	if err != nil {
		return ReportSummary{}, fmt.Errorf("%w: GetReportSummary - scan row: %v", ErrScanRow, err)
	}
	return summary, nil
}

// ClientAggregate is one client's lifetime totals, keyed by email.
type ClientAggregate struct {
	ClientName    string
	ClientEmail   string
	BookingsCount int64
	TotalSpent    float64
	LastVisit     *time.Time
}

// GetClientAggregates groups completed bookings by client email and returns
// lifetime spend, ordered by spend descending.
func (r *Repository) GetClientAggregates(ctx context.Context, limit uint64) ([]*ClientAggregate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(
		"MAX(client_name)",
		"client_email",
		"COUNT(*)",
		"COALESCE(SUM(total_amount), 0)",
		"MAX(appointment_date)",
	).
		From("bookings").
		Where(squirrel.Eq{"status": domain.StatusCompleted}).
		GroupBy("client_email").
		OrderBy("COALESCE(SUM(total_amount), 0) DESC")
	if limit > 0 {
		builder = builder.Limit(limit)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetClientAggregates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetClientAggregates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	aggregates := make([]*ClientAggregate, 0)
	for rows.Next() {
		var a ClientAggregate
		var lastVisit sql.NullTime
		err := rows.Scan(&a.ClientName, &a.ClientEmail, &a.BookingsCount, &a.TotalSpent, &lastVisit)
		if err != nil {
			return nil, fmt.Errorf("%w: GetClientAggregates - scan row: %v", ErrScanRow, err)
		}
		if lastVisit.Valid {
			a.LastVisit = &lastVisit.Time
		}
		aggregates = append(aggregates, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetClientAggregates - rows error: %v", ErrScanRow, err)
	}
	return aggregates, nil
}

// Helpers

func selectBookings() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"booking_reference",
		"client_name",
		"client_email",
		"client_phone",
		"appointment_date",
		"start_time",
		"end_time",
		"status",
		"notes",
		"total_amount",
		"payment_status",
		"payment_method",
		"cancellation_reason",
		"cancelled_at",
		"confirmed_at",
		"created_at",
		"updated_at",
	).From("bookings")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var cancelledAt, confirmedAt, createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.BookingReference,
		&b.ClientName,
		&b.ClientEmail,
		&b.ClientPhone,
		&b.AppointmentDate,
		&b.StartTime,
		&b.EndTime,
		&b.Status,
		&b.Notes,
		&b.TotalAmount,
		&b.PaymentStatus,
		&b.PaymentMethod,
		&b.CancellationReason,
		&cancelledAt,
		&confirmedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if cancelledAt.Valid {
		b.CancelledAt = &cancelledAt.Time
	}
	if confirmedAt.Valid {
		b.ConfirmedAt = &confirmedAt.Time
	}
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time
	return &b, nil
}

func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}
	return bookings, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == sqlStateUniqueViolation
	}
	return false
}
