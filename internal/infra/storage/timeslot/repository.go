package timeslot

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

// pg unique_violation
const sqlStateUniqueViolation = "23505"

// Repository is the durable registry of bookable time slots.
type Repository struct {
	db DBExecutor
}

// NewRepository creates a time slot repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a single slot. Violating the (date, start, end) uniqueness
// constraint yields ErrDuplicateSlot.
func (r *Repository) Create(ctx context.Context, slot *domain.TimeSlot) (*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("time_slots").
		Columns("date", "start_time", "end_time", "status", "booking_id", "notes").
		Values(slot.Date, slot.StartTime, slot.EndTime, slot.Status, slot.BookingID, slot.Notes).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&slot.ID, &createdAt, &updatedAt)
	if isUniqueViolation(err) {
		return nil, ErrDuplicateSlot
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time
	return slot, nil
}

// CreateBatch inserts a set of slots in one statement.
// Used by day generation, which only runs when the date has no slots yet.
func (r *Repository) CreateBatch(ctx context.Context, slots []*domain.TimeSlot) error {
	if len(slots) == 0 {
		return nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	insert := psqlbuilder.Insert("time_slots").
		Columns("date", "start_time", "end_time", "status", "booking_id", "notes")
	for _, slot := range slots {
		insert = insert.Values(slot.Date, slot.StartTime, slot.EndTime, slot.Status, slot.BookingID, slot.Notes)
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: CreateBatch - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateSlot
		}
		return fmt.Errorf("%w: CreateBatch - execute insert: %v", ErrExecQuery, err)
	}
	return nil
}

// GetByID fetches one slot.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectSlots().
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}
	return slot, nil
}

// GetByDate lists slots for a date ordered by start time,
// optionally filtered by status.
func (r *Repository) GetByDate(ctx context.Context, date time.Time, status *domain.SlotStatus) ([]*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := selectSlots().
		Where(squirrel.Eq{"date": dateOnly(date)}).
		OrderBy("start_time ASC")
	if status != nil {
		builder = builder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// GetByDateAndTime fetches the slot matching the exact (date, start, end) triple.
func (r *Repository) GetByDateAndTime(ctx context.Context, date time.Time, start, end string) (*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectSlots().
		Where(squirrel.Eq{
			"date":       dateOnly(date),
			"start_time": start,
			"end_time":   end,
		}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDateAndTime - build select query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDateAndTime - scan slot: %v", ErrScanRow, err)
	}
	return slot, nil
}

// GetByBookingID fetches the slot currently held by a booking.
func (r *Repository) GetByBookingID(ctx context.Context, bookingID int64) (*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectSlots().
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - build select query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - scan slot: %v", ErrScanRow, err)
	}
	return slot, nil
}

// ExistsForDate reports whether any slot exists for the date.
func (r *Repository) ExistsForDate(ctx context.Context, date time.Time) (bool, error) {
	return r.exists(ctx, squirrel.Eq{"date": dateOnly(date)}, "ExistsForDate")
}

// HasAvailableForDate reports whether the date has at least one available slot.
func (r *Repository) HasAvailableForDate(ctx context.Context, date time.Time) (bool, error) {
	return r.exists(ctx, squirrel.Eq{"date": dateOnly(date), "status": domain.SlotAvailable}, "HasAvailableForDate")
}

func (r *Repository) exists(ctx context.Context, cond squirrel.Eq, method string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("time_slots").
		Where(cond).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, method, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, method, err)
	}
	return true, nil
}

// MarkBooked atomically reserves an available slot for a booking.
// The conditional UPDATE is the single point where concurrent reservations
// are decided: only the caller whose update matches the still-available row
// wins; everyone else gets ErrSlotNotAvailable.
func (r *Repository) MarkBooked(ctx context.Context, slotID, bookingID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("time_slots").
		Set("status", domain.SlotBooked).
		Set("booking_id", bookingID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": slotID, "status": domain.SlotAvailable}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkBooked - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkBooked - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkBooked - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrSlotNotAvailable
	}
	return nil
}

// MarkAvailable releases a slot back to the pool and clears the booking
// reference. Idempotent: releasing an already-available slot is a no-op.
func (r *Repository) MarkAvailable(ctx context.Context, slotID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("time_slots").
		Set("status", domain.SlotAvailable).
		Set("booking_id", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": slotID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkAvailable - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkAvailable - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkAvailable - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrSlotNotFound
	}
	return nil
}

// MarkUnavailable blocks a slot by staff action, clearing any booking
// reference and recording the reason in notes.
func (r *Repository) MarkUnavailable(ctx context.Context, slotID int64, notes *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("time_slots").
		Set("status", domain.SlotUnavailable).
		Set("booking_id", nil).
		Set("notes", notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": slotID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkUnavailable - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkUnavailable - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkUnavailable - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrSlotNotFound
	}
	return nil
}

// CountByDate aggregates slot counts for the dashboard stats.
func (r *Repository) CountByDate(ctx context.Context, date time.Time) (domain.SlotDayStats, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"COUNT(*)",
		"COUNT(*) FILTER (WHERE status = 'available')",
		"COUNT(*) FILTER (WHERE status = 'booked')",
		"COUNT(*) FILTER (WHERE status = 'unavailable')",
	).
		From("time_slots").
		Where(squirrel.Eq{"date": dateOnly(date)}).
		ToSql()
	if err != nil {
		return domain.SlotDayStats{}, fmt.Errorf("%w: CountByDate - build select query: %v", ErrBuildQuery, err)
	}

	var stats domain.SlotDayStats
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&stats.Total, &stats.Available, &stats.Booked, &stats.Unavailable,
	)
	if err != nil {
		return domain.SlotDayStats{}, fmt.Errorf("%w: CountByDate - scan row: %v", ErrScanRow, err)
	}
	return stats, nil
}

// Delete removes a slot. The service layer refuses to delete booked slots.
func (r *Repository) Delete(ctx context.Context, slotID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("time_slots").
		Where(squirrel.Eq{"id": slotID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrSlotNotFound
	}
	return nil
}

// Helpers

func selectSlots() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"date",
		"start_time",
		"end_time",
		"status",
		"booking_id",
		"notes",
		"created_at",
		"updated_at",
	).From("time_slots")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSlot(row rowScanner) (*domain.TimeSlot, error) {
	var slot domain.TimeSlot
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&slot.ID,
		&slot.Date,
		&slot.StartTime,
		&slot.EndTime,
		&slot.Status,
		&slot.BookingID,
		&slot.Notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time
	return &slot, nil
}

func scanSlots(rows *sql.Rows) ([]*domain.TimeSlot, error) {
	slots := make([]*domain.TimeSlot, 0)
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %v", ErrScanRow, err)
	}
	return slots, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == sqlStateUniqueViolation
	}
	return false
}
