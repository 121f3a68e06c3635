package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/jnails/salon-booking-service/internal/domain"
	"github.com/jnails/salon-booking-service/pkg/dbmetrics"
	"github.com/jnails/salon-booking-service/pkg/psqlbuilder"
)

const sqlStateUniqueViolation = "23505"

// Repository persists the payment ledger. Rows are append-mostly: status
// transitions update in place, but amounts and references never change.
type Repository struct {
	db DBExecutor
}

// NewRepository creates a payment repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a new payment attempt.
func (r *Repository) Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("payments").
		Columns(
			"booking_id", "payment_reference", "amount", "method", "status",
			"transaction_id", "provider", "provider_response", "notes",
			"processed_at", "failed_at",
		).
		Values(
			p.BookingID, p.PaymentReference, p.Amount, p.Method, p.Status,
			p.TransactionID, p.Provider, nullableJSON(p.ProviderResponse), p.Notes,
			p.ProcessedAt, p.FailedAt,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &createdAt, &updatedAt)
	if isUniqueViolation(err) {
		return nil, ErrDuplicateReference
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time
	return p, nil
}

// GetByID fetches one payment.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, "GetByID")
}

// GetByReference fetches one payment by its public reference.
func (r *Repository) GetByReference(ctx context.Context, reference string) (*domain.Payment, error) {
	return r.getOne(ctx, squirrel.Eq{"payment_reference": reference}, "GetByReference")
}

func (r *Repository) getOne(ctx context.Context, cond squirrel.Eq, method string) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectPayments().Where(cond).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, method, err)
	}

	p, err := scanPayment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan payment: %v", ErrScanRow, method, err)
	}
	return p, nil
}

// GetLatestByBookingID returns the most recently created payment for a
// booking. That row is authoritative for the booking's payment state.
func (r *Repository) GetLatestByBookingID(ctx context.Context, bookingID int64) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectPayments().
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetLatestByBookingID - build select query: %v", ErrBuildQuery, err)
	}

	p, err := scanPayment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetLatestByBookingID - scan payment: %v", ErrScanRow, err)
	}
	return p, nil
}

// ExistsByReference reports whether the reference is already taken.
func (r *Repository) ExistsByReference(ctx context.Context, reference string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("payments").
		Where(squirrel.Eq{"payment_reference": reference}).
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

// List returns payments matching the filter, newest first, with the total
// count before pagination.
func (r *Repository) List(ctx context.Context, filter domain.PaymentsFilter) ([]*domain.Payment, int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	conds := filterConds(filter)

	countQuery, countArgs, err := psqlbuilder.Select("COUNT(*)").
		From("payments").
		Where(conds).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - build count query: %v", ErrBuildQuery, err)
	}

	var total int64
	if err := executor.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: List - scan count: %v", ErrScanRow, err)
	}

	builder := selectPayments().
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

	payments := make([]*domain.Payment, 0)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}
	return payments, total, nil
}

func filterConds(filter domain.PaymentsFilter) squirrel.And {
	conds := squirrel.And{}
	if filter.Search != nil && *filter.Search != "" {
		pattern := "%" + *filter.Search + "%"
		conds = append(conds, squirrel.Or{
			squirrel.ILike{"payment_reference": pattern},
			squirrel.ILike{"transaction_id": pattern},
		})
	}
	if filter.Status != nil {
		conds = append(conds, squirrel.Eq{"status": *filter.Status})
	}
	if filter.Method != nil {
		conds = append(conds, squirrel.Eq{"method": *filter.Method})
	}
	if filter.Date != nil {
		conds = append(conds, squirrel.Expr("created_at::date = ?", *filter.Date))
	}
	return conds
}

// MarkCompleted stamps the payment as gone through, recording the external
// transaction id when the provider supplied one.
func (r *Repository) MarkCompleted(ctx context.Context, id int64, transactionID *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Update("payments").
		Set("status", domain.PaymentCompleted).
		Set("processed_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})
	if transactionID != nil {
		builder = builder.Set("transaction_id", *transactionID)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkCompleted - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "MarkCompleted")
}

// MarkFailed stamps the payment as failed with the failure reason in notes.
func (r *Repository) MarkFailed(ctx context.Context, id int64, reason *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("payments").
		Set("status", domain.PaymentFailed).
		Set("failed_at", squirrel.Expr("NOW()")).
		Set("notes", reason).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkFailed - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "MarkFailed")
}

// MarkRefunded stamps the payment as refunded.
func (r *Repository) MarkRefunded(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("payments").
		Set("status", domain.PaymentRefunded).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkRefunded - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "MarkRefunded")
}

// UpdateStatus sets an arbitrary payment status. Transition validity is
// checked in the service layer.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.PaymentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("payments").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdateStatus")
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
		return ErrPaymentNotFound
	}
	return nil
}

// Helpers

func selectPayments() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"booking_id",
		"payment_reference",
		"amount",
		"method",
		"status",
		"transaction_id",
		"provider",
		"provider_response",
		"notes",
		"processed_at",
		"failed_at",
		"created_at",
		"updated_at",
	).From("payments")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPayment(row rowScanner) (*domain.Payment, error) {
	var p domain.Payment
	var providerResponse []byte
	var processedAt, failedAt, createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&p.ID,
		&p.BookingID,
		&p.PaymentReference,
		&p.Amount,
		&p.Method,
		&p.Status,
		&p.TransactionID,
		&p.Provider,
		&providerResponse,
		&p.Notes,
		&processedAt,
		&failedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(providerResponse) > 0 {
		p.ProviderResponse = providerResponse
	}
	if processedAt.Valid {
		p.ProcessedAt = &processedAt.Time
	}
	if failedAt.Valid {
		p.FailedAt = &failedAt.Time
	}
	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time
	return &p, nil
}

func nullableJSON(raw []byte) interface{} {
	if len(raw) == 0 {
		return nil
	}
	return raw
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == sqlStateUniqueViolation
	}
	return false
}
