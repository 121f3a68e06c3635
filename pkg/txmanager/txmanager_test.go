package txmanager

import (
	"context"
	"database/sql"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jnails/salon-booking-service/pkg/dbmetrics"
)

type fakeTx struct {
	commitErr  error
	committed  bool
	rolledBack bool
}

func (f *fakeTx) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (f *fakeTx) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func (f *fakeTx) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (f *fakeTx) Commit() error {
	f.committed = true
	return f.commitErr
}

func (f *fakeTx) Rollback() error {
	f.rolledBack = true
	return nil
}

// fakeBeginner hands out transactions whose commits fail until failures
// are used up.
type fakeBeginner struct {
	begun    int
	failures int
	failWith error
}

func (f *fakeBeginner) BeginTx(context.Context, *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	f.begun++
	tx := &fakeTx{}
	if f.failures > 0 {
		f.failures--
		tx.commitErr = f.failWith
	}
	return tx, nil
}

func serializationFailure() error {
	return &pq.Error{Code: "40001"}
}

func TestDoSerializable_RetriesSerializationFailureAtCommit(t *testing.T) {
	db := &fakeBeginner{failures: 1, failWith: serializationFailure()}
	m := NewTransactionManager(db)

	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, db.begun, "first commit loses the serialization race, second attempt lands")
	assert.Equal(t, 2, calls)
}

func TestDoSerializable_GivesUpAfterBoundedRetries(t *testing.T) {
	db := &fakeBeginner{failures: 10, failWith: serializationFailure()}
	m := NewTransactionManager(db)

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return nil
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCommitTx)

	var pqErr *pq.Error
	require.ErrorAs(t, err, &pqErr, "the pq cause survives the wrap")
	assert.Equal(t, pq.ErrorCode("40001"), pqErr.Code)

	assert.Equal(t, serializableRetries, db.begun)
}

func TestDoSerializable_DoesNotRetryOtherCommitErrors(t *testing.T) {
	db := &fakeBeginner{failures: 10, failWith: &pq.Error{Code: "23505"}}
	m := NewTransactionManager(db)

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return nil
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCommitTx)
	assert.Equal(t, 1, db.begun)
}

func TestDo_RollsBackOnFunctionError(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db)

	var tx *fakeTx
	err := m.Do(context.Background(), func(ctx context.Context) error {
		tx = dbmetrics.GetExecutor(ctx, nil).(*fakeTx)
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)
	require.NotNil(t, tx)
	assert.True(t, tx.rolledBack)
	assert.False(t, tx.committed)
}

func TestDo_JoinsAmbientTransaction(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db)

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		// A nested call must reuse the open transaction, not begin
		// a second one.
		return m.Do(ctx, func(ctx context.Context) error { return nil })
	})
	require.NoError(t, err)
	assert.Equal(t, 1, db.begun)
}
