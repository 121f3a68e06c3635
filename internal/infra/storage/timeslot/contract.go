package timeslot

import (
	"github.com/jnails/salon-booking-service/pkg/dbmetrics"
)

// Executor interfaces are shared with dbmetrics so repositories work the
// same over the raw pool, the instrumented pool, or an open transaction.
type DBExecutor = dbmetrics.DBExecutor
type TxExecutor = dbmetrics.TxExecutor
