package domain

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jnails/salon-booking-service/pkg/types"
)

func mustTime(t *testing.T, s string) types.TimeString {
	t.Helper()
	ts, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return ts
}
