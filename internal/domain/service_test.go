package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "45min", FormatDuration(45))
	assert.Equal(t, "1h", FormatDuration(60))
	assert.Equal(t, "1h 30min", FormatDuration(90))
	assert.Equal(t, "2h 15min", FormatDuration(135))
	assert.Equal(t, "0min", FormatDuration(0))
}

func TestService_IsActive(t *testing.T) {
	assert.True(t, (&Service{Status: ServiceActive}).IsActive())
	assert.False(t, (&Service{Status: ServiceInactive}).IsActive())
}
