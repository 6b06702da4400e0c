package humantime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFormat verifies HH:MM:SS rendering across the option surface.
func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		seconds  float64
		opts     []Option
		expected string
	}{
		{"rounds to whole seconds", 10.55, nil, "00:00:11"},
		{"one decimal digit", 10.55, []Option{WithDecimalDigits(1)}, "00:00:10.6"},
		{"two decimal digits", 10.55, []Option{WithDecimalDigits(2)}, "00:00:10.55"},
		{"one hour digit", 10.55, []Option{WithOneHourDigit()}, "0:00:11"},
		{"full day", 86400, []Option{WithOneHourDigit()}, "24:00:00"},
		{"zero", 0, nil, "00:00:00"},
		{"hours minutes seconds", 3661.5, nil, "01:01:02"},
		{"padded fraction", 5.26, []Option{WithDecimalDigits(1)}, "00:00:05.3"},
		{"just under an hour", 3599.4, nil, "00:59:59"},
		{"ten hours keeps two digits", 36000, []Option{WithOneHourDigit()}, "10:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Format(tt.seconds, tt.opts...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

// TestFormat_Negative verifies that negative durations are rejected.
func TestFormat_Negative(t *testing.T) {
	_, err := Format(-1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "negative")
}
