package humansize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFormat verifies the default mode: at least three significant
// figures, rounding upward.
func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		size     uint64
		opts     []Option
		expected string
	}{
		{"below multiplier", 314, nil, "314B"},
		{"two decimals", 3141, nil, "3.07KiB"},
		{"iec prefix", 31415, []Option{WithPrefix(IEC)}, "30.7KB"},
		{"si prefix", 314159, []Option{WithPrefix(SI)}, "315KB"},
		{"empty unit", 3141592, []Option{WithUnit("")}, "3.00Mi"},
		{"with space", 31415926, []Option{WithSpace()}, "30.0 MiB"},
		{"exact kibibyte", 1024, nil, "1.00KiB"},
		{"last byte before prefix", 1023, nil, "1023B"},
		{"round up not half even", 1001, []Option{WithPrefix(SI)}, "1.01KB"},
		{"exact si kilobyte", 1000, []Option{WithPrefix(SI)}, "1.00KB"},
		{"zero", 0, nil, "0B"},
		{"max uint64", 18446744073709551615, nil, "16.0EiB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Format(tt.size, tt.opts...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

// TestFormat_CarryToNextUnit checks that a value rounding up to exactly
// the multiplier is promoted to the next prefix (1024^2-1 bytes is
// 1023.999...KiB, which must print as 1.00MiB, never 1024KiB).
func TestFormat_CarryToNextUnit(t *testing.T) {
	got, err := Format(1024*1024 - 1)
	require.NoError(t, err)
	assert.Equal(t, "1.00MiB", got)

	got, err = Format(1000*1000-1, WithPrefix(SI))
	require.NoError(t, err)
	assert.Equal(t, "1.00MB", got)
}

// TestFormat_Numfmt verifies numfmt(1)-compatible output: at most one
// decimal digit, still rounding upward.
func TestFormat_Numfmt(t *testing.T) {
	tests := []struct {
		name     string
		size     uint64
		opts     []Option
		expected string
	}{
		{"one decimal", 31415926, []Option{WithNumfmt()}, "30MiB"},
		{"small with decimal", 3141, []Option{WithNumfmt()}, "3.1KiB"},
		{"si one decimal", 1001, []Option{WithNumfmt(), WithPrefix(SI), WithUnit("")}, "1.1K"},
		{"si whole", 314159, []Option{WithNumfmt(), WithPrefix(SI), WithUnit("")}, "315K"},
		{"carry", 1024*1024 - 1, []Option{WithNumfmt()}, "1.0MiB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Format(tt.size, tt.opts...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

// TestFormat_InvalidPrefix checks that an unknown prefix system is
// rejected.
func TestFormat_InvalidPrefix(t *testing.T) {
	_, err := Format(42, WithPrefix(Prefix("metric")))
	assert.Error(t, err)
}

// TestParsePrefix verifies string-to-prefix conversion.
func TestParsePrefix(t *testing.T) {
	for _, valid := range []string{"iec-i", "iec", "si"} {
		p, err := ParsePrefix(valid)
		require.NoError(t, err)
		assert.Equal(t, Prefix(valid), p)
	}

	_, err := ParsePrefix("decimal")
	assert.Error(t, err)
	_, err = ParsePrefix("")
	assert.Error(t, err)
}
