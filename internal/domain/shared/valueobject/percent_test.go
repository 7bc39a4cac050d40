package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePercent(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain number", "19.25", "19.25"},
		{"with percent sign", "18 %", "18"},
		{"comma decimal separator", "19,25", "19.25"},
		{"padded", "  5  ", "5"},
		{"empty", "", "0"},
		{"garbage", "n/a", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want, err := decimal.NewFromString(tt.want)
			require.NoError(t, err)
			assert.True(t, ParsePercent(tt.input).Equal(want))
		})
	}
}

func TestRatioPercent(t *testing.T) {
	t.Run("computes rounded ratio", func(t *testing.T) {
		got := RatioPercent(decimal.NewFromInt(1), decimal.NewFromInt(3))
		assert.Equal(t, "33.33", got.StringFixed(2))
	})

	t.Run("returns zero when whole is zero", func(t *testing.T) {
		got := RatioPercent(decimal.NewFromInt(5), decimal.Zero)
		assert.True(t, got.IsZero())
	})
}

func TestDecimalSumPreservesPrecision(t *testing.T) {
	// 10,000 payments of 0.01 must sum to exactly 100.00
	cent := decimal.NewFromFloat(0.01)
	total := decimal.Zero
	for i := 0; i < 10000; i++ {
		total = total.Add(cent)
	}
	assert.True(t, total.Equal(decimal.NewFromInt(100)), "sum drifted: %s", total)
}
