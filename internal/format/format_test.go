package format

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNonFiniteInputPrintsPlaceholder(t *testing.T) {
	inputs := []float64{math.NaN(), math.Inf(1), math.Inf(-1)}

	for _, v := range inputs {
		assert.Equal(t, Placeholder, USD(v))
		assert.Equal(t, Placeholder, Fixed(v, 2))
		assert.Equal(t, Placeholder, Percent(v))
		assert.Equal(t, Placeholder, Share(v))
		assert.Equal(t, Placeholder, Compact(v, 2))
		assert.Equal(t, Placeholder, Amount(v, 4))
		assert.Equal(t, Placeholder, Count(v))
		assert.Equal(t, Placeholder, Timestamp(v))
	}
}

func TestUSD(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{0, "$0.00"},
		{1234.567, "$1,234.57"},
		{-1234.567, "-$1,234.57"},
		{0.5, "$0.50"},
		{1000000, "$1,000,000.00"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, USD(tt.input))
		})
	}
}

func TestFixed(t *testing.T) {
	assert.Equal(t, "1234.57", Fixed(1234.567, 2))
	assert.Equal(t, "3", Fixed(3.2, 0))
	assert.Equal(t, "0.1000", Fixed(0.1, 4))
	assert.Equal(t, "1", Fixed(1, -3))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "+1.23%", Percent(1.234))
	assert.Equal(t, "+0.00%", Percent(0))
	assert.Equal(t, "+0.00%", Percent(math.Copysign(0, -1)))
	assert.Equal(t, "-4.50%", Percent(-4.5))
}

func TestShare(t *testing.T) {
	assert.Equal(t, "66.70%", Share(66.7))
	assert.Equal(t, "0.00%", Share(0))
}

func TestCompactBoundaries(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{999, "999.00"},
		{1000, "1.00K"},
		{1000000, "1.00M"},
		{1000000000, "1.00B"},
		{2500000000, "2.50B"},
		{-1500, "-1.50K"},
		{-2000000, "-2.00M"},
		{0, "0.00"},
		{999.994, "999.99"},
		{999.999, "1.00K"},
		{999999, "1.00M"},
		{-999999, "-1.00M"},
		{999999999.9, "1.00B"},
		{999994, "999.99K"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, Compact(tt.input, 2))
		})
	}
}

func TestAmount(t *testing.T) {
	assert.Equal(t, "1,234.5", Amount(1234.5, 4))
	assert.Equal(t, "1,000", Amount(1000, 4))
	assert.Equal(t, "0.1235", Amount(0.123456, 4))
	assert.Equal(t, "0", Amount(0.00001, 4))
	assert.Equal(t, "12", Amount(12.4, 0))
}

func TestCount(t *testing.T) {
	assert.Equal(t, "0", Count(0))
	assert.Equal(t, "1,234", Count(1234))
	assert.Equal(t, "1,234,567", Count(1234567))
}

func TestTimestamp(t *testing.T) {
	assert.Equal(t, "2024-01-01", Timestamp(1704067200000))
	assert.Equal(t, Placeholder, Timestamp(0))
	assert.Equal(t, Placeholder, Timestamp(-5))
}
