package money

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumberToWords(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "Zero"},
		{1, "One"},
		{13, "Thirteen"},
		{20, "Twenty"},
		{21, "Twenty-One"},
		{100, "One Hundred"},
		{115, "One Hundred Fifteen"},
		{999, "Nine Hundred Ninety-Nine"},
		{1000, "One Thousand"},
		{1050, "One Thousand Fifty"},
		{262, "Two Hundred Sixty-Two"},
		{1_000_000, "One Million"},
		{2_500_310, "Two Million Five Hundred Thousand Three Hundred Ten"},
		{1_000_000_000, "One Billion"},
		{1_000_000_000_000, "One Trillion"},
		{1_000_000_000_000_000, "One Quadrillion"},
		{1_000_000_000_000_000_000, "One Quintillion"},
		{math.MaxInt64, "Nine Quintillion Two Hundred Twenty-Three Quadrillion " +
			"Three Hundred Seventy-Two Trillion Thirty-Six Billion " +
			"Eight Hundred Fifty-Four Million Seven Hundred Seventy-Five Thousand " +
			"Eight Hundred Seven"},
		{-5, "Zero"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NumberToWords(tt.in), "n=%d", tt.in)
	}
}

func TestFormatThousands(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{999.9, "999.90"},
		{1000, "1,000.00"},
		{1234567.5, "1,234,567.50"},
		{-1234.5, "-1,234.50"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatThousands(tt.in))
	}
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1040.00, Round2(1040.000001))
	assert.Equal(t, 2.35, Round2(2.345))
	assert.Equal(t, -2.35, Round2(-2.345))
	assert.Equal(t, 0.0, Round2(math.Inf(1))) // +Inf clamps
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, 0.0, Sanitize(-5))
	assert.Equal(t, 12.5, Sanitize(12.5))
}
