package money

import (
	"math"
	"testing"
)

func TestFormatNaira(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "₦0"},
		{500, "₦500"},
		{45000, "₦45,000"},
		{1234567, "₦1,234,567"},
		{12500.5, "₦12,500.50"},
		{0.99, "₦0.99"},
		{math.NaN(), "₦0"},
		{math.Inf(1), "₦0"},
	}

	for _, tt := range tests {
		if got := FormatNaira(tt.amount); got != tt.want {
			t.Errorf("FormatNaira(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestToKobo(t *testing.T) {
	tests := []struct {
		amount float64
		want   int64
	}{
		{0, 0},
		{1, 100},
		{12500.5, 1250050},
		{0.015, 2},
	}

	for _, tt := range tests {
		if got := ToKobo(tt.amount); got != tt.want {
			t.Errorf("ToKobo(%v) = %d, want %d", tt.amount, got, tt.want)
		}
	}
}
