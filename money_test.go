package smartwallet

import "testing"

func TestFormatAmount(t *testing.T) {
	testCases := []struct {
		amount   float64
		currency string
		want     string
	}{
		{1234.56, "INR", "₹1,234.56"},
		{1234.56, "", "₹1,234.56"},
		{0, "INR", "₹0.00"},
		{1234.56, "USD", "$1,234.56"},
		{1234.56, "NOPE", "₹1,234.56"}, // unknown currency falls back
	}
	for _, tc := range testCases {
		if got := FormatAmount(tc.amount, tc.currency); got != tc.want {
			t.Errorf("FormatAmount(%v, %q) = %q, want %q", tc.amount, tc.currency, got, tc.want)
		}
	}
}
