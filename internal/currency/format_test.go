package currency

import (
	"math"
	"testing"
)

func TestFormatCurrency(t *testing.T) {
	cases := []struct {
		name   string
		amount float64
		want   string
	}{
		{"grouping and padding", 1234.5, "1.234,50"},
		{"zero", 0, "0,00"},
		{"sub thousand", 850, "850,00"},
		{"millions", 1234567.89, "1.234.567,89"},
		{"negative", -42.5, "-42,50"},
		{"nan", math.NaN(), "0,00"},
		{"positive infinity", math.Inf(1), "0,00"},
		{"negative infinity", math.Inf(-1), "0,00"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatCurrency(tc.amount); got != tc.want {
				t.Fatalf("FormatCurrency(%v) = %q, want %q", tc.amount, got, tc.want)
			}
		})
	}
}

func TestFormatCurrencyString(t *testing.T) {
	if got := FormatCurrencyString("1234.5"); got != "1.234,50" {
		t.Fatalf("numeric string: got %q", got)
	}
	if got := FormatCurrencyString("  150  "); got != "150,00" {
		t.Fatalf("padded string: got %q", got)
	}
	if got := FormatCurrencyString("abc"); got != "0,00" {
		t.Fatalf("garbage string: got %q", got)
	}
	if got := FormatCurrencyString(""); got != "0,00" {
		t.Fatalf("empty string: got %q", got)
	}
}

func TestFormatCompactCurrency(t *testing.T) {
	cases := []struct {
		name   string
		amount float64
		want   string
	}{
		{"millions", 1500000, "1,5M"},
		{"thousands", 2500, "2,5K"},
		{"exact thousand", 1000, "1,0K"},
		{"below thousand delegates", 999.5, "999,50"},
		{"nan", math.NaN(), "0,00"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatCompactCurrency(tc.amount); got != tc.want {
				t.Fatalf("FormatCompactCurrency(%v) = %q, want %q", tc.amount, got, tc.want)
			}
		})
	}
}
