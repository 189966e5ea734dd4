package cli

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatMoney(t *testing.T) {
	cases := []struct {
		amount int64
		want   string
	}{
		{0, "$0"},
		{999, "$999"},
		{1234, "$1,234"},
		{1234567, "$1,234,567"},
		{-50, "-$50"},
	}
	for _, tc := range cases {
		if got := FormatMoney("$", tc.amount); got != tc.want {
			t.Errorf("FormatMoney(%d) = %q, want %q", tc.amount, got, tc.want)
		}
	}
}

func TestFormatDecimal(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1000", "$1,000"},
		{"49.5", "$49.50"},
		{"-12.25", "-$12.25"},
		{"0", "$0"},
	}
	for _, tc := range cases {
		d := decimal.RequireFromString(tc.in)
		if got := FormatDecimal("$", d); got != tc.want {
			t.Errorf("FormatDecimal(%s) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatSignedPercent(t *testing.T) {
	if got := FormatSignedPercent(33.37); got != "+33.4%" {
		t.Errorf("FormatSignedPercent(33.37) = %q", got)
	}
	if got := FormatSignedPercent(-50); got != "-50.0%" {
		t.Errorf("FormatSignedPercent(-50) = %q", got)
	}
}

func TestFormatHour(t *testing.T) {
	cases := []struct {
		hour int
		want string
	}{
		{0, "12am"}, {3, "3am"}, {12, "12pm"}, {13, "1pm"}, {23, "11pm"}, {-1, "???"},
	}
	for _, tc := range cases {
		if got := FormatHour(tc.hour); got != tc.want {
			t.Errorf("FormatHour(%d) = %q, want %q", tc.hour, got, tc.want)
		}
	}
}
