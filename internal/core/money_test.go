package core

import (
	"errors"
	"strings"
	"testing"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"12,50", 1250, true},
		{"12.50", 1250, true},
		{" 2.50 ", 250, true},
		{"1 000", 100000, true},
		{"0.01", 1, true},
		{"0.005", 1, true}, // rounds, does not truncate
		{"12,345", 1235, true},
		{"1e2", 10000, true},
		{"0", 0, false},
		{"0.004", 0, false}, // rounds to zero
		{"-5", 0, false},
		{"", 0, false},
		{"   ", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"1,234.56", 0, false}, // comma is only a decimal separator
		{"Infinity", 0, false},
		{"NaN", 0, false},
		{"99999999999999999999", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if !errors.Is(err, ErrInvalidAmount) {
				t.Fatalf("%q expected ErrInvalidAmount, got %d (err=%v)", tc.in, got, err)
			}
		}
	}
}

func TestFormatBani(t *testing.T) {
	got := FormatBani(123456)
	if !strings.Contains(got, "1") || !strings.Contains(got, "234") || !strings.Contains(got, "56") {
		t.Fatalf("unexpected format %q", got)
	}
	if FormatBani(100) == FormatBani(-100) {
		t.Fatalf("negative amounts must render differently")
	}
}
