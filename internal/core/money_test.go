package core

import "testing"

func TestParseAmountToCents(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"150.00", 15000, true},
		{"150,00", 15000, true},
		{"800", 80000, true},
		{"0", 0, true},
		{"1200.5", 120050, true},
		{".5", 50, true},
		{"12.345", 1234, true}, // rounds down
		{"12.346", 1235, true}, // rounds up
		{"-95.40", -9540, true},
		{"+3.10", 310, true},
		{" 42.00 ", 4200, true},
		{"", 0, false},
		{"abc", 0, false},
		{"12.3.4", 0, false},
		{"12x", 0, false},
		{"1e3", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseAmountToCents(tc.in)
		if tc.ok && err != nil {
			t.Fatalf("ParseAmountToCents(%q): unexpected error %v", tc.in, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("ParseAmountToCents(%q): expected error, got %d", tc.in, got)
		}
		if tc.ok && got != tc.want {
			t.Fatalf("ParseAmountToCents(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestMoneyReais(t *testing.T) {
	if got := (Money{Cents: 123456}).Reais(); got != 1234.56 {
		t.Fatalf("Reais() = %v, want 1234.56", got)
	}
}
