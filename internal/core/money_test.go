package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFromMilliunits(t *testing.T) {
	cases := []struct {
		in  int64
		out string
	}{
		{0, "0"},
		{1000, "1"},
		{500000, "500"},
		{1234, "1.234"},
		{-20500, "-20.5"},
		{1, "0.001"},
	}
	for _, tc := range cases {
		got := FromMilliunits(tc.in)
		if got.String() != tc.out {
			t.Fatalf("%d expected %s, got %s", tc.in, tc.out, got.String())
		}
	}
}

func TestNormalizeRoundTrip(t *testing.T) {
	for _, x := range []int64{0, 1, 7, 500, 123456, -42} {
		r := CategoryRecord{Name: "c", Budgeted: 1000 * x, Balance: 1000 * (x - 1), Activity: -1000 * x}
		got := Normalize(r)
		if !got.Budgeted.Equal(decimal.NewFromInt(x)) {
			t.Fatalf("budgeted %d: got %s", x, got.Budgeted)
		}
		if !got.Balance.Equal(decimal.NewFromInt(x - 1)) {
			t.Fatalf("balance %d: got %s", x, got.Balance)
		}
		if !got.Activity.Equal(decimal.NewFromInt(-x)) {
			t.Fatalf("activity %d: got %s", x, got.Activity)
		}
		if got.Name != "c" {
			t.Fatalf("name not carried: %q", got.Name)
		}
	}
}

func TestNormalizeAllPreservesOrder(t *testing.T) {
	in := []CategoryRecord{{Name: "b"}, {Name: "a"}, {Name: "c"}}
	out := NormalizeAll(in)
	if len(out) != 3 || out[0].Name != "b" || out[1].Name != "a" || out[2].Name != "c" {
		t.Fatalf("unexpected order: %+v", out)
	}
}

func TestFormatCurrency(t *testing.T) {
	cases := []struct {
		in  string
		out string
	}{
		{"300", "$300.00"},
		{"200.5", "$200.50"},
		{"0.005", "$0.01"},
		{"-20.5", "-$20.50"},
		{"0", "$0.00"},
	}
	for _, tc := range cases {
		got := FormatCurrency(decimal.RequireFromString(tc.in))
		if got != tc.out {
			t.Fatalf("%s expected %s, got %s", tc.in, tc.out, got)
		}
	}
	if FormatAmount(decimal.RequireFromString("12.3")) != "12.30" {
		t.Fatalf("FormatAmount should pad to two decimals")
	}
}
