package numeric

import "testing"

func TestCoerce(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
	}{
		{"", 0},
		{"   ", 0},
		{"1000", 1000},
		{"1,250,000", 1250000},
		{"₩5,000", 5000},
		{"12.5", 12.5},
		{" 42 ", 42},
		{"n/a", 0},
		{"10개", 0},
		{"NaN", 0},
		{"nan", 0},
		{"Inf", 0},
		{"+Inf", 0},
		{"-Infinity", 0},
	}
	for _, tc := range cases {
		if got := Coerce(tc.raw); got != tc.want {
			t.Fatalf("Coerce(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func TestCoerceInt(t *testing.T) {
	if got := CoerceInt("10.9"); got != 10 {
		t.Fatalf("CoerceInt truncation: got %d, want 10", got)
	}
	if got := CoerceInt("-"); got != 0 {
		t.Fatalf("CoerceInt invalid: got %d, want 0", got)
	}
}
