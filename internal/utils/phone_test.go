package utils

import "testing"

func TestNormalizeDigits(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"555-0100", "5550100"},
		{"(555) 010-0", "5550100"},
		{"555.0100", "5550100"},
		{"+1 555 0100", "15550100"},
		{"no digits", ""},
		{"", ""},
	}
	for _, tt := range cases {
		if got := NormalizeDigits(tt.in); got != tt.want {
			t.Fatalf("NormalizeDigits(%q)=%q, want %q", tt.in, got, tt.want)
		}
	}
}
