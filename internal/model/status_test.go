package model

import "testing"

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from  string
		to    string
		valid bool
	}{
		{StatusBooked, StatusSeated, true},
		{StatusBooked, StatusFinished, true},
		{StatusBooked, StatusCancelled, true},
		{StatusBooked, StatusBooked, true},
		{StatusSeated, StatusFinished, true},
		{StatusSeated, StatusCancelled, true},
		{StatusSeated, StatusBooked, false}, // never back to booked
		{StatusFinished, StatusBooked, false},
		{StatusFinished, StatusSeated, false},
		{StatusFinished, StatusCancelled, false},
		{StatusCancelled, StatusBooked, false},
		{StatusCancelled, StatusSeated, false},
		{"unknown", StatusSeated, false},
		{StatusBooked, "unknown", false},
	}
	for _, tt := range cases {
		if got := CanTransition(tt.from, tt.to); got != tt.valid {
			t.Fatalf("CanTransition(%q, %q)=%v, want %v", tt.from, tt.to, got, tt.valid)
		}
	}
}

func TestTerminalStatus(t *testing.T) {
	for status, terminal := range map[string]bool{
		StatusBooked:    false,
		StatusSeated:    false,
		StatusFinished:  true,
		StatusCancelled: true,
	} {
		if got := TerminalStatus(status); got != terminal {
			t.Fatalf("TerminalStatus(%q)=%v, want %v", status, got, terminal)
		}
	}
}

func TestNormalizeStatus(t *testing.T) {
	cases := map[string]string{
		"Booked":     StatusBooked,
		"  SEATED  ": StatusSeated,
		"cancelled":  StatusCancelled,
		"FiNiShEd":   StatusFinished,
	}
	for in, want := range cases {
		if got := NormalizeStatus(in); got != want {
			t.Fatalf("NormalizeStatus(%q)=%q, want %q", in, got, want)
		}
	}
}

func TestKnownStatus(t *testing.T) {
	for _, s := range []string{StatusBooked, StatusSeated, StatusFinished, StatusCancelled} {
		if !KnownStatus(s) {
			t.Fatalf("KnownStatus(%q)=false", s)
		}
	}
	if KnownStatus("waiting") {
		t.Fatal("KnownStatus accepted an unknown state")
	}
}
