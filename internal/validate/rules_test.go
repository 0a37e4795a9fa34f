package validate

import (
	"testing"
	"time"
)

func TestHasFields(t *testing.T) {
	cases := []struct {
		name string
		data map[string]any
		want string // expected message, "" means pass
	}{
		{"all present", map[string]any{"first_name": "Ann", "people": float64(2)}, ""},
		{"missing", map[string]any{"first_name": "Ann"}, "A 'people' property is required."},
		{"empty string", map[string]any{"first_name": "", "people": float64(2)}, "A 'first_name' property is required."},
		{"explicit null", map[string]any{"first_name": nil, "people": float64(2)}, "A 'first_name' property is required."},
	}
	for _, tt := range cases {
		rej := Run(tt.data, HasFields("first_name", "people"))
		if tt.want == "" && rej != nil {
			t.Fatalf("%s: unexpected rejection %q", tt.name, rej.Message)
		}
		if tt.want != "" {
			if rej == nil {
				t.Fatalf("%s: expected rejection", tt.name)
			}
			if rej.Message != tt.want || rej.Status != 400 {
				t.Fatalf("%s: got (%d, %q), want (400, %q)", tt.name, rej.Status, rej.Message, tt.want)
			}
		}
	}
}

func TestOnlyFields(t *testing.T) {
	rule := OnlyFields("first_name", "last_name")
	if rej := rule(map[string]any{"first_name": "Ann"}); rej != nil {
		t.Fatalf("unexpected rejection %q", rej.Message)
	}
	rej := rule(map[string]any{"first_name": "Ann", "nickname": "A"})
	if rej == nil {
		t.Fatal("expected rejection for unknown field")
	}
	want := `Invalid property: "nickname". Valid properties are: first_name, last_name`
	if rej.Message != want {
		t.Fatalf("got %q, want %q", rej.Message, want)
	}
}

func TestDateValid(t *testing.T) {
	cases := []struct {
		date  string
		valid bool
	}{
		{"2026-09-15", true},
		{"2026-02-29", false}, // not a leap year
		{"2026-13-01", false},
		{"not-a-date", false},
		{"", false},
	}
	for _, tt := range cases {
		rej := DateValid("reservation_date")(map[string]any{"reservation_date": tt.date})
		if (rej == nil) != tt.valid {
			t.Fatalf("DateValid(%q): got valid=%v, want %v", tt.date, rej == nil, tt.valid)
		}
	}
}

func TestTimeValid(t *testing.T) {
	cases := []struct {
		time  string
		valid bool
	}{
		{"10:30", true},
		{"9:05", true},
		{"00:00", true},
		{"23:59", true},
		{"24:00", false},
		{"12:60", false},
		{"12:5", false},
		{"noonish", false},
		{"", false},
	}
	for _, tt := range cases {
		rej := TimeValid("reservation_time")(map[string]any{"reservation_time": tt.time})
		if (rej == nil) != tt.valid {
			t.Fatalf("TimeValid(%q): got valid=%v, want %v", tt.time, rej == nil, tt.valid)
		}
	}
}

func TestWithinBusinessHours(t *testing.T) {
	cases := []struct {
		time  string
		valid bool
	}{
		{"10:29", false},
		{"10:30", true}, // opening minute is bookable
		{"15:00", true},
		{"21:30", true}, // closing minute is bookable
		{"21:31", false},
		{"09:00", false},
		{"22:00", false},
	}
	for _, tt := range cases {
		rej := WithinBusinessHours("reservation_time")(map[string]any{"reservation_time": tt.time})
		if (rej == nil) != tt.valid {
			t.Fatalf("WithinBusinessHours(%q): got valid=%v, want %v", tt.time, rej == nil, tt.valid)
		}
	}
}

func TestNotTuesday(t *testing.T) {
	// 2026-03-03 is a Tuesday, 2026-03-05 a Thursday.
	if rej := NotTuesday("reservation_date")(map[string]any{"reservation_date": "2026-03-03"}); rej == nil {
		t.Fatal("expected rejection for a Tuesday")
	}
	if rej := NotTuesday("reservation_date")(map[string]any{"reservation_date": "2026-03-05"}); rej != nil {
		t.Fatalf("unexpected rejection %q", rej.Message)
	}
}

func TestFutureOnly(t *testing.T) {
	now := time.Date(2026, 3, 5, 12, 0, 0, 0, time.Local)
	cases := []struct {
		date, clock string
		valid       bool
	}{
		{"2026-03-05", "18:00", true},
		{"2026-03-06", "11:00", true},
		{"2026-03-05", "11:00", false},
		{"2026-03-05", "12:00", false}, // strictly later than now required
		{"2026-03-04", "18:00", false},
	}
	for _, tt := range cases {
		rej := FutureOnly("reservation_date", "reservation_time", now)(map[string]any{
			"reservation_date": tt.date,
			"reservation_time": tt.clock,
		})
		if (rej == nil) != tt.valid {
			t.Fatalf("FutureOnly(%s %s): got valid=%v, want %v", tt.date, tt.clock, rej == nil, tt.valid)
		}
	}
}

func TestPositiveInteger(t *testing.T) {
	cases := []struct {
		name  string
		value any
		valid bool
	}{
		{"two", float64(2), true},
		{"one", float64(1), true},
		{"zero", float64(0), false},
		{"negative", float64(-3), false},
		{"fraction", 2.5, false},
		{"string digits", "2", false},
		{"absent", nil, false},
	}
	for _, tt := range cases {
		data := map[string]any{}
		if tt.value != nil {
			data["people"] = tt.value
		}
		rej := PositiveInteger("people")(data)
		if (rej == nil) != tt.valid {
			t.Fatalf("%s: got valid=%v, want %v", tt.name, rej == nil, tt.valid)
		}
	}
}

func TestStatusOnCreate(t *testing.T) {
	rule := StatusOnCreate("status")
	cases := []struct {
		name  string
		data  map[string]any
		valid bool
	}{
		{"omitted", map[string]any{}, true},
		{"booked", map[string]any{"status": "booked"}, true},
		{"booked upper", map[string]any{"status": "Booked"}, true},
		{"seated", map[string]any{"status": "seated"}, false},
		{"finished", map[string]any{"status": "finished"}, false},
		{"numeric", map[string]any{"status": float64(123)}, false},
		{"boolean", map[string]any{"status": true}, false},
	}
	for _, tt := range cases {
		if rej := rule(tt.data); (rej == nil) != tt.valid {
			t.Fatalf("%s: got valid=%v, want %v", tt.name, rej == nil, tt.valid)
		}
	}
}

func TestStatusKnown(t *testing.T) {
	rule := StatusKnown("status")
	for _, s := range []string{"booked", "seated", "finished", "cancelled", "SEATED", "Cancelled"} {
		if rej := rule(map[string]any{"status": s}); rej != nil {
			t.Fatalf("status %q unexpectedly rejected: %q", s, rej.Message)
		}
	}
	if rej := rule(map[string]any{"status": "tentative"}); rej == nil {
		t.Fatal("expected rejection for unknown status")
	}
	if rej := rule(map[string]any{}); rej != nil {
		t.Fatal("absent status should pass; presence is checked separately")
	}
}

func TestMinLength(t *testing.T) {
	rule := MinLength("table_name", 2)
	if rej := rule(map[string]any{"table_name": "Bar #1"}); rej != nil {
		t.Fatalf("unexpected rejection %q", rej.Message)
	}
	if rej := rule(map[string]any{"table_name": "A"}); rej == nil {
		t.Fatal("expected rejection for one-character name")
	}
}

func TestRunShortCircuits(t *testing.T) {
	calls := 0
	counting := func(map[string]any) *Rejection { calls++; return nil }
	failing := func(map[string]any) *Rejection { calls++; return Reject(400, "nope") }
	rej := Run(map[string]any{}, Rule(counting), Rule(failing), Rule(counting))
	if rej == nil || rej.Message != "nope" {
		t.Fatalf("expected the failing rule's rejection, got %+v", rej)
	}
	if calls != 2 {
		t.Fatalf("rules after the first failure must not run; got %d calls", calls)
	}
}
