// Package validate implements the request validation rules for
// reservations and tables.  A rule is a predicate over the raw request
// payload that either passes or produces a Rejection carrying the HTTP
// status and message to return.  Rules are evaluated left to right and
// short-circuit on the first failure, so ordering encodes precedence
// (shape checks before value checks before business rules).
package validate

import (
	"fmt"
	"math"
	"net/http"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// Rejection is the structured outcome of a failed rule.  Handlers
// translate it directly into an HTTP error response.
type Rejection struct {
	Status  int    // HTTP status code, 400 for every rule in this package
	Message string // human-readable reason, surfaced to the client
}

// Error implements the error interface so a Rejection can travel
// through error-returning call chains when convenient.
func (r *Rejection) Error() string { return r.Message }

// Reject builds a Rejection with the given status and message.
func Reject(status int, format string, args ...any) *Rejection {
	return &Rejection{Status: status, Message: fmt.Sprintf(format, args...)}
}

// Rule checks one aspect of a payload.  It returns nil when the
// payload passes.
type Rule func(data map[string]any) *Rejection

// Run evaluates rules in order and returns the first rejection, or nil
// when every rule passes.
func Run(data map[string]any, rules ...Rule) *Rejection {
	for _, rule := range rules {
		if rej := rule(data); rej != nil {
			return rej
		}
	}
	return nil
}

// HasFields requires each named field to be present and non-empty.
func HasFields(fields ...string) Rule {
	return func(data map[string]any) *Rejection {
		for _, f := range fields {
			v, ok := data[f]
			if !ok || v == nil {
				return Reject(http.StatusBadRequest, "A '%s' property is required.", f)
			}
			if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
				return Reject(http.StatusBadRequest, "A '%s' property is required.", f)
			}
		}
		return nil
	}
}

// OnlyFields rejects any payload key outside the allowed set.  Keys
// are inspected in sorted order so the reported offender is stable.
func OnlyFields(allowed ...string) Rule {
	set := make(map[string]struct{}, len(allowed))
	for _, f := range allowed {
		set[f] = struct{}{}
	}
	return func(data map[string]any) *Rejection {
		keys := make([]string, 0, len(data))
		for k := range data {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if _, ok := set[k]; !ok {
				return Reject(http.StatusBadRequest,
					"Invalid property: \"%s\". Valid properties are: %s", k, strings.Join(allowed, ", "))
			}
		}
		return nil
	}
}

// DateValid requires the field to parse as a real calendar date in
// YYYY-MM-DD form.
func DateValid(field string) Rule {
	return func(data map[string]any) *Rejection {
		if _, err := time.Parse("2006-01-02", String(data, field)); err != nil {
			return Reject(http.StatusBadRequest, "Invalid field: '%s' must be a valid date.", field)
		}
		return nil
	}
}

// timePattern accepts 24-hour clock times with an optional leading
// zero on the hour (9:00 and 09:00 are both valid).
var timePattern = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):([0-5][0-9])$`)

// TimeValid requires the field to be a well-formed HH:MM time of day.
func TimeValid(field string) Rule {
	return func(data map[string]any) *Rejection {
		if !timePattern.MatchString(String(data, field)) {
			return Reject(http.StatusBadRequest, "Invalid field: '%s' must be a valid time.", field)
		}
		return nil
	}
}

// Opening and closing minutes of the business day.  Both bounds are
// inclusive; 21:30 is the last bookable minute.
const (
	openMinute  = 10*60 + 30
	closeMinute = 21*60 + 30
)

// WithinBusinessHours requires the time to fall inside the bookable
// window.  It assumes TimeValid has already run.
func WithinBusinessHours(field string) Rule {
	return func(data map[string]any) *Rejection {
		m, ok := minuteOfDay(String(data, field))
		if !ok || m < openMinute || m > closeMinute {
			return Reject(http.StatusBadRequest,
				"Invalid field: '%s' must be between 10:30 and 21:30.", field)
		}
		return nil
	}
}

// NotTuesday rejects dates falling on a Tuesday, when the restaurant
// is closed.  The weekday is derived in local time, matching how the
// future-only comparison treats the pair of fields.
func NotTuesday(field string) Rule {
	return func(data map[string]any) *Rejection {
		d, err := time.ParseInLocation("2006-01-02", String(data, field), time.Local)
		if err != nil {
			return Reject(http.StatusBadRequest, "Invalid field: '%s' must be a valid date.", field)
		}
		if d.Weekday() == time.Tuesday {
			return Reject(http.StatusBadRequest, "The restaurant is closed on Tuesdays.")
		}
		return nil
	}
}

// FutureOnly requires the combined local date-time to be strictly
// later than now.  The caller supplies now so the offset in effect at
// submission is the one used for the comparison.
func FutureOnly(dateField, timeField string, now time.Time) Rule {
	return func(data map[string]any) *Rejection {
		m, ok := minuteOfDay(String(data, timeField))
		if !ok {
			return Reject(http.StatusBadRequest, "Invalid field: '%s' must be a valid time.", timeField)
		}
		d, err := time.ParseInLocation("2006-01-02", String(data, dateField), now.Location())
		if err != nil {
			return Reject(http.StatusBadRequest, "Invalid field: '%s' must be a valid date.", dateField)
		}
		at := d.Add(time.Duration(m) * time.Minute)
		if !at.After(now) {
			return Reject(http.StatusBadRequest, "Reservation must be for a future date and time.")
		}
		return nil
	}
}

// PositiveInteger requires the field to be a JSON number carrying an
// integral value greater than zero.  Strings are not coerced.
func PositiveInteger(field string) Rule {
	return func(data map[string]any) *Rejection {
		if n, ok := Int(data, field); !ok || n <= 0 {
			return Reject(http.StatusBadRequest,
				"Invalid field: '%s' must be a number greater than 0.", field)
		}
		return nil
	}
}

// StatusOnCreate allows the status field to be omitted but requires it
// to be the string booked when supplied.  Any other value, including
// non-string ones, is rejected.
func StatusOnCreate(field string) Rule {
	return func(data map[string]any) *Rejection {
		v, ok := data[field]
		if !ok || v == nil {
			return nil
		}
		s, isStr := v.(string)
		if isStr && s == "" {
			return nil
		}
		if !isStr || model.NormalizeStatus(s) != model.StatusBooked {
			return Reject(http.StatusBadRequest,
				"Invalid field: '%s' must be 'booked' for a new reservation.", field)
		}
		return nil
	}
}

// StatusKnown requires the status field, when present, to name one of
// the four lifecycle states.  Comparison is case-insensitive.
func StatusKnown(field string) Rule {
	return func(data map[string]any) *Rejection {
		v, ok := data[field]
		if !ok || v == nil {
			return nil
		}
		s, isStr := v.(string)
		if !isStr || !model.KnownStatus(model.NormalizeStatus(s)) {
			return Reject(http.StatusBadRequest,
				"Invalid field: '%s' must be one of booked, seated, finished, or cancelled.", field)
		}
		return nil
	}
}

// MinLength requires a string field to contain at least min characters.
func MinLength(field string, min int) Rule {
	return func(data map[string]any) *Rejection {
		if len([]rune(String(data, field))) < min {
			return Reject(http.StatusBadRequest,
				"Invalid field: '%s' must be at least %d characters.", field, min)
		}
		return nil
	}
}

// String extracts a string value from the payload, returning "" for
// absent or non-string values.
func String(data map[string]any, field string) string {
	s, _ := data[field].(string)
	return s
}

// Int extracts an integral numeric value from the payload.  JSON
// numbers decode as float64, so integral floats are accepted; values
// with a fractional part are not.
func Int(data map[string]any, field string) (int, bool) {
	switch n := data[field].(type) {
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	}
	return 0, false
}

// minuteOfDay converts an HH:MM string into minutes since midnight.
func minuteOfDay(s string) (int, bool) {
	m := timePattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	var h, min int
	fmt.Sscanf(m[1], "%d", &h)
	fmt.Sscanf(m[2], "%d", &min)
	return h*60 + min, true
}
