package model

import "strings"

// Reservation lifecycle states.  Stored lowercase; comparison of
// client input is case-insensitive and normalized on the way in.
const (
	StatusBooked    = "booked"
	StatusSeated    = "seated"
	StatusFinished  = "finished"
	StatusCancelled = "cancelled"
)

// Table occupancy states.
const (
	TableFree     = "free"
	TableOccupied = "occupied"
)

// reservationTransitions maps a target status to the statuses a
// reservation may hold when moving there.  finished and cancelled are
// terminal: nothing maps out of them.
var reservationTransitions = map[string][]string{
	StatusBooked:    {StatusBooked},
	StatusSeated:    {StatusBooked},
	StatusFinished:  {StatusBooked, StatusSeated},
	StatusCancelled: {StatusBooked, StatusSeated},
}

// NormalizeStatus lowercases and trims a client-supplied status value.
func NormalizeStatus(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// KnownStatus reports whether s (already normalized) is one of the
// four reservation states.
func KnownStatus(s string) bool {
	_, ok := reservationTransitions[s]
	return ok
}

// TerminalStatus reports whether a reservation in state s can never
// change state again.
func TerminalStatus(s string) bool {
	return s == StatusFinished || s == StatusCancelled
}

// CanTransition reports whether a reservation currently in `from` may
// move to `to`.  Both arguments must already be normalized.
func CanTransition(from, to string) bool {
	allowed, ok := reservationTransitions[to]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == from {
			return true
		}
	}
	return false
}
