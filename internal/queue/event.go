// Package queue defines message payloads exchanged over the message broker.
package queue

// LifecycleQueueName is the durable queue carrying reservation
// lifecycle events.
const LifecycleQueueName = "reservation.lifecycle"

// Event types published to the lifecycle queue.
const (
	EventSeated   = "seated"
	EventFinished = "finished"
)

// ReservationLifecycleEvent is published whenever a reservation is
// seated at or finished from a table.  It carries enough information
// for downstream consumers to log or notify without querying the
// primary database.
type ReservationLifecycleEvent struct {
	Type            string `json:"type"`             // seated or finished
	ReservationID   uint64 `json:"reservation_id"`   // reservation affected
	TableID         uint64 `json:"table_id"`         // table affected
	TableName       string `json:"table_name"`       // display name of the table
	FirstName       string `json:"first_name"`       // guest first name
	LastName        string `json:"last_name"`        // guest last name
	People          int    `json:"people"`           // party size
	ReservationDate string `json:"reservation_date"` // booking date
	ReservationTime string `json:"reservation_time"` // booking time
	OccurredAt      string `json:"occurred_at"`      // RFC3339 timestamp of the transition
}
