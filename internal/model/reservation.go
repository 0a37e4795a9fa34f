package model

import "time"

// Reservation records a party's booking for a given date and time.
// The date and time are kept as strings in the wire formats the API
// accepts (YYYY-MM-DD and HH:MM) so that no timezone conversion
// happens between the database and the client.
//
// Fields:
//  ID              – primary key identifier.
//  FirstName       – guest first name.
//  LastName        – guest last name.
//  MobileNumber    – free-form contact number (digits and punctuation).
//  ReservationDate – calendar date of the booking (YYYY-MM-DD).
//  ReservationTime – local time of day of the booking (HH:MM).
//  People          – party size, always positive.
//  Status          – lifecycle state (booked, seated, finished, cancelled).
//  CreatedAt       – creation timestamp.
//  UpdatedAt       – last update timestamp.
type Reservation struct {
	ID              uint64    `json:"reservation_id"`   // reservations.id
	FirstName       string    `json:"first_name"`       // reservations.first_name
	LastName        string    `json:"last_name"`        // reservations.last_name
	MobileNumber    string    `json:"mobile_number"`    // reservations.mobile_number
	ReservationDate string    `json:"reservation_date"` // reservations.reservation_date (DATE)
	ReservationTime string    `json:"reservation_time"` // reservations.reservation_time (TIME)
	People          int       `json:"people"`           // reservations.people
	Status          string    `json:"status"`           // reservations.status
	CreatedAt       time.Time `json:"created_at"`       // reservations.created_at
	UpdatedAt       time.Time `json:"updated_at"`       // reservations.updated_at
}
