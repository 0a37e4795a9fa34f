package model

import "time"

// Table describes a physical table on the restaurant floor.  A table
// is either free or occupied; while occupied it references the
// reservation currently seated at it.  The reference is non-nil
// exactly when the status is occupied.
//
// Fields:
//  ID            – primary key identifier.
//  TableName     – display name, at least two characters.
//  Capacity      – number of guests the table seats, always positive.
//  Status        – occupancy state (free, occupied).
//  ReservationID – reservation seated here, nil when free.
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type Table struct {
	ID            uint64    `json:"table_id"`       // tables.id
	TableName     string    `json:"table_name"`     // tables.table_name
	Capacity      int       `json:"capacity"`       // tables.capacity
	Status        string    `json:"status"`         // tables.status
	ReservationID *uint64   `json:"reservation_id"` // tables.reservation_id (nullable)
	CreatedAt     time.Time `json:"created_at"`     // tables.created_at
	UpdatedAt     time.Time `json:"updated_at"`     // tables.updated_at
}
