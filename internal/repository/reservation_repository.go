package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// ReservationRepo provides CRUD operations for reservations.  Dates
// and times are formatted in SQL so that the model carries the same
// YYYY-MM-DD and HH:MM strings the API exchanges with clients,
// regardless of how the driver would otherwise scan DATE and TIME
// columns.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// DB exposes the underlying handle so callers can open transactions
// spanning multiple repositories.
func (r *ReservationRepo) DB() *sql.DB { return r.db }

// reservationCols is the column list shared by every SELECT in this
// repository.  DATE_FORMAT/TIME_FORMAT keep the wire formats stable.
const reservationCols = `id, first_name, last_name, mobile_number,
       DATE_FORMAT(reservation_date, '%Y-%m-%d'),
       TIME_FORMAT(reservation_time, '%H:%i'),
       people, status, created_at, updated_at`

// scanReservation reads one row into a model.Reservation.
func scanReservation(row interface{ Scan(...any) error }) (*model.Reservation, error) {
	var res model.Reservation
	err := row.Scan(
		&res.ID, &res.FirstName, &res.LastName, &res.MobileNumber,
		&res.ReservationDate, &res.ReservationTime,
		&res.People, &res.Status, &res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Create inserts a new reservation and populates the generated ID,
// timestamps and stored defaults on the provided record.  Status must
// already be set by the caller; the lifecycle manager forces booked.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) error {
	const q = `INSERT INTO reservations
	           (first_name, last_name, mobile_number, reservation_date, reservation_time, people, status)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q,
		res.FirstName, res.LastName, res.MobileNumber,
		res.ReservationDate, res.ReservationTime, res.People, res.Status,
	)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	// Query back the full row to populate timestamps and defaults
	stored, err := r.GetByID(ctx, uint64(id))
	if err != nil {
		return err
	}
	*res = *stored
	return nil
}

// GetByID returns the reservation with the given ID or
// ErrReservationNotFound when it does not exist.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	const q = `SELECT ` + reservationCols + ` FROM reservations WHERE id = ?`
	res, err := scanReservation(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	return res, err
}

// ListByDate returns all reservations for a calendar date that are
// still active (not finished, not cancelled), ordered by reservation
// time ascending.
func (r *ReservationRepo) ListByDate(ctx context.Context, date string) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationCols + `
	           FROM reservations
	           WHERE reservation_date = ? AND status NOT IN (?, ?)
	           ORDER BY reservation_time ASC`
	rows, err := r.db.QueryContext(ctx, q, date, model.StatusFinished, model.StatusCancelled)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := make([]model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *res)
	}
	return list, rows.Err()
}

// SearchByPhone returns reservations whose mobile number contains the
// given digit fragment, ordered by reservation date ascending.  Stored
// numbers are normalized by stripping common punctuation before the
// substring match, so partial numbers in any format still hit.
func (r *ReservationRepo) SearchByPhone(ctx context.Context, digits string) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationCols + `
	           FROM reservations
	           WHERE REPLACE(REPLACE(REPLACE(REPLACE(REPLACE(mobile_number,
	                 '(', ''), ')', ''), ' ', ''), '-', ''), '.', '') LIKE ?
	           ORDER BY reservation_date ASC`
	rows, err := r.db.QueryContext(ctx, q, "%"+digits+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := make([]model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *res)
	}
	return list, rows.Err()
}

// Update persists every mutable field of the reservation and reloads
// the stored row (including the new updated_at) into the record.
func (r *ReservationRepo) Update(ctx context.Context, res *model.Reservation) error {
	const q = `UPDATE reservations
	           SET first_name = ?, last_name = ?, mobile_number = ?,
	               reservation_date = ?, reservation_time = ?, people = ?, status = ?
	           WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q,
		res.FirstName, res.LastName, res.MobileNumber,
		res.ReservationDate, res.ReservationTime, res.People, res.Status, res.ID,
	); err != nil {
		return err
	}
	stored, err := r.GetByID(ctx, res.ID)
	if err != nil {
		return err
	}
	*res = *stored
	return nil
}

// UpdateStatus sets only the status column and returns the stored
// record.  Callers are responsible for transition legality; this is a
// plain write.
func (r *ReservationRepo) UpdateStatus(ctx context.Context, id uint64, status string) (*model.Reservation, error) {
	const q = `UPDATE reservations SET status = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, status, id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// UpdateStatusTx is UpdateStatus within the scope of an existing
// transaction, additionally guarded by the expected current statuses.
// It returns ErrConflict when the reservation is no longer in one of
// the expected states, which aborts the caller's transaction.
func UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status string, expect ...string) error {
	q := `UPDATE reservations SET status = ? WHERE id = ?`
	args := []any{status, id}
	if len(expect) > 0 {
		q += ` AND status IN (?` + repeat(",?", len(expect)-1) + `)`
		for _, s := range expect {
			args = append(args, s)
		}
	}
	result, err := tx.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrConflict
	}
	return nil
}

// repeat builds n copies of s, used for IN-clause placeholders.
func repeat(s string, n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += s
	}
	return out
}
