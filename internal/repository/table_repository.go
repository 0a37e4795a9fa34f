package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// TableRepo provides persistence for restaurant tables and owns the
// two paired writes that couple table occupancy to reservation
// status.  Seat and Finish each run as a single transaction so a
// failure of either write leaves both entities untouched.
type TableRepo struct {
	db *sql.DB
}

// NewTableRepo returns a new TableRepo bound to the given database.
func NewTableRepo(db *sql.DB) *TableRepo { return &TableRepo{db: db} }

// DB exposes the underlying handle so callers can open transactions
// spanning multiple repositories.
func (r *TableRepo) DB() *sql.DB { return r.db }

const tableCols = `id, table_name, capacity, status, reservation_id, created_at, updated_at`

// scanTable reads one row into a model.Table, converting the nullable
// reservation reference.
func scanTable(row interface{ Scan(...any) error }) (*model.Table, error) {
	var t model.Table
	var resID sql.NullInt64
	err := row.Scan(&t.ID, &t.TableName, &t.Capacity, &t.Status, &resID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if resID.Valid {
		id := uint64(resID.Int64)
		t.ReservationID = &id
	}
	return &t, nil
}

// Create inserts a new table.  Tables always start free with no
// reservation reference; the stored row is loaded back into the
// record to pick up the generated ID and timestamps.
func (r *TableRepo) Create(ctx context.Context, t *model.Table) error {
	const q = `INSERT INTO tables (table_name, capacity, status) VALUES (?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q, t.TableName, t.Capacity, model.TableFree)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	stored, err := r.GetByID(ctx, uint64(id))
	if err != nil {
		return err
	}
	*t = *stored
	return nil
}

// List returns all tables ordered by table name ascending.
func (r *TableRepo) List(ctx context.Context) ([]model.Table, error) {
	const q = `SELECT ` + tableCols + ` FROM tables ORDER BY table_name ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := make([]model.Table, 0)
	for rows.Next() {
		t, err := scanTable(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *t)
	}
	return list, rows.Err()
}

// GetByID returns the table with the given ID or ErrTableNotFound.
func (r *TableRepo) GetByID(ctx context.Context, id uint64) (*model.Table, error) {
	const q = `SELECT ` + tableCols + ` FROM tables WHERE id = ?`
	t, err := scanTable(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTableNotFound
	}
	return t, err
}

// GetByReservation returns the table currently referencing the given
// reservation, or ErrTableNotFound when the reservation is not seated
// anywhere.
func (r *TableRepo) GetByReservation(ctx context.Context, reservationID uint64) (*model.Table, error) {
	const q = `SELECT ` + tableCols + ` FROM tables WHERE reservation_id = ?`
	t, err := scanTable(r.db.QueryRowContext(ctx, q, reservationID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTableNotFound
	}
	return t, err
}

// Seat assigns a reservation to a table.  Both writes - marking the
// table occupied and the reservation seated - happen in one
// transaction guarded by the expected current states, so a concurrent
// request that already seated either entity aborts this one with
// ErrConflict and no partial update.  The stored table is returned on
// success.
func (r *TableRepo) Seat(ctx context.Context, tableID, reservationID uint64) (*model.Table, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	const occupy = `UPDATE tables SET reservation_id = ?, status = ? WHERE id = ? AND status = ?`
	result, err := tx.ExecContext(ctx, occupy, reservationID, model.TableOccupied, tableID, model.TableFree)
	if err != nil {
		return nil, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrConflict
	}

	if err := UpdateStatusTx(ctx, tx, reservationID, model.StatusSeated, model.StatusBooked); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return r.GetByID(ctx, tableID)
}

// Finish clears an occupied table and marks its reservation finished.
// As with Seat, both writes share one transaction.  It returns the
// stored table and the finished reservation, or ErrConflict when the
// table is not occupied.
func (r *TableRepo) Finish(ctx context.Context, tableID uint64) (*model.Table, *model.Reservation, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Lock the row so the reservation reference cannot change between
	// the read and the paired writes.
	const sel = `SELECT reservation_id FROM tables WHERE id = ? FOR UPDATE`
	var resID sql.NullInt64
	if err := tx.QueryRowContext(ctx, sel, tableID).Scan(&resID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrTableNotFound
		}
		return nil, nil, err
	}
	if !resID.Valid {
		return nil, nil, ErrConflict
	}
	reservationID := uint64(resID.Int64)

	const free = `UPDATE tables SET reservation_id = NULL, status = ? WHERE id = ?`
	if _, err := tx.ExecContext(ctx, free, model.TableFree, tableID); err != nil {
		return nil, nil, err
	}
	if err := UpdateStatusTx(ctx, tx, reservationID, model.StatusFinished, model.StatusSeated); err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, err
	}
	committed = true

	t, err := r.GetByID(ctx, tableID)
	if err != nil {
		return nil, nil, err
	}
	res, err := NewReservationRepo(r.db).GetByID(ctx, reservationID)
	if err != nil {
		return nil, nil, err
	}
	return t, res, nil
}
