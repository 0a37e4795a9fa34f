package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// UserRepo persists staff accounts.  Only authentication needs these
// rows; reservation and table data never references them.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo returns a new UserRepo bound to the given database.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

const userCols = `id, email, full_name, password_hash, created_at, updated_at`

// Create inserts a staff account and populates the generated ID and
// timestamps.  A duplicate email maps to ErrEmailTaken.
func (r *UserRepo) Create(ctx context.Context, u *model.StaffUser) error {
	const q = `INSERT INTO staff_users (email, full_name, password_hash) VALUES (?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q, u.Email, u.FullName, u.PasswordHash)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			return ErrEmailTaken
		}
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
	*u = *stored
	return nil
}

// GetByID returns the staff account with the given ID or ErrUserNotFound.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*model.StaffUser, error) {
	const q = `SELECT ` + userCols + ` FROM staff_users WHERE id = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, q, id))
}

// GetByEmail returns the staff account with the given email or ErrUserNotFound.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.StaffUser, error) {
	const q = `SELECT ` + userCols + ` FROM staff_users WHERE email = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, q, email))
}

func (r *UserRepo) scanOne(row *sql.Row) (*model.StaffUser, error) {
	var u model.StaffUser
	err := row.Scan(&u.ID, &u.Email, &u.FullName, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
