package handler // handler defines http handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
	"github.com/iliyamo/restaurant-table-reservation/internal/validate"
)

// ReservationStore is the slice of the persistence layer the
// reservation handlers depend on.  *repository.ReservationRepo
// satisfies it; tests substitute fakes.
type ReservationStore interface {
	Create(ctx context.Context, res *model.Reservation) error
	GetByID(ctx context.Context, id uint64) (*model.Reservation, error)
	ListByDate(ctx context.Context, date string) ([]model.Reservation, error)
	SearchByPhone(ctx context.Context, digits string) ([]model.Reservation, error)
	Update(ctx context.Context, res *model.Reservation) error
	UpdateStatus(ctx context.Context, id uint64, status string) (*model.Reservation, error)
}

// TableStore is the slice of the persistence layer the table handlers
// depend on.  Seat and Finish are the paired transactional writes;
// *repository.TableRepo satisfies it.
type TableStore interface {
	Create(ctx context.Context, t *model.Table) error
	List(ctx context.Context) ([]model.Table, error)
	GetByID(ctx context.Context, id uint64) (*model.Table, error)
	GetByReservation(ctx context.Context, reservationID uint64) (*model.Table, error)
	Seat(ctx context.Context, tableID, reservationID uint64) (*model.Table, error)
	Finish(ctx context.Context, tableID uint64) (*model.Table, *model.Reservation, error)
}

// UserStore is the persistence dependency of the auth handler.
type UserStore interface {
	Create(ctx context.Context, u *model.StaffUser) error
	GetByID(ctx context.Context, id uint64) (*model.StaffUser, error)
	GetByEmail(ctx context.Context, email string) (*model.StaffUser, error)
}

// payload is the request envelope every mutation accepts: the record
// arrives under a top-level "data" key, mirroring the response shape.
type payload struct {
	Data map[string]any `json:"data"`
}

// bindPayload decodes the request body into the data envelope.  An
// absent or null data object becomes an empty map so validation rules
// can report the missing fields individually.
func bindPayload(c echo.Context) (map[string]any, error) {
	var body payload
	if err := c.Bind(&body); err != nil {
		return nil, err
	}
	if body.Data == nil {
		body.Data = map[string]any{}
	}
	return body.Data, nil
}

// reject writes a validation rejection as the error envelope.
func reject(c echo.Context, rej *validate.Rejection) error {
	return c.JSON(rej.Status, echo.Map{"error": rej.Message})
}

// parseID parses a positive integer path parameter.
func parseID(c echo.Context, param string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// getUserID extracts the authenticated staff user ID set by the JWT
// middleware.
func getUserID(c echo.Context) (uint64, bool) {
	id, ok := c.Get("user_id").(uint64)
	return id, ok
}

// dbError is the catch-all response for unexpected store failures.
func dbError(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
}
