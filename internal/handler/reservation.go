package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
	"github.com/iliyamo/restaurant-table-reservation/internal/repository"
	"github.com/iliyamo/restaurant-table-reservation/internal/utils"
	"github.com/iliyamo/restaurant-table-reservation/internal/validate"
)

// Fields a client may supply when creating a reservation.  Updates
// additionally carry the identifier and store-assigned timestamps,
// which arrive back unchanged when a client round-trips a record.
var (
	reservationRequired = []string{
		"first_name", "last_name", "mobile_number",
		"reservation_date", "reservation_time", "people",
	}
	reservationCreateFields = append(append([]string{}, reservationRequired...), "status")
	reservationUpdateFields = append(append([]string{}, reservationCreateFields...),
		"reservation_id", "created_at", "updated_at")
)

// ReservationHandler owns the reservation lifecycle: creation, reads,
// date and phone listings, record edits and status transitions.  All
// validation runs before any write so a rejected request never leaves
// partial state behind.
type ReservationHandler struct {
	Reservations ReservationStore
	Tables       TableStore
}

// NewReservationHandler constructs a ReservationHandler and panics if
// a dependency is nil.
func NewReservationHandler(reservations ReservationStore, tables TableStore) *ReservationHandler {
	if reservations == nil || tables == nil {
		panic("nil store passed to NewReservationHandler")
	}
	return &ReservationHandler{Reservations: reservations, Tables: tables}
}

// creationRules is the ordered rule chain shared by create and full
// update.  Shape checks run before value checks, which run before the
// business-hours and scheduling rules.
func creationRules(allowed []string, now time.Time) []validate.Rule {
	return []validate.Rule{
		validate.OnlyFields(allowed...),
		validate.HasFields(reservationRequired...),
		validate.DateValid("reservation_date"),
		validate.TimeValid("reservation_time"),
		validate.PositiveInteger("people"),
		validate.WithinBusinessHours("reservation_time"),
		validate.NotTuesday("reservation_date"),
		validate.FutureOnly("reservation_date", "reservation_time", now),
	}
}

// List handles GET /reservations.  With a mobile_number query the
// stored numbers are searched by digit fragment ordered by date; with
// a date query (defaulting to today) the active reservations for that
// day are returned ordered by time.
func (h *ReservationHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	if mobile := c.QueryParam("mobile_number"); mobile != "" {
		list, err := h.Reservations.SearchByPhone(ctx, utils.NormalizeDigits(mobile))
		if err != nil {
			return dbError(c)
		}
		return c.JSON(http.StatusOK, echo.Map{"data": list})
	}

	date := c.QueryParam("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid field: 'date' must be a valid date."})
	}
	list, err := h.Reservations.ListByDate(ctx, date)
	if err != nil {
		return dbError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": list})
}

// Create handles POST /reservations.  A valid payload always persists
// with status booked regardless of any supplied status, which the
// rules have already constrained to booked.
func (h *ReservationHandler) Create(c echo.Context) error {
	data, err := bindPayload(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	rules := append(creationRules(reservationCreateFields, time.Now()),
		validate.StatusOnCreate("status"))
	if rej := validate.Run(data, rules...); rej != nil {
		return reject(c, rej)
	}

	people, _ := validate.Int(data, "people")
	res := &model.Reservation{
		FirstName:       validate.String(data, "first_name"),
		LastName:        validate.String(data, "last_name"),
		MobileNumber:    validate.String(data, "mobile_number"),
		ReservationDate: validate.String(data, "reservation_date"),
		ReservationTime: validate.String(data, "reservation_time"),
		People:          people,
		Status:          model.StatusBooked,
	}
	if err := h.Reservations.Create(c.Request().Context(), res); err != nil {
		return dbError(c)
	}
	return c.JSON(http.StatusCreated, echo.Map{"data": res})
}

// Read handles GET /reservations/:reservation_id.
func (h *ReservationHandler) Read(c echo.Context) error {
	id, ok := parseID(c, "reservation_id")
	if !ok {
		return c.JSON(http.StatusNotFound,
			echo.Map{"error": fmt.Sprintf("Reservation ID '%s' does not exist.", c.Param("reservation_id"))})
	}
	res, err := h.Reservations.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound,
				echo.Map{"error": fmt.Sprintf("Reservation ID '%d' does not exist.", id)})
		}
		return dbError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": res})
}

// ReadTable handles GET /reservations/:reservation_id/table, returning
// the table the reservation is currently seated at.
func (h *ReservationHandler) ReadTable(c echo.Context) error {
	id, ok := parseID(c, "reservation_id")
	if !ok {
		return c.JSON(http.StatusNotFound,
			echo.Map{"error": fmt.Sprintf("Reservation ID '%s' does not exist.", c.Param("reservation_id"))})
	}
	ctx := c.Request().Context()
	if _, err := h.Reservations.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound,
				echo.Map{"error": fmt.Sprintf("Reservation ID '%d' does not exist.", id)})
		}
		return dbError(c)
	}
	table, err := h.Tables.GetByReservation(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTableNotFound) {
			return c.JSON(http.StatusNotFound,
				echo.Map{"error": fmt.Sprintf("Reservation ID '%d' is not seated at a table.", id)})
		}
		return dbError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": table})
}

// Update handles PUT /reservations/:reservation_id, a full-record
// edit.  The payload is validated exactly as on create; a supplied
// status additionally goes through the transition rules.
func (h *ReservationHandler) Update(c echo.Context) error {
	id, ok := parseID(c, "reservation_id")
	if !ok {
		return c.JSON(http.StatusNotFound,
			echo.Map{"error": fmt.Sprintf("Reservation ID '%s' does not exist.", c.Param("reservation_id"))})
	}
	ctx := c.Request().Context()
	existing, err := h.Reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound,
				echo.Map{"error": fmt.Sprintf("Reservation ID '%d' does not exist.", id)})
		}
		return dbError(c)
	}

	data, err := bindPayload(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	rules := append(creationRules(reservationUpdateFields, time.Now()),
		validate.StatusKnown("status"))
	if rej := validate.Run(data, rules...); rej != nil {
		return reject(c, rej)
	}

	// Only booked reservations accept a full-record edit; seated and
	// terminal ones are locked, and status changes go through the
	// status route.
	if existing.Status != model.StatusBooked {
		return reject(c, lockedRejection(existing.Status))
	}
	status := existing.Status
	if raw := validate.String(data, "status"); raw != "" {
		status = model.NormalizeStatus(raw)
		if rej := statusTransition(existing.Status, status); rej != nil {
			return reject(c, rej)
		}
	}

	people, _ := validate.Int(data, "people")
	updated := &model.Reservation{
		ID:              existing.ID,
		FirstName:       validate.String(data, "first_name"),
		LastName:        validate.String(data, "last_name"),
		MobileNumber:    validate.String(data, "mobile_number"),
		ReservationDate: validate.String(data, "reservation_date"),
		ReservationTime: validate.String(data, "reservation_time"),
		People:          people,
		Status:          status,
	}
	if err := h.Reservations.Update(ctx, updated); err != nil {
		return dbError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": updated})
}

// UpdateStatus handles PUT /reservations/:reservation_id/status.  The
// payload carries only the new status; terminal reservations reject
// any further change.
func (h *ReservationHandler) UpdateStatus(c echo.Context) error {
	id, ok := parseID(c, "reservation_id")
	if !ok {
		return c.JSON(http.StatusNotFound,
			echo.Map{"error": fmt.Sprintf("Reservation ID '%s' does not exist.", c.Param("reservation_id"))})
	}
	ctx := c.Request().Context()
	existing, err := h.Reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound,
				echo.Map{"error": fmt.Sprintf("Reservation ID '%d' does not exist.", id)})
		}
		return dbError(c)
	}

	data, err := bindPayload(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if rej := validate.Run(data,
		validate.OnlyFields("status"),
		validate.HasFields("status"),
		validate.StatusKnown("status"),
	); rej != nil {
		return reject(c, rej)
	}

	status := model.NormalizeStatus(validate.String(data, "status"))
	if rej := statusTransition(existing.Status, status); rej != nil {
		return reject(c, rej)
	}

	updated, err := h.Reservations.UpdateStatus(ctx, id, status)
	if err != nil {
		return dbError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": updated})
}

// statusTransition checks that a reservation currently in `from` may
// be moved to `to`.  Terminal states reject everything; other illegal
// moves (seated back to booked) name both states.
func statusTransition(from, to string) *validate.Rejection {
	if model.TerminalStatus(from) {
		return lockedRejection(from)
	}
	if from == to {
		return nil
	}
	if !model.CanTransition(from, to) {
		return validate.Reject(http.StatusBadRequest,
			"A %s reservation cannot be changed to %s.", from, to)
	}
	return nil
}

// lockedRejection is the uniform 400 for mutating a reservation whose
// current status no longer permits it.
func lockedRejection(status string) *validate.Rejection {
	return validate.Reject(http.StatusBadRequest, "A %s reservation cannot be updated.", status)
}
