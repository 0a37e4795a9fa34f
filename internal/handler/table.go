package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
	"github.com/iliyamo/restaurant-table-reservation/internal/queue"
	"github.com/iliyamo/restaurant-table-reservation/internal/repository"
	"github.com/iliyamo/restaurant-table-reservation/internal/validate"
)

var tableCreateFields = []string{"table_name", "capacity"}

// Publisher sends a lifecycle event to the message broker.  It is a
// function value so tests can capture events without a broker; the
// default delegates to the RabbitMQ publisher.
type Publisher func(ctx context.Context, event queue.ReservationLifecycleEvent) error

// TableHandler owns table occupancy: creation, listing, and the two
// paired transitions that couple a table to a reservation.  Seat and
// Finish validate every precondition before touching the store, then
// hand both writes to the store's single-transaction operations.
type TableHandler struct {
	Tables       TableStore
	Reservations ReservationStore
	Publish      Publisher // nil disables event publishing
}

// NewTableHandler constructs a TableHandler and panics if a store is
// nil.  The publisher may be nil.
func NewTableHandler(tables TableStore, reservations ReservationStore, publish Publisher) *TableHandler {
	if tables == nil || reservations == nil {
		panic("nil store passed to NewTableHandler")
	}
	return &TableHandler{Tables: tables, Reservations: reservations, Publish: publish}
}

// List handles GET /tables, returning all tables ordered by name.
func (h *TableHandler) List(c echo.Context) error {
	list, err := h.Tables.List(c.Request().Context())
	if err != nil {
		return dbError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": list})
}

// Create handles POST /tables.  New tables always start free.
func (h *TableHandler) Create(c echo.Context) error {
	data, err := bindPayload(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if rej := validate.Run(data,
		validate.OnlyFields(tableCreateFields...),
		validate.HasFields(tableCreateFields...),
		validate.MinLength("table_name", 2),
		validate.PositiveInteger("capacity"),
	); rej != nil {
		return reject(c, rej)
	}

	capacity, _ := validate.Int(data, "capacity")
	t := &model.Table{
		TableName: validate.String(data, "table_name"),
		Capacity:  capacity,
		Status:    model.TableFree,
	}
	if err := h.Tables.Create(c.Request().Context(), t); err != nil {
		return dbError(c)
	}
	return c.JSON(http.StatusCreated, echo.Map{"data": t})
}

// Seat handles PUT /tables/:table_id/seat.  Existence checks run
// before every business rule; the paired write marking the table
// occupied and the reservation seated happens in one transaction
// inside the store.
func (h *TableHandler) Seat(c echo.Context) error {
	tableID, ok := parseID(c, "table_id")
	if !ok {
		return c.JSON(http.StatusNotFound,
			echo.Map{"error": fmt.Sprintf("Table ID '%s' does not exist.", c.Param("table_id"))})
	}
	data, err := bindPayload(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if rej := validate.Run(data, validate.HasFields("reservation_id")); rej != nil {
		return reject(c, rej)
	}
	// A reservation id that cannot resolve to a record, whether
	// malformed or merely unknown, reads as a missing reservation.
	reservationID, ok := validate.Int(data, "reservation_id")
	if !ok || reservationID <= 0 {
		return c.JSON(http.StatusNotFound,
			echo.Map{"error": fmt.Sprintf("Reservation ID '%v' does not exist.", data["reservation_id"])})
	}

	ctx := c.Request().Context()
	table, err := h.Tables.GetByID(ctx, tableID)
	if err != nil {
		if errors.Is(err, repository.ErrTableNotFound) {
			return c.JSON(http.StatusNotFound,
				echo.Map{"error": fmt.Sprintf("Table ID '%d' does not exist.", tableID)})
		}
		return dbError(c)
	}
	res, err := h.Reservations.GetByID(ctx, uint64(reservationID))
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound,
				echo.Map{"error": fmt.Sprintf("Reservation ID '%d' does not exist.", reservationID)})
		}
		return dbError(c)
	}

	if res.Status != model.StatusBooked {
		return c.JSON(http.StatusBadRequest,
			echo.Map{"error": fmt.Sprintf("Reservation is already %s.", res.Status)})
	}
	if table.Capacity < res.People {
		return c.JSON(http.StatusBadRequest,
			echo.Map{"error": "Table does not have sufficient capacity for reservation."})
	}
	if table.Status != model.TableFree {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Table is already occupied."})
	}

	seated, err := h.Tables.Seat(ctx, tableID, res.ID)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			// Lost the race to another request between the checks and the write.
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Table is already occupied."})
		}
		return dbError(c)
	}

	h.publish(queue.EventSeated, seated, res)
	return c.JSON(http.StatusOK, echo.Map{"data": seated})
}

// Finish handles DELETE /tables/:table_id/seat.  The paired write
// freeing the table and finishing its reservation happens in one
// transaction inside the store.
func (h *TableHandler) Finish(c echo.Context) error {
	tableID, ok := parseID(c, "table_id")
	if !ok {
		return c.JSON(http.StatusNotFound,
			echo.Map{"error": fmt.Sprintf("Table ID '%s' does not exist.", c.Param("table_id"))})
	}
	ctx := c.Request().Context()
	table, err := h.Tables.GetByID(ctx, tableID)
	if err != nil {
		if errors.Is(err, repository.ErrTableNotFound) {
			return c.JSON(http.StatusNotFound,
				echo.Map{"error": fmt.Sprintf("Table ID '%d' does not exist.", tableID)})
		}
		return dbError(c)
	}
	if table.Status != model.TableOccupied {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Table is not occupied."})
	}

	freed, res, err := h.Tables.Finish(ctx, tableID)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Table is not occupied."})
		}
		return dbError(c)
	}

	h.publish(queue.EventFinished, freed, res)
	return c.JSON(http.StatusOK, echo.Map{"data": freed})
}

// publish sends a lifecycle event in the background.  Publishing is
// best-effort: the seating flow never fails because the broker is
// down.
func (h *TableHandler) publish(eventType string, table *model.Table, res *model.Reservation) {
	if h.Publish == nil {
		return
	}
	ev := queue.ReservationLifecycleEvent{
		Type:            eventType,
		ReservationID:   res.ID,
		TableID:         table.ID,
		TableName:       table.TableName,
		FirstName:       res.FirstName,
		LastName:        res.LastName,
		People:          res.People,
		ReservationDate: res.ReservationDate,
		ReservationTime: res.ReservationTime,
		OccurredAt:      time.Now().UTC().Format(time.RFC3339),
	}
	go func() { _ = h.Publish(context.Background(), ev) }()
}
