package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
	"github.com/iliyamo/restaurant-table-reservation/internal/repository"
)

// fakeReservationStore implements ReservationStore with overridable
// function fields.  Unset operations report absence so tests only wire
// what they exercise.
type fakeReservationStore struct {
	createFn       func(ctx context.Context, res *model.Reservation) error
	getFn          func(ctx context.Context, id uint64) (*model.Reservation, error)
	listFn         func(ctx context.Context, date string) ([]model.Reservation, error)
	searchFn       func(ctx context.Context, digits string) ([]model.Reservation, error)
	updateFn       func(ctx context.Context, res *model.Reservation) error
	updateStatusFn func(ctx context.Context, id uint64, status string) (*model.Reservation, error)
}

func (f *fakeReservationStore) Create(ctx context.Context, res *model.Reservation) error {
	if f.createFn == nil {
		res.ID = 1
		return nil
	}
	return f.createFn(ctx, res)
}

func (f *fakeReservationStore) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	if f.getFn == nil {
		return nil, repository.ErrReservationNotFound
	}
	return f.getFn(ctx, id)
}

func (f *fakeReservationStore) ListByDate(ctx context.Context, date string) ([]model.Reservation, error) {
	if f.listFn == nil {
		return []model.Reservation{}, nil
	}
	return f.listFn(ctx, date)
}

func (f *fakeReservationStore) SearchByPhone(ctx context.Context, digits string) ([]model.Reservation, error) {
	if f.searchFn == nil {
		return []model.Reservation{}, nil
	}
	return f.searchFn(ctx, digits)
}

func (f *fakeReservationStore) Update(ctx context.Context, res *model.Reservation) error {
	if f.updateFn == nil {
		return nil
	}
	return f.updateFn(ctx, res)
}

func (f *fakeReservationStore) UpdateStatus(ctx context.Context, id uint64, status string) (*model.Reservation, error) {
	if f.updateStatusFn == nil {
		return nil, repository.ErrReservationNotFound
	}
	return f.updateStatusFn(ctx, id, status)
}

// fakeTableStore implements TableStore the same way.
type fakeTableStore struct {
	createFn           func(ctx context.Context, t *model.Table) error
	listFn             func(ctx context.Context) ([]model.Table, error)
	getFn              func(ctx context.Context, id uint64) (*model.Table, error)
	getByReservationFn func(ctx context.Context, reservationID uint64) (*model.Table, error)
	seatFn             func(ctx context.Context, tableID, reservationID uint64) (*model.Table, error)
	finishFn           func(ctx context.Context, tableID uint64) (*model.Table, *model.Reservation, error)
}

func (f *fakeTableStore) Create(ctx context.Context, t *model.Table) error {
	if f.createFn == nil {
		t.ID = 1
		return nil
	}
	return f.createFn(ctx, t)
}

func (f *fakeTableStore) List(ctx context.Context) ([]model.Table, error) {
	if f.listFn == nil {
		return []model.Table{}, nil
	}
	return f.listFn(ctx)
}

func (f *fakeTableStore) GetByID(ctx context.Context, id uint64) (*model.Table, error) {
	if f.getFn == nil {
		return nil, repository.ErrTableNotFound
	}
	return f.getFn(ctx, id)
}

func (f *fakeTableStore) GetByReservation(ctx context.Context, reservationID uint64) (*model.Table, error) {
	if f.getByReservationFn == nil {
		return nil, repository.ErrTableNotFound
	}
	return f.getByReservationFn(ctx, reservationID)
}

func (f *fakeTableStore) Seat(ctx context.Context, tableID, reservationID uint64) (*model.Table, error) {
	if f.seatFn == nil {
		return nil, repository.ErrConflict
	}
	return f.seatFn(ctx, tableID, reservationID)
}

func (f *fakeTableStore) Finish(ctx context.Context, tableID uint64) (*model.Table, *model.Reservation, error) {
	if f.finishFn == nil {
		return nil, nil, repository.ErrConflict
	}
	return f.finishFn(ctx, tableID)
}

// newContext builds an echo context around a JSON request body.
func newContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// apiResponse mirrors the data/error envelope every endpoint writes.
type apiResponse struct {
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	var resp apiResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return resp
}

// futureDate returns the first non-Tuesday date at least one day out,
// so payloads built with it pass both the closed-day and future-only
// rules at an 18:00 booking time.
func futureDate(t *testing.T) string {
	t.Helper()
	d := time.Now().AddDate(0, 0, 1)
	for d.Weekday() == time.Tuesday {
		d = d.AddDate(0, 0, 1)
	}
	return d.Format("2006-01-02")
}

// nextTuesday returns the next Tuesday at least one day out.
func nextTuesday(t *testing.T) string {
	t.Helper()
	d := time.Now().AddDate(0, 0, 1)
	for d.Weekday() != time.Tuesday {
		d = d.AddDate(0, 0, 1)
	}
	return d.Format("2006-01-02")
}
