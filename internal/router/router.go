package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/restaurant-table-reservation/internal/handler"    // import the handlers that implement business logic
	"github.com/iliyamo/restaurant-table-reservation/internal/middleware" // import middleware for JWT authentication
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the staff account routes.  Register and login
// are open; /auth/me requires a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/auth")
	// Create a staff account and receive an access token.
	g.POST("/register", a.Register)
	// Exchange credentials for an access token.
	g.POST("/login", a.Login)
	// Return the authenticated staff user's information.
	g.GET("/me", a.Me, middleware.JWTAuth(jwtSecret))
}

// RegisterAPI registers the reservation and table routes.  Read routes
// are always open so the dashboard can render without a session.  When
// requireAuth is set, every mutating route demands a staff token.
func RegisterAPI(e *echo.Echo, r *handler.ReservationHandler, t *handler.TableHandler, jwtSecret string, requireAuth bool) {
	// Middleware applied to mutations; a no-op unless enforcement is on.
	guard := func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	if requireAuth {
		guard = middleware.JWTAuth(jwtSecret)
	}

	// Reservation listings by date or phone fragment.
	e.GET("/reservations", r.List)
	// Create a reservation; always persists with status booked.
	e.POST("/reservations", r.Create, guard)
	// Read a single reservation.
	e.GET("/reservations/:reservation_id", r.Read)
	// Look up the table a reservation is seated at.
	e.GET("/reservations/:reservation_id/table", r.ReadTable)
	// Full-record edit of a booked reservation.
	e.PUT("/reservations/:reservation_id", r.Update, guard)
	// Status transitions (seat, finish, cancel via status value).
	e.PUT("/reservations/:reservation_id/status", r.UpdateStatus, guard)

	// All tables ordered by name.
	e.GET("/tables", t.List)
	// Create a table; always starts free.
	e.POST("/tables", t.Create, guard)
	// Seat a reservation at a table (paired transactional write).
	e.PUT("/tables/:table_id/seat", t.Seat, guard)
	// Finish the seated reservation and free the table.
	e.DELETE("/tables/:table_id/seat", t.Finish, guard)
}
