/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

ROUTER: chi
  Chi was chosen for:
  - Lightweight and fast
  - Context-based
  - Middleware support
  - RESTful route patterns

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/bookings/*       Booking lifecycle and approvals
  /api/users/*          Directory, per-user bookings and balance
  /api/calendar/*       Month view and team overview
  /api/filters          Overview filter selections
  /api/holidays/*       Holiday management
  /api/...              Reference data (roles, teams, departments, types)

SECURITY NOTE:
  Identity comes from the X-User-Id header; there is no authentication
  middleware. Put a real auth layer in front before exposing this publicly.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-User-Id", "X-Session-Id"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		// Booking routes
		r.Route("/bookings", func(r chi.Router) {
			r.Get("/", h.ListBookings)
			r.Post("/", h.SubmitBooking)
			r.Get("/pending", h.ListPendingBookings)
			r.Get("/{id}", h.GetBooking)
			r.Put("/{id}", h.EditBooking)
			r.Delete("/{id}", h.DeleteBooking)
			r.Post("/{id}/decision", h.DecideBooking)
		})

		// User routes
		r.Route("/users", func(r chi.Router) {
			r.Get("/", h.ListUsers)
			r.Get("/{id}", h.GetUser)
			r.Get("/{id}/bookings", h.ListUserBookings)
			r.Get("/{id}/balance", h.GetBalance)
		})

		// Calendar routes
		r.Route("/calendar", func(r chi.Router) {
			r.Get("/month", h.MonthView)
			r.Get("/overview", h.Overview)
		})

		// Filter routes
		r.Route("/filters", func(r chi.Router) {
			r.Get("/", h.GetFilters)
			r.Post("/", h.SetFilter)
		})

		// Holiday routes
		r.Route("/holidays", func(r chi.Router) {
			r.Get("/", h.ListHolidays)
			r.Post("/", h.CreateHoliday)
			r.Post("/import", h.ImportHolidays)
			r.Delete("/{id}", h.DeleteHoliday)
		})

		// Reference data
		r.Get("/absence-types", h.ListAbsenceTypes)
		r.Get("/teams", h.ListTeams)
		r.Get("/departments", h.ListDepartments)
		r.Get("/roles", h.ListRoles)
	})

	return r
}
