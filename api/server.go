/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request for tracing
  2. RealIP:     Client address behind a proxy
  3. Logger:     Structured request logging (logging.RequestLogger, zap)
  4. Recoverer:  Panic recovery (500 instead of crash)
  5. CORS:       Cross-origin requests for the frontend

ROUTE GROUPS:
  /api/health, /api/holidays   Calendar
  /api/users/*                 Users, time entries, balances, vacations
  /api/team-calendar           Vacations of all active users
  /api/admin/*                 Reports and export

SECURITY NOTE:
  No authentication middleware. The API is meant to sit behind the
  application's session layer.

SEE ALSO:
  - handlers.go: Handler implementations
  - logging/logging.go: Request logger
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/lu-ally/AllyTimeTracking/logging"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, log *zap.Logger, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: !allowsAnyOrigin(allowedOrigins),
		MaxAge:           300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)
		r.Get("/holidays", h.ListHolidays)
		r.Get("/team-calendar", h.GetTeamCalendar)

		// User routes
		r.Route("/users", func(r chi.Router) {
			r.Get("/", h.ListUsers)
			r.Post("/", h.CreateUser)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetUser)
				r.Put("/", h.UpdateUser)
				r.Delete("/", h.DeactivateUser)

				r.Get("/time-entries", h.ListTimeEntries)
				r.Put("/time-entries/{date}", h.SaveTimeEntry)
				r.Delete("/time-entries/{date}", h.DeleteTimeEntry)
				r.Get("/days", h.GetDays)
				r.Get("/balance", h.GetBalance)

				r.Get("/vacations", h.ListVacations)
				r.Post("/vacations", h.CreateVacation)
				r.Delete("/vacations/{vid}", h.DeleteVacation)
				r.Get("/vacation-summary", h.GetVacationSummary)
				r.Put("/vacation-balances/{year}", h.SetVacationBalance)
			})
		})

		// Admin routes
		r.Route("/admin", func(r chi.Router) {
			r.Get("/reports/monthly", h.GetMonthlyReport)
			r.Get("/export", h.ExportCSV)
		})
	})

	return r
}

// Credentials cannot be combined with a wildcard origin.
func allowsAnyOrigin(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
