package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/fleetwerk/timelog-backend-go/internal/config"
	"github.com/fleetwerk/timelog-backend-go/internal/domain/user"
	"github.com/fleetwerk/timelog-backend-go/internal/handler/http/middleware"
	"github.com/fleetwerk/timelog-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	authHandler AuthHandler,
	entryHandler TimeEntryHandler,
	vehicleHandler VehicleHandler,
	receiptHandler ReceiptHandler,
	calendarHandler CalendarHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "timelog-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	// Receipt images for local storage
	fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.Storage.BasePath)))
	r.Get("/uploads/*", fileServer.ServeHTTP)

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/entries", func(r chi.Router) {
				r.Get("/", entryHandler.List)
				r.Post("/", entryHandler.Create)
				r.Get("/{id}", entryHandler.GetByID)
				r.Put("/{id}", entryHandler.Update)
				r.Delete("/{id}", entryHandler.Delete)
			})

			r.Route("/vehicles", func(r chi.Router) {
				r.Get("/", vehicleHandler.List)
				r.Get("/{id}", vehicleHandler.GetByID)

				// Backoffice only
				r.Group(func(r chi.Router) {
					r.Use(middleware.BackofficeOnly)
					r.Post("/", vehicleHandler.Create)
					r.Put("/{id}", vehicleHandler.Update)
					r.Post("/{id}/deactivate", vehicleHandler.Deactivate)
					r.Delete("/{id}", vehicleHandler.Delete)
					r.Get("/{id}/history", vehicleHandler.History)
				})
			})

			r.Route("/receipts", func(r chi.Router) {
				r.Get("/", receiptHandler.List)
				r.Post("/", receiptHandler.Submit)
				r.Get("/{id}", receiptHandler.GetByID)
				r.Put("/{id}", receiptHandler.Update)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionReceiptApprove))
					r.Post("/{id}/transition", receiptHandler.Transition)
				})
			})

			r.Route("/calendar", func(r chi.Router) {
				r.Get("/{year}/{month}", calendarHandler.MonthView)

				r.Route("/holidays", func(r chi.Router) {
					r.Get("/", calendarHandler.ListHolidays)

					r.Group(func(r chi.Router) {
						r.Use(middleware.BackofficeOnly)
						r.Post("/", calendarHandler.CreateHoliday)
						r.Delete("/{id}", calendarHandler.DeleteHoliday)
					})
				})

				r.Route("/non-working-days", func(r chi.Router) {
					r.Group(func(r chi.Router) {
						r.Use(middleware.BackofficeOnly)
						r.Post("/", calendarHandler.CreateNonWorkingDay)
						r.Delete("/{id}", calendarHandler.DeleteNonWorkingDay)
					})
				})
			})
		})
	})
	return r
}
