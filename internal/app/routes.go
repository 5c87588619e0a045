package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/riandyrn/otelchi"
)

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(otelchi.Middleware("theater-reservation-api", otelchi.WithChiRoutes(r)))
	r.Use(app.recoverPanic)
	r.Use(app.sessionManager.LoadAndSave)

	r.Get("/health", app.GetHealth)

	r.Post("/users", app.RegisterUser)
	r.Post("/sessions", app.Login)
	r.Delete("/sessions", app.Logout)

	r.With(app.requireAuthentication).Get("/users/me", app.GetCurrentUser)

	r.Route("/genres", func(r chi.Router) {
		r.With(app.requireAuthentication).Get("/", app.GetGenres)
		r.With(app.requireAdmin).Post("/", app.CreateGenre)
		r.With(app.requireAdmin).Patch("/{genreId}", app.UpdateGenre)
	})

	r.Route("/actors", func(r chi.Router) {
		r.With(app.requireAuthentication).Get("/", app.GetActors)
		r.With(app.requireAdmin).Post("/", app.CreateActor)
		r.With(app.requireAdmin).Patch("/{actorId}", app.UpdateActor)
	})

	r.Route("/plays", func(r chi.Router) {
		r.With(app.requireAuthentication).Get("/", app.GetPlays)
		r.With(app.requireAuthentication).Get("/{playId}", app.GetPlay)
		r.With(app.requireAdmin).Post("/", app.CreatePlay)
		r.With(app.requireAdmin).Patch("/{playId}", app.UpdatePlay)
	})

	r.Route("/theater-halls", func(r chi.Router) {
		r.With(app.requireAuthentication).Get("/", app.GetTheaterHalls)
		r.With(app.requireAdmin).Post("/", app.CreateTheaterHall)
	})

	r.Route("/performances", func(r chi.Router) {
		r.With(app.requireAuthentication).Get("/", app.GetPerformances)
		r.With(app.requireAuthentication).Get("/{performanceId}", app.GetPerformance)
		r.With(app.requireAdmin).Post("/", app.CreatePerformance)
		r.With(app.requireAdmin).Patch("/{performanceId}", app.UpdatePerformance)
	})

	r.Route("/reservations", func(r chi.Router) {
		r.Use(app.requireAuthentication)
		r.Get("/", app.GetReservations)
		r.Get("/{reservationId}", app.GetReservation)
		r.Post("/", app.CreateReservation)
	})

	r.Route("/tickets", func(r chi.Router) {
		r.Use(app.requireAuthentication)
		r.Get("/", app.GetTickets)
		r.Post("/", app.CreateTicket)
	})

	return r
}
