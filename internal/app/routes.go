package app

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/riandyrn/otelchi"
)

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)
	r.MethodNotAllowed(app.methodNotAllowedResponse)

	r.Use(middleware.RequestID)
	r.Use(otelchi.Middleware(serviceName, otelchi.WithChiRoutes(r)))
	r.Use(middleware.Logger)
	r.Use(app.requestLogger)
	r.Use(app.recoverPanic)

	r.Get("/healthcheck", app.GetHealth)

	r.Group(func(r chi.Router) {
		r.Use(app.sessionManager.LoadAndSave)
		r.Use(app.ensureSession)

		r.Get("/movies", app.GetMovies)
		r.Get("/menu", app.GetMenu)

		r.Get("/movies/{movieId}/showtimes/{time}/seats", func(w http.ResponseWriter, r *http.Request) {
			movieID, err := strconv.Atoi(chi.URLParam(r, "movieId"))
			if err != nil {
				app.badRequestResponse(w, r, fmt.Errorf("invalid movie ID"))
				return
			}

			showtime, err := url.PathUnescape(chi.URLParam(r, "time"))
			if err != nil {
				app.badRequestResponse(w, r, fmt.Errorf("invalid showtime"))
				return
			}

			app.GetSeatMap(w, r, movieID, showtime)
		})

		r.Route("/booking", func(r chi.Router) {
			r.Post("/", app.OpenBooking)
			r.Get("/", app.GetBooking)
			r.Delete("/", app.CloseBooking)

			r.Post("/seats/{seatId}", func(w http.ResponseWriter, r *http.Request) {
				seatID, err := strconv.Atoi(chi.URLParam(r, "seatId"))
				if err != nil {
					app.badRequestResponse(w, r, fmt.Errorf("invalid seat ID"))
					return
				}

				app.ToggleSeat(w, r, seatID)
			})

			r.Post("/cart", app.AddCartItem)
			r.Delete("/cart/{name}", func(w http.ResponseWriter, r *http.Request) {
				name, err := url.PathUnescape(chi.URLParam(r, "name"))
				if err != nil {
					app.badRequestResponse(w, r, fmt.Errorf("invalid item name"))
					return
				}

				app.RemoveCartItem(w, r, name)
			})

			r.Put("/email", app.SetEmail)
			r.Post("/confirm", app.ConfirmBooking)
		})
	})

	return r
}
