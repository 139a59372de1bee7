package app

import (
	"net/http"

	"github.com/metinatakli/cinema-booking/api"
	"github.com/metinatakli/cinema-booking/internal/domain"
)

func (app *Application) GetMovies(w http.ResponseWriter, r *http.Request) {
	now := app.now()

	resp := api.MovieListResponse{
		Movies: toApiMovies(app.catalog.Movies(), func(showtime string) domain.Countdown {
			return app.catalog.TimeUntil(showtime, now)
		}),
	}

	err := app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetMenu(w http.ResponseWriter, r *http.Request) {
	menu := app.catalog.Menu()

	items := make([]api.MenuItem, len(menu))
	for i, item := range menu {
		items[i] = api.MenuItem{
			Name:  item.Name,
			Price: item.Price,
			Icon:  item.Icon,
		}
	}

	err := app.writeJSON(w, http.StatusOK, api.MenuResponse{Items: items}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toApiMovies(movies []domain.Movie, timeUntil func(string) domain.Countdown) []api.Movie {
	result := make([]api.Movie, len(movies))

	for i, movie := range movies {
		showtimes := make([]api.Showtime, len(movie.Times))
		for j, showtime := range movie.Times {
			countdown := timeUntil(showtime)
			showtimes[j] = api.Showtime{
				Time: showtime,
				StartsIn: api.Countdown{
					Hours:   countdown.Hours,
					Minutes: countdown.Minutes,
				},
			}
		}

		result[i] = api.Movie{
			Id:        movie.ID,
			Title:     movie.Title,
			Price:     movie.Price,
			Showtimes: showtimes,
		}
	}

	return result
}

