// Package catalog holds the static movie schedule and concession menu of the venue.
package catalog

import (
	"time"

	"github.com/metinatakli/cinema-booking/internal/domain"
)

type Catalog struct {
	movies []domain.Movie
	menu   []domain.MenuItem
}

// New builds a catalog from the given movies and menu. Both are copied and never mutated.
func New(movies []domain.Movie, menu []domain.MenuItem) *Catalog {
	c := &Catalog{
		movies: make([]domain.Movie, len(movies)),
		menu:   make([]domain.MenuItem, len(menu)),
	}

	copy(c.movies, movies)
	copy(c.menu, menu)

	return c
}

// Default returns the venue's current schedule and menu.
func Default() *Catalog {
	return New(defaultMovies, defaultMenu)
}

var defaultMovies = []domain.Movie{
	{ID: 1, Title: "Three Heroes and the Navel of the Earth", Times: []string{"10:30", "17:20"}, Price: 350},
	{ID: 2, Title: "Cheburashka", Times: []string{"11:50", "19:00"}, Price: 400},
	{ID: 3, Title: "The Wizard of the Emerald City", Times: []string{"13:30", "21:05"}, Price: 380},
	{ID: 4, Title: "Gorynych", Times: []string{"15:45"}, Price: 420},
}

var defaultMenu = []domain.MenuItem{
	{Name: "Popcorn small", Price: 150, Icon: "Popcorn"},
	{Name: "Popcorn medium", Price: 250, Icon: "Popcorn"},
	{Name: "Popcorn large", Price: 350, Icon: "Popcorn"},
	{Name: "Coca-Cola 0.25l", Price: 125, Icon: "Coffee"},
	{Name: "Cotton candy", Price: 250, Icon: "IceCream"},
}

func (c *Catalog) Movies() []domain.Movie {
	movies := make([]domain.Movie, len(c.movies))
	copy(movies, c.movies)

	return movies
}

func (c *Catalog) Movie(id int) (domain.Movie, error) {
	for _, m := range c.movies {
		if m.ID == id {
			return m, nil
		}
	}

	return domain.Movie{}, domain.ErrMovieNotFound
}

// Screening resolves a movie together with one of its showtimes.
func (c *Catalog) Screening(movieID int, showtime string) (domain.Movie, error) {
	movie, err := c.Movie(movieID)
	if err != nil {
		return domain.Movie{}, err
	}

	if !movie.HasShowtime(showtime) {
		return domain.Movie{}, domain.ErrShowtimeNotFound
	}

	return movie, nil
}

func (c *Catalog) Menu() []domain.MenuItem {
	menu := make([]domain.MenuItem, len(c.menu))
	copy(menu, c.menu)

	return menu
}

func (c *Catalog) MenuItem(name string) (domain.MenuItem, error) {
	for _, item := range c.menu {
		if item.Name == name {
			return item, nil
		}
	}

	return domain.MenuItem{}, domain.ErrMenuItemNotFound
}

// TimeUntil is the countdown to a catalog showtime. Catalog times are always well formed,
// so a parse failure yields a zero countdown.
func (c *Catalog) TimeUntil(showtime string, now time.Time) domain.Countdown {
	countdown, err := domain.TimeUntil(showtime, now)
	if err != nil {
		return domain.Countdown{}
	}

	return countdown
}
