package domain

import (
	"fmt"
	"slices"
	"time"
)

// Movie is a catalog entry. Price is the flat ticket price in minor currency units.
type Movie struct {
	ID    int
	Title string
	Times []string
	Price int64
}

func (m Movie) HasShowtime(showtime string) bool {
	return slices.Contains(m.Times, showtime)
}

// Countdown is the time left until a showtime, split into whole hours and remaining minutes.
type Countdown struct {
	Hours   int
	Minutes int
}

// SessionKey identifies one screening. It is never stored on its own, only derived.
func SessionKey(movieID int, showtime string) string {
	return fmt.Sprintf("%d_%s", movieID, showtime)
}

func ParseShowtime(showtime string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", showtime)
	if err != nil {
		return 0, 0, ErrInvalidShowtime
	}

	return t.Hour(), t.Minute(), nil
}

// TimeUntil returns the countdown from now to the next occurrence of showtime.
// A showtime earlier than now on the current day rolls over to the next day.
func TimeUntil(showtime string, now time.Time) (Countdown, error) {
	hour, minute, err := ParseShowtime(showtime)
	if err != nil {
		return Countdown{}, err
	}

	candidate := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if candidate.Before(now) {
		candidate = candidate.AddDate(0, 0, 1)
	}

	diff := candidate.Sub(now)

	return Countdown{
		Hours:   int(diff / time.Hour),
		Minutes: int((diff % time.Hour) / time.Minute),
	}, nil
}
