package domain

import "strings"

type DialogState int

const (
	DialogIdle DialogState = iota
	DialogOpen
	DialogSubmitting
)

func (s DialogState) String() string {
	switch s {
	case DialogOpen:
		return "open"
	case DialogSubmitting:
		return "submitting"
	default:
		return "idle"
	}
}

// Dialog is the ephemeral state of one booking attempt: the target screening, the seats
// and concessions picked so far and the receipt email.
type Dialog struct {
	State     DialogState
	Movie     Movie
	Showtime  string
	Selection *Selection
	Cart      *Cart
	Email     string
}

func NewDialog(movie Movie, showtime string) *Dialog {
	return &Dialog{
		State:     DialogOpen,
		Movie:     movie,
		Showtime:  showtime,
		Selection: NewSelection(),
		Cart:      NewCart(),
	}
}

func (d *Dialog) SessionKey() string {
	return SessionKey(d.Movie.ID, d.Showtime)
}

func (d *Dialog) TicketsTotal() int64 {
	return int64(d.Selection.Len()) * d.Movie.Price
}

// Total is the amount shown to the user: tickets plus concessions.
func (d *Dialog) Total() int64 {
	return d.TicketsTotal() + d.Cart.Total()
}

// Validate checks the confirm preconditions without touching any state.
func (d *Dialog) Validate() error {
	if d.Selection.Len() == 0 {
		return ErrNoSeatsSelected
	}

	if !ValidEmail(d.Email) {
		return ErrInvalidEmail
	}

	return nil
}

// Reset empties selection, cart and email.
func (d *Dialog) Reset() {
	d.Selection.Reset()
	d.Cart.Reset()
	d.Email = ""
}

// Request snapshots the dialog into the payload sent to the receipt gateway.
func (d *Dialog) Request() BookingRequest {
	return BookingRequest{
		Email:       d.Email,
		MovieTitle:  d.Movie.Title,
		MovieTime:   d.Showtime,
		Seats:       d.Selection.Seats(),
		TicketPrice: d.Movie.Price,
		Cart:        d.Cart.Items(),
	}
}

// ValidEmail only checks for an @ sign.
func ValidEmail(email string) bool {
	return strings.Contains(email, "@")
}
