package domain

import "errors"

var (
	ErrRecordNotFound    = errors.New("record not found")
	ErrEditConflict      = errors.New("edit conflict")
	ErrMovieNotFound     = errors.New("movie not found")
	ErrShowtimeNotFound  = errors.New("showtime not found for movie")
	ErrInvalidShowtime   = errors.New("showtime must be in HH:MM format")
	ErrMenuItemNotFound  = errors.New("menu item not found")
	ErrInvalidSeat       = errors.New("seat ID must be between 1 and 40")
	ErrSeatAlreadyBooked = errors.New("seat(s) are already booked")
	ErrNoSeatsSelected   = errors.New("select at least one seat before confirming")
	ErrInvalidEmail      = errors.New("a valid email is required to receive the receipt")
	ErrBookingInProgress = errors.New("a booking confirmation is already in progress")
	ErrDialogNotOpen     = errors.New("no booking is open for this session")
)
