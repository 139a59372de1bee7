package app

import (
	"context"
	"net/http"

	"github.com/metinatakli/cinema-booking/api"
	"github.com/metinatakli/cinema-booking/internal/booking"
	"github.com/metinatakli/cinema-booking/internal/domain"
)

func (app *Application) OpenBooking(w http.ResponseWriter, r *http.Request) {
	var input api.OpenBookingRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	view, err := app.bookings.Open(app.dialogID(r), input.MovieId, input.Time)
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	app.contextGetLogger(r).Info("booking opened", "session_key", view.SessionKey)

	app.writeBooking(w, r, http.StatusCreated, view)
}

func (app *Application) GetBooking(w http.ResponseWriter, r *http.Request) {
	view, err := app.bookings.View(app.dialogID(r))
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	app.writeBooking(w, r, http.StatusOK, view)
}

func (app *Application) CloseBooking(w http.ResponseWriter, r *http.Request) {
	err := app.bookings.Close(app.dialogID(r))
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) ToggleSeat(w http.ResponseWriter, r *http.Request, seatID int) {
	view, err := app.bookings.ToggleSeat(app.dialogID(r), domain.SeatID(seatID))
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	app.writeBooking(w, r, http.StatusOK, view)
}

func (app *Application) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var input api.AddCartItemRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	view, err := app.bookings.AddItem(app.dialogID(r), input.Name)
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	app.writeBooking(w, r, http.StatusOK, view)
}

func (app *Application) RemoveCartItem(w http.ResponseWriter, r *http.Request, name string) {
	view, err := app.bookings.RemoveItem(app.dialogID(r), name)
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	app.writeBooking(w, r, http.StatusOK, view)
}

func (app *Application) SetEmail(w http.ResponseWriter, r *http.Request) {
	var input api.SetEmailRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	view, err := app.bookings.SetEmail(app.dialogID(r), input.Email)
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	app.writeBooking(w, r, http.StatusOK, view)
}

// ConfirmBooking commits the selected seats. The commit and the receipt request run
// detached from the client connection so a dropped request cannot leave a
// half-finished booking.
func (app *Application) ConfirmBooking(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	confirmation, err := app.bookings.Confirm(context.WithoutCancel(r.Context()), app.dialogID(r))
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	logger.Info("booking confirmed",
		"booking_id", confirmation.BookingID,
		"session_key", confirmation.SessionKey,
		"receipt", confirmation.Receipt.Status)

	resp := api.ConfirmationResponse{
		BookingId:  confirmation.BookingID,
		SessionKey: confirmation.SessionKey,
		Seats:      toSeatIDs(confirmation.Seats),
		Total:      confirmation.Total,
		Receipt: api.Receipt{
			Status:  string(confirmation.Receipt.Status),
			Message: confirmation.Receipt.Message,
		},
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) writeBooking(w http.ResponseWriter, r *http.Request, status int, view booking.View) {
	err := app.writeJSON(w, status, toBookingResponse(view), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toBookingResponse(view booking.View) api.BookingResponse {
	cart := make([]api.CartItem, len(view.Cart))
	for i, item := range view.Cart {
		cart[i] = api.CartItem{
			Name:     item.Name,
			Price:    item.Price,
			Icon:     item.Icon,
			Quantity: item.Quantity,
		}
	}

	return api.BookingResponse{
		State:        view.State.String(),
		MovieId:      view.Movie.ID,
		MovieTitle:   view.Movie.Title,
		Time:         view.Showtime,
		SessionKey:   view.SessionKey,
		TicketPrice:  view.Movie.Price,
		Seats:        toSeatIDs(view.Seats),
		Cart:         cart,
		Email:        view.Email,
		TicketsTotal: view.TicketsTotal,
		CartTotal:    view.CartTotal,
		Total:        view.Total,
	}
}

func toSeatIDs(seats []domain.SeatID) []int {
	ids := make([]int, len(seats))
	for i, id := range seats {
		ids[i] = int(id)
	}

	return ids
}
