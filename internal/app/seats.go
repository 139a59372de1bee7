package app

import (
	"net/http"

	"github.com/metinatakli/cinema-booking/api"
	"github.com/metinatakli/cinema-booking/internal/domain"
)

// GetSeatMap lists all seats of a screening by row. Seats picked in the caller's
// open booking for the same screening are flagged as selected.
func (app *Application) GetSeatMap(w http.ResponseWriter, r *http.Request, movieID int, showtime string) {
	if _, _, err := domain.ParseShowtime(showtime); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	movie, err := app.catalog.Screening(movieID, showtime)
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	sessionKey := domain.SessionKey(movie.ID, showtime)

	selected := map[domain.SeatID]bool{}
	if view, err := app.bookings.View(app.dialogID(r)); err == nil && view.SessionKey == sessionKey {
		for _, id := range view.Seats {
			selected[id] = true
		}
	}

	seats := domain.SeatMap(func(id domain.SeatID) bool {
		return app.inventory.IsBooked(sessionKey, id)
	})

	resp := api.SeatMapResponse{
		MovieId:    movie.ID,
		Time:       showtime,
		SessionKey: sessionKey,
		SeatRows:   toSeatRows(seats, selected),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toSeatRows(seats []domain.Seat, selected map[domain.SeatID]bool) []api.SeatRow {
	rows := make([]api.SeatRow, 0, domain.SeatRows)

	for _, seat := range seats {
		if len(rows) == 0 || rows[len(rows)-1].Row != seat.Row {
			rows = append(rows, api.SeatRow{Row: seat.Row, Seats: make([]api.Seat, 0, domain.SeatsPerRow)})
		}

		row := &rows[len(rows)-1]
		row.Seats = append(row.Seats, api.Seat{
			Id:       int(seat.ID),
			Row:      seat.Row,
			Column:   seat.Col,
			Booked:   seat.Booked,
			Selected: selected[seat.ID],
		})
	}

	return rows
}
