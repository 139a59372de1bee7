// Package api holds the JSON request and response bodies of the HTTP API.
package api

import "time"

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	RequestId        string            `json:"requestId"`
	Timestamp        time.Time         `json:"timestamp"`
	ValidationErrors []ValidationError `json:"validationErrors"`
}

type SystemInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type HealthcheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"systemInfo"`
}

type Countdown struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

type Showtime struct {
	Time     string    `json:"time"`
	StartsIn Countdown `json:"startsIn"`
}

type Movie struct {
	Id        int        `json:"id"`
	Title     string     `json:"title"`
	Price     int64      `json:"price"`
	Showtimes []Showtime `json:"showtimes"`
}

type MovieListResponse struct {
	Movies []Movie `json:"movies"`
}

type MenuItem struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
	Icon  string `json:"icon"`
}

type MenuResponse struct {
	Items []MenuItem `json:"items"`
}

type Seat struct {
	Id       int  `json:"id"`
	Row      int  `json:"row"`
	Column   int  `json:"column"`
	Booked   bool `json:"booked"`
	Selected bool `json:"selected"`
}

type SeatRow struct {
	Row   int    `json:"row"`
	Seats []Seat `json:"seats"`
}

type SeatMapResponse struct {
	MovieId    int       `json:"movieId"`
	Time       string    `json:"time"`
	SessionKey string    `json:"sessionKey"`
	SeatRows   []SeatRow `json:"seatRows"`
}

type OpenBookingRequest struct {
	MovieId int    `json:"movieId" validate:"required,gt=0"`
	Time    string `json:"time" validate:"required,showtime"`
}

type AddCartItemRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type SetEmailRequest struct {
	Email string `json:"email" validate:"max=254"`
}

type CartItem struct {
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Icon     string `json:"icon"`
	Quantity int    `json:"quantity"`
}

type BookingResponse struct {
	State        string     `json:"state"`
	MovieId      int        `json:"movieId"`
	MovieTitle   string     `json:"movieTitle"`
	Time         string     `json:"time"`
	SessionKey   string     `json:"sessionKey"`
	TicketPrice  int64      `json:"ticketPrice"`
	Seats        []int      `json:"seats"`
	Cart         []CartItem `json:"cart"`
	Email        string     `json:"email"`
	TicketsTotal int64      `json:"ticketsTotal"`
	CartTotal    int64      `json:"cartTotal"`
	Total        int64      `json:"total"`
}

type Receipt struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type ConfirmationResponse struct {
	BookingId  string  `json:"bookingId"`
	SessionKey string  `json:"sessionKey"`
	Seats      []int   `json:"seats"`
	Total      int64   `json:"total"`
	Receipt    Receipt `json:"receipt"`
}
