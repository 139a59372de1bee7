package domain

import "context"

// BookingRequest is the receipt request sent to the notification gateway.
// It is assembled at confirm time and never persisted.
type BookingRequest struct {
	Email       string     `json:"email"`
	MovieTitle  string     `json:"movieTitle"`
	MovieTime   string     `json:"movieTime"`
	Seats       []SeatID   `json:"seats"`
	TicketPrice int64      `json:"ticketPrice"`
	Cart        []CartItem `json:"cart"`
}

func (r BookingRequest) TicketsTotal() int64 {
	return r.TicketPrice * int64(len(r.Seats))
}

func (r BookingRequest) CartTotal() int64 {
	var total int64
	for _, item := range r.Cart {
		total += item.Price * int64(item.Quantity)
	}

	return total
}

func (r BookingRequest) Total() int64 {
	return r.TicketsTotal() + r.CartTotal()
}

type ReceiptStatus string

const (
	ReceiptDelivered ReceiptStatus = "delivered"
	ReceiptRejected  ReceiptStatus = "rejected"
	ReceiptFailed    ReceiptStatus = "failed"
)

// ReceiptGateway delivers a receipt for a committed booking. Its outcome never affects
// whether the booking stands.
type ReceiptGateway interface {
	SendReceipt(ctx context.Context, bookingID string, req BookingRequest) error
}

// ReceiptRejectedError is returned by gateways when the receiving service answered but
// refused the request.
type ReceiptRejectedError struct {
	StatusCode int
	Reason     string
}

func (e *ReceiptRejectedError) Error() string {
	if e.Reason == "" {
		return "receipt rejected: unknown error"
	}

	return "receipt rejected: " + e.Reason
}
