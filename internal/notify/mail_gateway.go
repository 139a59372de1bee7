package notify

import (
	"context"
	"time"

	"github.com/metinatakli/cinema-booking/internal/domain"
)

const receiptTemplate = "receipt.tmpl"

type receiptData struct {
	BookingID string
	Date      string
	Request   domain.BookingRequest
}

// MailGateway renders the receipt itself and sends it over SMTP.
type MailGateway struct {
	mailer Mailer
	now    func() time.Time
}

func NewMailGateway(mailer Mailer) *MailGateway {
	return &MailGateway{
		mailer: mailer,
		now:    time.Now,
	}
}

func (g *MailGateway) SendReceipt(ctx context.Context, bookingID string, req domain.BookingRequest) error {
	if req.Email == "" || req.MovieTitle == "" {
		return &domain.ReceiptRejectedError{Reason: "email and movie title are required"}
	}

	data := receiptData{
		BookingID: bookingID,
		Date:      g.now().Format("02.01.2006"),
		Request:   req,
	}

	return g.mailer.Send(req.Email, receiptTemplate, data)
}
