package notify

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/metinatakli/cinema-booking/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMailGatewaySendReceipt(t *testing.T) {
	mailer := NewMockMailer()
	gw := NewMailGateway(mailer)
	gw.now = func() time.Time { return time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC) }

	err := gw.SendReceipt(context.Background(), "booking-1", testBookingRequest())
	require.NoError(t, err)

	sent := mailer.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "a@b.c", sent[0].Recipient)
	assert.Equal(t, receiptTemplate, sent[0].TemplateFile)

	data, ok := sent[0].Data.(receiptData)
	require.True(t, ok)
	assert.Equal(t, "14.03.2026", data.Date)
	assert.Equal(t, "booking-1", data.BookingID)
}

func TestMailGatewayRejectsIncompleteRequest(t *testing.T) {
	mailer := NewMockMailer()
	gw := NewMailGateway(mailer)

	req := testBookingRequest()
	req.MovieTitle = ""

	err := gw.SendReceipt(context.Background(), "booking-1", req)

	var rejected *domain.ReceiptRejectedError
	require.True(t, errors.As(err, &rejected))
	assert.Empty(t, mailer.Sent())
}

func TestMailGatewayPropagatesSendFailure(t *testing.T) {
	mailer := NewMockMailer()
	mailer.Err = errors.New("smtp: connection refused")

	err := NewMailGateway(mailer).SendReceipt(context.Background(), "booking-1", testBookingRequest())
	require.Error(t, err)

	var rejected *domain.ReceiptRejectedError
	assert.False(t, errors.As(err, &rejected))
}

func TestRenderReceiptTemplate(t *testing.T) {
	data := receiptData{
		BookingID: "booking-1",
		Date:      "14.03.2026",
		Request:   testBookingRequest(),
	}

	subject, plain, html, err := renderTemplate(receiptTemplate, data)
	require.NoError(t, err)

	assert.Equal(t, "Your tickets for Interstellar at 10:30", subject)

	for _, want := range []string{
		"Seats:   3, 7",
		"Tickets: 2 x 3.50 = 7.00",
		"Popcorn small x2 = 3.00",
		"Coca-Cola 0.25l x1 = 1.25",
		"Concessions total: 4.25",
		"TOTAL: 11.25",
		"Email: a@b.c",
	} {
		assert.True(t, strings.Contains(plain, want), "plain body missing %q", want)
	}

	assert.Contains(t, html, "<strong>11.25</strong>")
}

func TestRenderReceiptTemplateWithoutCart(t *testing.T) {
	req := testBookingRequest()
	req.Cart = nil

	_, plain, _, err := renderTemplate(receiptTemplate, receiptData{Request: req})
	require.NoError(t, err)

	assert.NotContains(t, plain, "CONCESSIONS")
	assert.Contains(t, plain, "TOTAL: 7.00")
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{350, "3.50"},
		{1125, "11.25"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatMoney(tt.amount))
	}
}
