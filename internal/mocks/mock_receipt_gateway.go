package mocks

import (
	"context"

	"github.com/metinatakli/cinema-booking/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockReceiptGateway struct {
	mock.Mock
}

func (m *MockReceiptGateway) SendReceipt(ctx context.Context, bookingID string, req domain.BookingRequest) error {
	args := m.Called(ctx, bookingID, req)
	return args.Error(0)
}
