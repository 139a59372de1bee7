package mocks

import (
	"context"

	"github.com/metinatakli/cinema-booking/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockBookingStore struct {
	mock.Mock
}

func (m *MockBookingStore) Read(ctx context.Context, key string) (*domain.Record, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Record), args.Error(1)
}

func (m *MockBookingStore) Write(ctx context.Context, key string, value []byte, version int64) (int64, error) {
	args := m.Called(ctx, key, value, version)
	return args.Get(0).(int64), args.Error(1)
}
