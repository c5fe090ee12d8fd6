package fraud

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/SlotGuard_Go/internal/domain"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Record(ctx context.Context, evt domain.FraudEvent) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

func (m *MockRepository) List(ctx context.Context, filter Filter) ([]domain.FraudEvent, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FraudEvent), args.Error(1)
}

func (m *MockRepository) CleanupOlderThan(ctx context.Context, retentionDays int) (int64, error) {
	args := m.Called(ctx, retentionDays)
	return args.Get(0).(int64), args.Error(1)
}
