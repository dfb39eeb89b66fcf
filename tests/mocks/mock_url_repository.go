package mocks

import (
	"context"

	"github.com/Rugved7/URL-shortener-backend/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockURLRepository struct {
	mock.Mock
}

func (m *MockURLRepository) Create(ctx context.Context, url *domain.URL) error {
	args := m.Called(ctx, url)
	return args.Error(0)
}

func (m *MockURLRepository) GetByShortCode(ctx context.Context, shortCode string) (*domain.URL, error) {
	args := m.Called(ctx, shortCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.URL), args.Error(1)
}

func (m *MockURLRepository) IncrementClicks(ctx context.Context, urlID int64) error {
	args := m.Called(ctx, urlID)
	return args.Error(0)
}

func (m *MockURLRepository) ListByUserID(ctx context.Context, userID int64) ([]domain.URL, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.URL), args.Error(1)
}
