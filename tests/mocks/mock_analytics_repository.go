package mocks

import (
	"context"
	"time"

	"github.com/Rugved7/URL-shortener-backend/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockAnalyticsRepository struct {
	mock.Mock
}

func (m *MockAnalyticsRepository) RecordClick(ctx context.Context, click *domain.ClickRequest) error {
	args := m.Called(ctx, click)
	return args.Error(0)
}

func (m *MockAnalyticsRepository) GetDailyClicks(ctx context.Context, urlID int64, from, to time.Time) ([]domain.DailyClicks, error) {
	args := m.Called(ctx, urlID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DailyClicks), args.Error(1)
}
