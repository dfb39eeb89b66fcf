package mocks

import (
	"context"
	"time"

	"github.com/Rugved7/URL-shortener-backend/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockShortenerService struct {
	mock.Mock
}

func (m *MockShortenerService) Shorten(ctx context.Context, req *domain.ShortenRequest, ownerUsername string) (*domain.URL, error) {
	args := m.Called(ctx, req, ownerUsername)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.URL), args.Error(1)
}

func (m *MockShortenerService) Resolve(ctx context.Context, shortCode string) (*domain.URL, error) {
	args := m.Called(ctx, shortCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.URL), args.Error(1)
}

func (m *MockShortenerService) RecordClick(ctx context.Context, click *domain.ClickRequest) error {
	args := m.Called(ctx, click)
	return args.Error(0)
}

func (m *MockShortenerService) ListForOwner(ctx context.Context, ownerUsername string) ([]domain.URL, error) {
	args := m.Called(ctx, ownerUsername)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.URL), args.Error(1)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, req *domain.LoginRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

type MockAnalyticsService struct {
	mock.Mock
}

func (m *MockAnalyticsService) GetAnalytics(ctx context.Context, shortCode, ownerUsername string, from, to time.Time) (*domain.AnalyticsReport, error) {
	args := m.Called(ctx, shortCode, ownerUsername, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnalyticsReport), args.Error(1)
}
