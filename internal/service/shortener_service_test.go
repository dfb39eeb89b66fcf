package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Rugved7/URL-shortener-backend/internal/domain"
	"github.com/Rugved7/URL-shortener-backend/pkg/generator"
	"github.com/Rugved7/URL-shortener-backend/tests/mocks"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type shortenerMocks struct {
	urlRepo       *mocks.MockURLRepository
	cacheRepo     *mocks.MockCacheRepository
	analyticsRepo *mocks.MockAnalyticsRepository
	userRepo      *mocks.MockUserRepository
}

func newShortenerService() (*ShortenerService, *shortenerMocks) {
	m := &shortenerMocks{
		urlRepo:       new(mocks.MockURLRepository),
		cacheRepo:     new(mocks.MockCacheRepository),
		analyticsRepo: new(mocks.MockAnalyticsRepository),
		userRepo:      new(mocks.MockUserRepository),
	}
	return NewShortenerService(m.urlRepo, m.cacheRepo, m.analyticsRepo, m.userRepo), m
}

func shortCodeCollision() *pgconn.PgError {
	return &pgconn.PgError{
		Code:           "23505",
		ConstraintName: "urls_short_code_key",
	}
}

func TestShorten_Anonymous_GeneratedCode(t *testing.T) {
	service, m := newShortenerService()
	ctx := context.Background()

	req := &domain.ShortenRequest{OriginalURL: "https://example.com"}

	m.urlRepo.On("Create", ctx, mock.MatchedBy(func(url *domain.URL) bool {
		return url.OriginalURL == "https://example.com" &&
			len(url.ShortCode) == generator.CodeLength &&
			url.UserID == nil &&
			url.IsActive &&
			url.ExpiresAt == nil
	})).Return(nil).Once()

	result, err := service.Shorten(ctx, req, "")

	assert.NoError(t, err)
	require.NotNil(t, result)
	assert.Len(t, result.ShortCode, generator.CodeLength)
	m.urlRepo.AssertExpectations(t)
	m.userRepo.AssertNotCalled(t, "GetByUsername")
}

func TestShorten_WithOwner(t *testing.T) {
	service, m := newShortenerService()
	ctx := context.Background()

	req := &domain.ShortenRequest{OriginalURL: "https://example.com"}

	m.userRepo.On("GetByUsername", ctx, "alice").
		Return(&domain.User{ID: 7, Username: "alice"}, nil).Once()
	m.urlRepo.On("Create", ctx, mock.MatchedBy(func(url *domain.URL) bool {
		return url.UserID != nil && *url.UserID == 7
	})).Return(nil).Once()

	result, err := service.Shorten(ctx, req, "alice")

	assert.NoError(t, err)
	require.NotNil(t, result)
	require.NotNil(t, result.UserID)
	assert.Equal(t, int64(7), *result.UserID)
	m.userRepo.AssertExpectations(t)
	m.urlRepo.AssertExpectations(t)
}

func TestShorten_CustomAlias(t *testing.T) {
	service, m := newShortenerService()
	ctx := context.Background()

	req := &domain.ShortenRequest{
		OriginalURL: "https://example.com",
		CustomAlias: "mylink",
	}

	m.urlRepo.On("Create", ctx, mock.MatchedBy(func(url *domain.URL) bool {
		return url.ShortCode == "mylink"
	})).Return(nil).Once()

	result, err := service.Shorten(ctx, req, "")

	assert.NoError(t, err)
	assert.Equal(t, "mylink", result.ShortCode)
	m.urlRepo.AssertExpectations(t)
}

func TestShorten_WithExpiry(t *testing.T) {
	service, m := newShortenerService()
	ctx := context.Background()

	req := &domain.ShortenRequest{
		OriginalURL: "https://example.com",
		ExpiryHours: 24,
	}

	m.urlRepo.On("Create", ctx, mock.MatchedBy(func(url *domain.URL) bool {
		if url.ExpiresAt == nil {
			return false
		}
		diff := url.ExpiresAt.Sub(time.Now().Add(24 * time.Hour))
		return diff < time.Minute && diff > -time.Minute
	})).Return(nil).Once()

	result, err := service.Shorten(ctx, req, "")

	assert.NoError(t, err)
	assert.NotNil(t, result.ExpiresAt)
	m.urlRepo.AssertExpectations(t)
}

func TestShorten_RetryAfterCollision(t *testing.T) {
	service, m := newShortenerService()
	ctx := context.Background()

	req := &domain.ShortenRequest{OriginalURL: "https://example.com"}

	m.urlRepo.On("Create", ctx, mock.AnythingOfType("*domain.URL")).
		Return(shortCodeCollision()).Once()
	m.urlRepo.On("Create", ctx, mock.AnythingOfType("*domain.URL")).
		Return(nil).Once()

	result, err := service.Shorten(ctx, req, "")

	assert.NoError(t, err)
	assert.NotNil(t, result)
	m.urlRepo.AssertNumberOfCalls(t, "Create", 2)
}

func TestShorten_CodeSpaceExhausted(t *testing.T) {
	service, m := newShortenerService()
	ctx := context.Background()

	req := &domain.ShortenRequest{OriginalURL: "https://example.com"}

	m.urlRepo.On("Create", ctx, mock.AnythingOfType("*domain.URL")).
		Return(shortCodeCollision()).Times(3)

	result, err := service.Shorten(ctx, req, "")

	assert.ErrorIs(t, err, domain.ErrCodeSpaceExhausted)
	assert.Nil(t, result)
	m.urlRepo.AssertNumberOfCalls(t, "Create", 3)
}

func TestShorten_CustomAliasTaken(t *testing.T) {
	service, m := newShortenerService()
	ctx := context.Background()

	req := &domain.ShortenRequest{
		OriginalURL: "https://example.com",
		CustomAlias: "existing",
	}

	m.urlRepo.On("Create", ctx, mock.AnythingOfType("*domain.URL")).
		Return(shortCodeCollision()).Once()

	result, err := service.Shorten(ctx, req, "")

	assert.ErrorIs(t, err, domain.ErrAliasTaken)
	assert.Nil(t, result)
	m.urlRepo.AssertNumberOfCalls(t, "Create", 1)
}

func TestResolve_FromCache(t *testing.T) {
	service, m := newShortenerService()
	ctx := context.Background()

	cachedURL := &domain.URL{
		ID:          1,
		ShortCode:   "abc1234",
		OriginalURL: "https://example.com",
		IsActive:    true,
	}

	m.cacheRepo.On("GetURL", ctx, "abc1234").Return(cachedURL, nil).Once()

	result, err := service.Resolve(ctx, "abc1234")

	assert.NoError(t, err)
	assert.Equal(t, cachedURL.OriginalURL, result.OriginalURL)
	m.cacheRepo.AssertExpectations(t)
	m.urlRepo.AssertNotCalled(t, "GetByShortCode")
}

func TestResolve_CacheMiss_BackfillsCache(t *testing.T) {
	service, m := newShortenerService()
	ctx := context.Background()

	expectedURL := &domain.URL{
		ID:          1,
		ShortCode:   "abc1234",
		OriginalURL: "https://example.com",
		IsActive:    true,
	}

	m.cacheRepo.On("GetURL", ctx, "abc1234").Return(nil, nil).Once()
	m.urlRepo.On("GetByShortCode", ctx, "abc1234").Return(expectedURL, nil).Once()
	m.cacheRepo.On("SetURL", mock.Anything, expectedURL, mock.AnythingOfType("time.Duration")).
		Return(nil).Maybe()

	result, err := service.Resolve(ctx, "abc1234")

	assert.NoError(t, err)
	assert.Equal(t, expectedURL.OriginalURL, result.OriginalURL)
	m.urlRepo.AssertExpectations(t)
}

func TestResolve_CacheError_FallsBackToDB(t *testing.T) {
	service, m := newShortenerService()
	ctx := context.Background()

	expectedURL := &domain.URL{
		ID:          1,
		ShortCode:   "abc1234",
		OriginalURL: "https://example.com",
		IsActive:    true,
	}

	m.cacheRepo.On("GetURL", ctx, "abc1234").
		Return(nil, errors.New("redis connection error")).Once()
	m.urlRepo.On("GetByShortCode", ctx, "abc1234").Return(expectedURL, nil).Once()
	m.cacheRepo.On("SetURL", mock.Anything, expectedURL, mock.AnythingOfType("time.Duration")).
		Return(nil).Maybe()

	result, err := service.Resolve(ctx, "abc1234")

	assert.NoError(t, err)
	assert.Equal(t, expectedURL.OriginalURL, result.OriginalURL)
	m.urlRepo.AssertExpectations(t)
}

func TestResolve_NotFound(t *testing.T) {
	service, m := newShortenerService()
	ctx := context.Background()

	m.cacheRepo.On("GetURL", ctx, "missing").Return(nil, nil).Once()
	m.urlRepo.On("GetByShortCode", ctx, "missing").Return(nil, pgx.ErrNoRows).Once()

	result, err := service.Resolve(ctx, "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, result)
}

func TestRecordClick_IncrementsAndAppends(t *testing.T) {
	service, m := newShortenerService()
	ctx := context.Background()

	click := &domain.ClickRequest{URLID: 1, DeviceType: "desktop"}

	m.urlRepo.On("IncrementClicks", ctx, int64(1)).Return(nil).Once()
	m.analyticsRepo.On("RecordClick", ctx, click).Return(nil).Once()

	err := service.RecordClick(ctx, click)

	assert.NoError(t, err)
	m.urlRepo.AssertExpectations(t)
	m.analyticsRepo.AssertExpectations(t)
}

func TestRecordClick_IncrementFails(t *testing.T) {
	service, m := newShortenerService()
	ctx := context.Background()

	click := &domain.ClickRequest{URLID: 1}

	m.urlRepo.On("IncrementClicks", ctx, int64(1)).
		Return(errors.New("connection timeout")).Once()

	err := service.RecordClick(ctx, click)

	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	m.analyticsRepo.AssertNotCalled(t, "RecordClick")
}

func TestRecordClick_EventInsertFails(t *testing.T) {
	service, m := newShortenerService()
	ctx := context.Background()

	click := &domain.ClickRequest{URLID: 1}

	m.urlRepo.On("IncrementClicks", ctx, int64(1)).Return(nil).Once()
	m.analyticsRepo.On("RecordClick", ctx, click).
		Return(errors.New("connection timeout")).Once()

	err := service.RecordClick(ctx, click)

	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestListForOwner(t *testing.T) {
	service, m := newShortenerService()
	ctx := context.Background()

	userID := int64(7)
	urls := []domain.URL{
		{ID: 1, ShortCode: "first01", UserID: &userID},
		{ID: 2, ShortCode: "second2", UserID: &userID},
	}

	m.userRepo.On("GetByUsername", ctx, "alice").
		Return(&domain.User{ID: 7, Username: "alice"}, nil).Once()
	m.urlRepo.On("ListByUserID", ctx, int64(7)).Return(urls, nil).Once()

	result, err := service.ListForOwner(ctx, "alice")

	assert.NoError(t, err)
	assert.Equal(t, urls, result)
}

func TestGetAnalytics_OwnerSeesZeroFilledSeries(t *testing.T) {
	service, m := newShortenerService()
	ctx := context.Background()

	userID := int64(7)
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)

	daily := []domain.DailyClicks{
		{Date: "2026-08-01", Count: 3},
		{Date: "2026-08-02", Count: 0},
		{Date: "2026-08-03", Count: 1},
	}

	m.urlRepo.On("GetByShortCode", ctx, "abc1234").Return(&domain.URL{
		ID:          1,
		ShortCode:   "abc1234",
		OriginalURL: "https://example.com",
		UserID:      &userID,
	}, nil).Once()
	m.userRepo.On("GetByUsername", ctx, "alice").
		Return(&domain.User{ID: 7, Username: "alice"}, nil).Once()
	m.analyticsRepo.On("GetDailyClicks", ctx, int64(1), from, to).Return(daily, nil).Once()

	report, err := service.GetAnalytics(ctx, "abc1234", "alice", from, to)

	require.NoError(t, err)
	assert.Equal(t, daily, report.DailyClicks)
	assert.Equal(t, int64(4), report.TotalClicks)
	assert.Equal(t, "2026-08-01", report.From)
	assert.Equal(t, "2026-08-03", report.To)
}

func TestGetAnalytics_NotOwner(t *testing.T) {
	service, m := newShortenerService()
	ctx := context.Background()

	ownerID := int64(3)

	m.urlRepo.On("GetByShortCode", ctx, "abc1234").Return(&domain.URL{
		ID:     1,
		UserID: &ownerID,
	}, nil).Once()
	m.userRepo.On("GetByUsername", ctx, "mallory").
		Return(&domain.User{ID: 9, Username: "mallory"}, nil).Once()

	report, err := service.GetAnalytics(ctx, "abc1234", "mallory", time.Now().AddDate(0, 0, -7), time.Now())

	// Someone else's alias looks exactly like a missing one.
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, report)
	m.analyticsRepo.AssertNotCalled(t, "GetDailyClicks")
}

func TestGetAnalytics_UnknownCode(t *testing.T) {
	service, m := newShortenerService()
	ctx := context.Background()

	m.urlRepo.On("GetByShortCode", ctx, "missing").Return(nil, pgx.ErrNoRows).Once()

	report, err := service.GetAnalytics(ctx, "missing", "alice", time.Now().AddDate(0, 0, -7), time.Now())

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, report)
}
