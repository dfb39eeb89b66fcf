package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Rugved7/URL-shortener-backend/internal/domain"
	"github.com/Rugved7/URL-shortener-backend/pkg/generator"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const maxGenerateRetries = 3

type URLRepository interface {
	Create(ctx context.Context, url *domain.URL) error
	GetByShortCode(ctx context.Context, shortCode string) (*domain.URL, error)
	IncrementClicks(ctx context.Context, urlID int64) error
	ListByUserID(ctx context.Context, userID int64) ([]domain.URL, error)
}

type CacheRepository interface {
	GetURL(ctx context.Context, shortCode string) (*domain.URL, error)
	SetURL(ctx context.Context, url *domain.URL, ttl time.Duration) error
}

type AnalyticsRepository interface {
	RecordClick(ctx context.Context, click *domain.ClickRequest) error
	GetDailyClicks(ctx context.Context, urlID int64, from, to time.Time) ([]domain.DailyClicks, error)
}

type ShortenerService struct {
	urlRepo       URLRepository
	cacheRepo     CacheRepository
	analyticsRepo AnalyticsRepository
	userRepo      UserRepository
}

func NewShortenerService(
	urlRepo URLRepository,
	cacheRepo CacheRepository,
	analyticsRepo AnalyticsRepository,
	userRepo UserRepository,
) *ShortenerService {
	return &ShortenerService{
		urlRepo:       urlRepo,
		cacheRepo:     cacheRepo,
		analyticsRepo: analyticsRepo,
		userRepo:      userRepo,
	}
}

// Shorten creates a mapping for the request, owned by ownerUsername
// when given. Generated codes retry on collision up to
// maxGenerateRetries; with 62^7 possible codes a collision streak that
// long means the code space is effectively exhausted.
func (s *ShortenerService) Shorten(ctx context.Context, req *domain.ShortenRequest, ownerUsername string) (*domain.URL, error) {
	var userID *int64
	if ownerUsername != "" {
		owner, err := s.userRepo.GetByUsername(ctx, ownerUsername)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve owner: %w", err)
		}
		userID = &owner.ID
	}

	var err error
	shortCode := req.CustomAlias

	for i := 0; i < maxGenerateRetries; i++ {
		if shortCode == "" {
			shortCode, err = generator.GenerateShortCode()
			if err != nil {
				return nil, err
			}
		}

		url := &domain.URL{
			ShortCode:   shortCode,
			OriginalURL: req.OriginalURL,
			UserID:      userID,
			IsActive:    true,
		}

		if req.ExpiryHours > 0 {
			expires := time.Now().Add(time.Duration(req.ExpiryHours) * time.Hour)
			url.ExpiresAt = &expires
		}

		err = s.urlRepo.Create(ctx, url)
		if err == nil {
			return url, nil
		}

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && strings.Contains(pgErr.ConstraintName, "short_code") {
			if req.CustomAlias != "" {
				return nil, domain.ErrAliasTaken
			}
			shortCode = ""
			continue
		}

		return nil, fmt.Errorf("failed to create short url: %w", err)
	}

	return nil, fmt.Errorf("%w: %d generated codes collided", domain.ErrCodeSpaceExhausted, maxGenerateRetries)
}

// Resolve looks up a short code for redirecting, cache first. Cache
// errors degrade to a database read; a miss backfills the cache off
// the request path.
func (s *ShortenerService) Resolve(ctx context.Context, shortCode string) (*domain.URL, error) {
	url, err := s.cacheRepo.GetURL(ctx, shortCode)
	if err == nil && url != nil {
		return url, nil
	}

	url, err = s.urlRepo.GetByShortCode(ctx, shortCode)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to resolve short url: %w", err)
	}

	go func() {
		ttl := 24 * time.Hour
		if url.ExpiresAt != nil {
			ttl = time.Until(*url.ExpiresAt)
		}
		s.cacheRepo.SetURL(context.Background(), url, ttl)
	}()

	return url, nil
}

// RecordClick bumps the mapping's counter and appends the click event.
// Callers on the redirect path invoke it fire-and-forget: an error here
// must never fail the redirect itself.
func (s *ShortenerService) RecordClick(ctx context.Context, click *domain.ClickRequest) error {
	if err := s.urlRepo.IncrementClicks(ctx, click.URLID); err != nil {
		return fmt.Errorf("%w: failed to increment clicks: %w", domain.ErrStoreUnavailable, err)
	}

	if err := s.analyticsRepo.RecordClick(ctx, click); err != nil {
		return fmt.Errorf("%w: failed to record click event: %w", domain.ErrStoreUnavailable, err)
	}

	return nil
}

func (s *ShortenerService) ListForOwner(ctx context.Context, ownerUsername string) ([]domain.URL, error) {
	owner, err := s.userRepo.GetByUsername(ctx, ownerUsername)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve owner: %w", err)
	}

	return s.urlRepo.ListByUserID(ctx, owner.ID)
}

// GetAnalytics builds the zero-filled daily series for a mapping the
// caller owns. Unknown codes and codes owned by someone else both come
// back as ErrNotFound so the endpoint leaks nothing about other users'
// aliases.
func (s *ShortenerService) GetAnalytics(ctx context.Context, shortCode, ownerUsername string, from, to time.Time) (*domain.AnalyticsReport, error) {
	url, err := s.urlRepo.GetByShortCode(ctx, shortCode)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get short url: %w", err)
	}

	owner, err := s.userRepo.GetByUsername(ctx, ownerUsername)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve owner: %w", err)
	}
	if url.UserID == nil || *url.UserID != owner.ID {
		return nil, domain.ErrNotFound
	}

	daily, err := s.analyticsRepo.GetDailyClicks(ctx, url.ID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate clicks: %w", err)
	}

	var total int64
	for _, d := range daily {
		total += d.Count
	}

	return &domain.AnalyticsReport{
		ShortCode:   url.ShortCode,
		OriginalURL: url.OriginalURL,
		TotalClicks: total,
		From:        from.Format("2006-01-02"),
		To:          to.Format("2006-01-02"),
		DailyClicks: daily,
	}, nil
}
