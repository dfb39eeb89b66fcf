package postgres

import (
	"context"

	"github.com/Rugved7/URL-shortener-backend/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type URLRepository struct {
	db *pgxpool.Pool
}

func NewURLRepository(db *pgxpool.Pool) *URLRepository {
	return &URLRepository{db: db}
}

func (r *URLRepository) Create(ctx context.Context, url *domain.URL) error {
	query := `
		INSERT INTO urls (short_code, original_url, user_id, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	return r.db.QueryRow(ctx, query,
		url.ShortCode,
		url.OriginalURL,
		url.UserID,
		url.ExpiresAt,
	).Scan(&url.ID, &url.CreatedAt, &url.UpdatedAt)
}

func (r *URLRepository) GetByShortCode(ctx context.Context, shortCode string) (*domain.URL, error) {
	var url domain.URL

	query := `
		SELECT id, short_code, original_url, user_id, click_count, created_at, updated_at, expires_at, is_active
		FROM urls
		WHERE short_code = $1 AND is_active = true
		AND (expires_at IS NULL OR expires_at > NOW())
	`

	err := r.db.QueryRow(ctx, query, shortCode).Scan(
		&url.ID,
		&url.ShortCode,
		&url.OriginalURL,
		&url.UserID,
		&url.ClickCount,
		&url.CreatedAt,
		&url.UpdatedAt,
		&url.ExpiresAt,
		&url.IsActive,
	)
	if err != nil {
		return nil, err
	}

	return &url, nil
}

// IncrementClicks bumps the counter in a single UPDATE so concurrent
// redirects on the same code never lose updates.
func (r *URLRepository) IncrementClicks(ctx context.Context, urlID int64) error {
	query := `
		UPDATE urls
		SET click_count = click_count + 1, updated_at = NOW()
		WHERE id = $1
	`

	_, err := r.db.Exec(ctx, query, urlID)
	return err
}

func (r *URLRepository) ListByUserID(ctx context.Context, userID int64) ([]domain.URL, error) {
	query := `
		SELECT id, short_code, original_url, user_id, click_count, created_at, updated_at, expires_at, is_active
		FROM urls
		WHERE user_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var urls []domain.URL
	for rows.Next() {
		var url domain.URL
		err := rows.Scan(
			&url.ID,
			&url.ShortCode,
			&url.OriginalURL,
			&url.UserID,
			&url.ClickCount,
			&url.CreatedAt,
			&url.UpdatedAt,
			&url.ExpiresAt,
			&url.IsActive,
		)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}

	return urls, rows.Err()
}
