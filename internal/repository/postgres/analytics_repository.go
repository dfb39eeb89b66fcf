package postgres

import (
	"context"
	"time"

	"github.com/Rugved7/URL-shortener-backend/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AnalyticsRepository struct {
	db *pgxpool.Pool
}

func NewAnalyticsRepository(db *pgxpool.Pool) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

func (r *AnalyticsRepository) RecordClick(ctx context.Context, click *domain.ClickRequest) error {
	query := `
		INSERT INTO url_clicks (url_id, user_agent, referer, ip_address, device_type)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		click.URLID,
		click.UserAgent,
		click.Referer,
		click.IPAddress,
		click.DeviceType,
	)
	return err
}

// GetDailyClicks returns one row per calendar day between from and to
// inclusive. Days without clicks come back with a zero count, so the
// series is always contiguous and ascending.
func (r *AnalyticsRepository) GetDailyClicks(ctx context.Context, urlID int64, from, to time.Time) ([]domain.DailyClicks, error) {
	query := `
		SELECT d::date AS day, COUNT(c.id) AS clicks
		FROM generate_series($2::date, $3::date, '1 day') AS d
		LEFT JOIN url_clicks c
			ON c.url_id = $1 AND c.clicked_at::date = d::date
		GROUP BY day
		ORDER BY day ASC
	`

	rows, err := r.db.Query(ctx, query, urlID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.DailyClicks
	for rows.Next() {
		var day time.Time
		var dc domain.DailyClicks
		if err := rows.Scan(&day, &dc.Count); err != nil {
			return nil, err
		}
		dc.Date = day.Format("2006-01-02")
		results = append(results, dc)
	}

	return results, rows.Err()
}

func (r *AnalyticsRepository) CountClicks(ctx context.Context, urlID int64, from, to time.Time) (int64, error) {
	var total int64

	query := `
		SELECT COUNT(*)
		FROM url_clicks
		WHERE url_id = $1
		AND clicked_at::date BETWEEN $2::date AND $3::date
	`

	if err := r.db.QueryRow(ctx, query, urlID, from, to).Scan(&total); err != nil {
		return 0, err
	}

	return total, nil
}
