package domain

import "time"

type URLClick struct {
	ID         int64     `json:"id"`
	URLID      int64     `json:"url_id"`
	ClickedAt  time.Time `json:"clicked_at"`
	UserAgent  string    `json:"user_agent"`
	Referer    string    `json:"referer"`
	IPAddress  string    `json:"ip_address"`
	DeviceType string    `json:"device_type"`
}

type ClickRequest struct {
	URLID      int64
	UserAgent  string
	Referer    string
	IPAddress  string
	DeviceType string
}

// DailyClicks is one calendar day's aggregated click count. Ranges are
// always zero-filled: days without clicks appear with Count 0.
type DailyClicks struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type AnalyticsReport struct {
	ShortCode   string        `json:"short_code"`
	OriginalURL string        `json:"original_url"`
	TotalClicks int64         `json:"total_clicks"`
	From        string        `json:"from"`
	To          string        `json:"to"`
	DailyClicks []DailyClicks `json:"daily_clicks"`
}
