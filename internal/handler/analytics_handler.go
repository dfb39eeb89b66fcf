package handler

import (
	"context"
	"errors"
	"time"

	"github.com/Rugved7/URL-shortener-backend/internal/domain"
	"github.com/Rugved7/URL-shortener-backend/internal/logger"
	"github.com/Rugved7/URL-shortener-backend/internal/middleware"
	"github.com/Rugved7/URL-shortener-backend/pkg/response"
	"github.com/gin-gonic/gin"
)

const (
	dateLayout       = "2006-01-02"
	defaultRangeDays = 30
	maxRangeDays     = 365
)

type AnalyticsService interface {
	GetAnalytics(ctx context.Context, shortCode, ownerUsername string, from, to time.Time) (*domain.AnalyticsReport, error)
}

type AnalyticsHandler struct {
	service AnalyticsService
}

func NewAnalyticsHandler(service AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// GetDailyClicks serves the per-day click series for a short code the
// caller owns. Defaults to the trailing 30 days when no range is
// given.
func (h *AnalyticsHandler) GetDailyClicks(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	shortCode := c.Param("shortCode")
	if shortCode == "" {
		response.BadRequest(c, "Short code is required")
		return
	}

	to := time.Now()
	if param := c.Query("to"); param != "" {
		parsed, err := time.Parse(dateLayout, param)
		if err != nil {
			response.BadRequest(c, "Invalid 'to' date, expected YYYY-MM-DD")
			return
		}
		to = parsed
	}

	from := to.AddDate(0, 0, -(defaultRangeDays - 1))
	if param := c.Query("from"); param != "" {
		parsed, err := time.Parse(dateLayout, param)
		if err != nil {
			response.BadRequest(c, "Invalid 'from' date, expected YYYY-MM-DD")
			return
		}
		from = parsed
	}

	if from.After(to) {
		response.BadRequest(c, "'from' must not be after 'to'")
		return
	}
	if to.Sub(from) > maxRangeDays*24*time.Hour {
		response.BadRequest(c, "Date range too large")
		return
	}

	report, err := h.service.GetAnalytics(c.Request.Context(), shortCode, identity.Username, from, to)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			response.NotFound(c, "Short URL not found")
			return
		}
		logger.FromContext(c.Request.Context()).Error("Failed to get analytics", "error", err)
		response.InternalServerError(c, "Failed to get analytics")
		return
	}

	response.OK(c, "Analytics retrieved successfully", report)
}
