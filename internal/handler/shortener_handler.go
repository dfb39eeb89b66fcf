package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Rugved7/URL-shortener-backend/internal/domain"
	"github.com/Rugved7/URL-shortener-backend/internal/logger"
	"github.com/Rugved7/URL-shortener-backend/internal/middleware"
	"github.com/Rugved7/URL-shortener-backend/pkg/detector"
	"github.com/Rugved7/URL-shortener-backend/pkg/response"
	"github.com/Rugved7/URL-shortener-backend/pkg/validator"
	"github.com/gin-gonic/gin"
)

// clickRecordTimeout bounds the detached click write after the
// redirect response has already been sent.
const clickRecordTimeout = 5 * time.Second

type ShortenerService interface {
	Shorten(ctx context.Context, req *domain.ShortenRequest, ownerUsername string) (*domain.URL, error)
	Resolve(ctx context.Context, shortCode string) (*domain.URL, error)
	RecordClick(ctx context.Context, click *domain.ClickRequest) error
	ListForOwner(ctx context.Context, ownerUsername string) ([]domain.URL, error)
}

type ShortenerHandler struct {
	service        ShortenerService
	baseURL        string
	allowAnonymous bool
}

func NewShortenerHandler(service ShortenerService, baseURL string, allowAnonymous bool) *ShortenerHandler {
	return &ShortenerHandler{
		service:        service,
		baseURL:        baseURL,
		allowAnonymous: allowAnonymous,
	}
}

func (h *ShortenerHandler) ShortenURL(c *gin.Context) {
	var req domain.ShortenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if errs := validator.Validate(req); len(errs) > 0 {
		response.ValidationErrors(c, errs)
		return
	}

	if req.CustomAlias != "" && validator.IsReservedKeyword(req.CustomAlias) {
		response.BadRequest(c, "Custom alias is reserved")
		return
	}

	var ownerUsername string
	if identity, ok := middleware.IdentityFrom(c); ok {
		ownerUsername = identity.Username
	} else if !h.allowAnonymous {
		response.Unauthorized(c, "Authentication required")
		return
	}

	url, err := h.service.Shorten(c.Request.Context(), &req, ownerUsername)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAliasTaken):
			response.Conflict(c, "Custom alias already taken")
		case errors.Is(err, domain.ErrCodeSpaceExhausted):
			logger.FromContext(c.Request.Context()).Error("Short code generation exhausted", "error", err)
			response.InternalServerError(c, "Failed to generate short code")
		default:
			logger.FromContext(c.Request.Context()).Error("Failed to shorten URL", "error", err)
			response.InternalServerError(c, "Failed to shorten URL")
		}
		return
	}

	response.Created(c, "Short URL created", gin.H{
		"short_url":    h.baseURL + "/" + url.ShortCode,
		"short_code":   url.ShortCode,
		"original_url": url.OriginalURL,
		"expires_at":   url.ExpiresAt,
	})
}

// Redirect is the public hot path. The click is recorded after the
// response is on its way; an analytics failure is logged and never
// turns a working redirect into an error.
func (h *ShortenerHandler) Redirect(c *gin.Context) {
	shortCode := c.Param("shortCode")

	url, err := h.service.Resolve(c.Request.Context(), shortCode)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			response.NotFound(c, "Short URL not found")
			return
		}
		logger.FromContext(c.Request.Context()).Error("Failed to resolve short URL", "error", err)
		response.InternalServerError(c, "Failed to resolve short URL")
		return
	}

	userAgent := c.Request.UserAgent()
	click := &domain.ClickRequest{
		URLID:      url.ID,
		UserAgent:  userAgent,
		Referer:    c.Request.Referer(),
		IPAddress:  c.ClientIP(),
		DeviceType: detector.DetectDeviceType(userAgent),
	}

	log := logger.FromContext(c.Request.Context())
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), clickRecordTimeout)
		defer cancel()

		if err := h.service.RecordClick(ctx, click); err != nil {
			log.Warn("Failed to record click", "short_code", shortCode, "error", err)
		}
	}()

	c.Redirect(http.StatusFound, url.OriginalURL)
}

func (h *ShortenerHandler) ListURLs(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	urls, err := h.service.ListForOwner(c.Request.Context(), identity.Username)
	if err != nil {
		logger.FromContext(c.Request.Context()).Error("Failed to list URLs", "error", err)
		response.InternalServerError(c, "Failed to list URLs")
		return
	}

	response.OK(c, "URLs retrieved successfully", gin.H{"urls": urls})
}
