package handler

import (
	"context"
	"errors"

	"github.com/Rugved7/URL-shortener-backend/internal/domain"
	"github.com/Rugved7/URL-shortener-backend/internal/logger"
	"github.com/Rugved7/URL-shortener-backend/pkg/response"
	"github.com/Rugved7/URL-shortener-backend/pkg/validator"
	"github.com/gin-gonic/gin"
)

type AuthService interface {
	Register(ctx context.Context, req *domain.RegisterRequest) (*domain.User, error)
	Login(ctx context.Context, req *domain.LoginRequest) (string, error)
}

type AuthHandler struct {
	service AuthService
}

func NewAuthHandler(service AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req domain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if errs := validator.Validate(req); len(errs) > 0 {
		response.ValidationErrors(c, errs)
		return
	}

	user, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateUsername) {
			response.Conflict(c, "Username already taken")
			return
		}
		logger.FromContext(c.Request.Context()).Error("Registration failed", "error", err)
		response.InternalServerError(c, "Failed to register user")
		return
	}

	response.Created(c, "User registered successfully", gin.H{
		"username": user.Username,
		"email":    user.Email,
		"role":     user.Role,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if errs := validator.Validate(req); len(errs) > 0 {
		response.ValidationErrors(c, errs)
		return
	}

	signed, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			response.Unauthorized(c, "Invalid username or password")
			return
		}
		logger.FromContext(c.Request.Context()).Error("Login failed", "error", err)
		response.InternalServerError(c, "Failed to log in")
		return
	}

	response.OK(c, "Login successful", gin.H{"token": signed})
}
