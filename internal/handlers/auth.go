package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/openpress/openpress-backend/internal/logger"
	"github.com/openpress/openpress-backend/internal/services"
)

type AuthHandler struct {
	authSvc services.AuthService
	log     *logger.Logger
}

func NewAuthHandler(authSvc services.AuthService, baseLog *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authSvc: authSvc,
		log:     baseLog.With("handler", "AuthHandler"),
	}
}

type registerRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Username  string `json:"username" binding:"required"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (ah *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	result, err := ah.authSvc.Register(c.Request.Context(), req.Email, req.Username, req.Password, req.FirstName, req.LastName)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			RespondError(c, http.StatusConflict, "email_taken", err)
			return
		}
		RespondError(c, http.StatusInternalServerError, "internal_error", err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (ah *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	result, err := ah.authSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidLogin) {
			RespondError(c, http.StatusUnauthorized, "invalid_login", err)
			return
		}
		RespondError(c, http.StatusInternalServerError, "internal_error", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

func (ah *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	result, err := ah.authSvc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, services.ErrNoSession) {
			RespondError(c, http.StatusUnauthorized, "no_session", err)
			return
		}
		RespondError(c, http.StatusInternalServerError, "internal_error", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (ah *AuthHandler) Logout(c *gin.Context) {
	token := BearerToken(c)
	if token == "" {
		RespondError(c, http.StatusUnauthorized, "no_session", services.ErrNoSession)
		return
	}
	if err := ah.authSvc.Logout(c.Request.Context(), token); err != nil {
		RespondError(c, http.StatusInternalServerError, "internal_error", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// BearerToken extracts the access token from the Authorization header.
func BearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
