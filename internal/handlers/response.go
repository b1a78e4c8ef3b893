package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/openpress/openpress-backend/internal/services"
)

type ErrorBody struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

type ErrorEnvelope struct {
	Error ErrorBody `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	message := ""
	if err != nil {
		message = err.Error()
	}
	c.JSON(status, ErrorEnvelope{Error: ErrorBody{Message: message, Code: code}})
}

// respondServiceError maps service sentinels onto the HTTP surface. Subdomain
// conflicts stay 500 to match the shape clients already handle.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrForbidden):
		RespondError(c, 403, "forbidden", err)
	case errors.Is(err, services.ErrNotFound):
		RespondError(c, 404, "not_found", err)
	case errors.Is(err, services.ErrConflict):
		RespondError(c, 500, "subdomain_conflict", err)
	case errors.Is(err, services.ErrReservedSlug):
		RespondError(c, 400, "reserved_slug", err)
	default:
		RespondError(c, 500, "internal_error", err)
	}
}
