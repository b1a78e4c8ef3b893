package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/openpress/openpress-backend/internal/handlers"
	"github.com/openpress/openpress-backend/internal/logger"
	"github.com/openpress/openpress-backend/internal/services"
)

// RequireAuth rejects requests without a valid, unrevoked access token and
// attaches the principal to the request context.
func RequireAuth(authSvc services.AuthService, baseLog *logger.Logger) gin.HandlerFunc {
	log := baseLog.With("middleware", "RequireAuth")
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			handlers.RespondError(c, http.StatusUnauthorized, "no_session", services.ErrNoSession)
			c.Abort()
			return
		}
		ctx, err := authSvc.SetContextFromToken(c.Request.Context(), token)
		if err != nil {
			log.Debug("rejected request", "path", c.FullPath(), "error", err)
			handlers.RespondError(c, http.StatusUnauthorized, "no_session", services.ErrNoSession)
			c.Abort()
			return
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// OptionalAuth attaches the principal when a valid token is present and
// passes the request through anonymously otherwise.
func OptionalAuth(authSvc services.AuthService, baseLog *logger.Logger) gin.HandlerFunc {
	log := baseLog.With("middleware", "OptionalAuth")
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token != "" {
			ctx, err := authSvc.SetContextFromToken(c.Request.Context(), token)
			if err == nil {
				c.Request = c.Request.WithContext(ctx)
			} else {
				log.Debug("ignoring invalid token", "path", c.FullPath(), "error", err)
			}
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
