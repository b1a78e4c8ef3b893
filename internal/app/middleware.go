package app

import (
	"github.com/gin-gonic/gin"

	"github.com/openpress/openpress-backend/internal/logger"
	"github.com/openpress/openpress-backend/internal/middleware"
)

type Middleware struct {
	RequireAuth  gin.HandlerFunc
	OptionalAuth gin.HandlerFunc
}

func wireMiddleware(log *logger.Logger, serviceset Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		RequireAuth:  middleware.RequireAuth(serviceset.Auth, log),
		OptionalAuth: middleware.OptionalAuth(serviceset.Auth, log),
	}
}
