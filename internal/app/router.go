package app

import (
	"github.com/gin-gonic/gin"

	"github.com/openpress/openpress-backend/internal/server"
)

func wireRouter(cfg Config, handlerset Handlers, middlewareset Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		AuthHandler:    handlerset.Auth,
		JournalHandler: handlerset.Journal,
		RequireAuth:    middlewareset.RequireAuth,
		OptionalAuth:   middlewareset.OptionalAuth,
		AllowOrigins:   cfg.AllowOrigins,
	})
}
