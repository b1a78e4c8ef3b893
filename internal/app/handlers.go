package app

import (
	"github.com/openpress/openpress-backend/internal/handlers"
	"github.com/openpress/openpress-backend/internal/logger"
)

type Handlers struct {
	Auth    *handlers.AuthHandler
	Journal *handlers.JournalHandler
}

func wireHandlers(log *logger.Logger, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:    handlers.NewAuthHandler(serviceset.Auth, log),
		Journal: handlers.NewJournalHandler(serviceset.Journal, log),
	}
}
