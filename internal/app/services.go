package app

import (
	"github.com/openpress/openpress-backend/internal/logger"
	"github.com/openpress/openpress-backend/internal/services"
)

type Services struct {
	Auth         services.AuthService
	Pub          services.PubService
	Image        services.ImageService
	Translations services.TranslationService
	Journal      services.JournalService
}

func wireServices(log *logger.Logger, cfg Config, reposet Repos, clients Clients) Services {
	log.Info("Wiring services...")
	authSvc := services.NewAuthService(reposet.User, reposet.UserToken, cfg.JWTSecretKey, cfg.AccessTokenTTLMin, cfg.RefreshTokenTTLDays, log)
	pubSvc := services.NewPubService(reposet.Pub, log)
	imageSvc := services.NewImageService(clients.Bucket, log)
	translationSvc := services.NewTranslationService(cfg.TranslationsDir, log)
	journalSvc := services.NewJournalService(
		reposet.Journal,
		reposet.User,
		reposet.Asset,
		reposet.Notification,
		pubSvc,
		imageSvc,
		translationSvc,
		clients.Sessions,
		clients.Registrar,
		log,
	)
	return Services{
		Auth:         authSvc,
		Pub:          pubSvc,
		Image:        imageSvc,
		Translations: translationSvc,
		Journal:      journalSvc,
	}
}
