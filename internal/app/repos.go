package app

import (
	"gorm.io/gorm"

	"github.com/openpress/openpress-backend/internal/logger"
	"github.com/openpress/openpress-backend/internal/repos"
)

type Repos struct {
	Journal      repos.JournalRepo
	Pub          repos.PubRepo
	User         repos.UserRepo
	UserToken    repos.UserTokenRepo
	Asset        repos.AssetRepo
	Notification repos.NotificationRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Journal:      repos.NewJournalRepo(db, log),
		Pub:          repos.NewPubRepo(db, log),
		User:         repos.NewUserRepo(db, log),
		UserToken:    repos.NewUserTokenRepo(db, log),
		Asset:        repos.NewAssetRepo(db, log),
		Notification: repos.NewNotificationRepo(db, log),
	}
}
