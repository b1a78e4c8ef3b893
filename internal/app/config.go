package app

import (
	"strings"

	"github.com/openpress/openpress-backend/internal/logger"
	"github.com/openpress/openpress-backend/internal/utils"
)

type Config struct {
	JWTSecretKey        string
	AccessTokenTTLMin   int
	RefreshTokenTTLDays int
	TranslationsDir     string
	AllowOrigins        []string
	Port                string
}

func LoadConfig(log *logger.Logger) Config {
	origins := utils.GetEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000", log)
	return Config{
		JWTSecretKey:        utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log),
		AccessTokenTTLMin:   utils.GetEnvAsInt("ACCESS_TOKEN_TTL_MIN", 60, log),
		RefreshTokenTTLDays: utils.GetEnvAsInt("REFRESH_TOKEN_TTL_DAYS", 30, log),
		TranslationsDir:     utils.GetEnv("TRANSLATIONS_DIR", "./translations", log),
		AllowOrigins:        strings.Split(origins, ","),
		Port:                utils.GetEnv("PORT", "8080", log),
	}
}
