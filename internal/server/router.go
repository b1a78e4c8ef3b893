package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/openpress/openpress-backend/internal/handlers"
)

type RouterConfig struct {
	AuthHandler    *handlers.AuthHandler
	JournalHandler *handlers.JournalHandler
	RequireAuth    gin.HandlerFunc
	OptionalAuth   gin.HandlerFunc
	AllowOrigins   []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.Healthcheck)
	router.POST("/register", cfg.AuthHandler.Register)
	router.POST("/login", cfg.AuthHandler.Login)
	router.POST("/refresh", cfg.AuthHandler.Refresh)
	router.GET("/getRandomSlug", cfg.JournalHandler.GetRandomSlug)
	router.GET("/getJournalPubs", cfg.JournalHandler.GetJournalPubs)
	router.GET("/getJournalCollections", cfg.JournalHandler.GetJournalCollections)

	// =================================
	// || Optional session (reads)    ||
	// =================================
	optional := router.Group("/")
	optional.Use(cfg.OptionalAuth)
	optional.GET("/getJournal", cfg.JournalHandler.GetJournal)
	optional.GET("/loadJournalAndLogin", cfg.JournalHandler.LoadJournalAndLogin)
	// Submission is open to anyone when the journal auto-features; the
	// service decides per journal policy.
	optional.POST("/submitPubToJournal", cfg.JournalHandler.SubmitPubToJournal)
	optional.POST("/createCollection", cfg.JournalHandler.CreateCollection)
	optional.POST("/saveCollection", cfg.JournalHandler.SaveCollection)

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/")
	protected.Use(cfg.RequireAuth)
	protected.POST("/logout", cfg.AuthHandler.Logout)
	protected.POST("/createJournal", cfg.JournalHandler.CreateJournal)
	protected.POST("/saveJournal", cfg.JournalHandler.SaveJournal)

	return router
}
