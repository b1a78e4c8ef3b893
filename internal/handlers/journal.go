package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/openpress/openpress-backend/internal/logger"
	"github.com/openpress/openpress-backend/internal/requestdata"
	"github.com/openpress/openpress-backend/internal/services"
)

type JournalHandler struct {
	journalSvc services.JournalService
	log        *logger.Logger
}

func NewJournalHandler(journalSvc services.JournalService, baseLog *logger.Logger) *JournalHandler {
	return &JournalHandler{
		journalSvc: journalSvc,
		log:        baseLog.With("handler", "JournalHandler"),
	}
}

type createJournalRequest struct {
	JournalName string `json:"journalName" binding:"required"`
	Subdomain   string `json:"subdomain" binding:"required"`
}

func (jh *JournalHandler) CreateJournal(c *gin.Context) {
	var req createJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	principal := requestdata.PrincipalID(c.Request.Context())
	subdomain, err := jh.journalSvc.Create(c.Request.Context(), req.JournalName, req.Subdomain, principal)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, subdomain)
}

func (jh *JournalHandler) GetJournal(c *gin.Context) {
	subdomain := c.Query("subdomain")
	if subdomain == "" {
		RespondError(c, http.StatusBadRequest, "invalid_request", errMissingParam("subdomain"))
		return
	}
	principal := requestdata.PrincipalID(c.Request.Context())
	journal, err := jh.journalSvc.GetBySubdomain(c.Request.Context(), subdomain, principal)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, journal)
}

func (jh *JournalHandler) GetRandomSlug(c *gin.Context) {
	journalID, err := uuid.Parse(c.Query("journalID"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	slug, err := jh.journalSvc.RandomSlug(c.Request.Context(), journalID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, slug)
}

type saveJournalRequest struct {
	Subdomain string         `json:"subdomain" binding:"required"`
	NewObject map[string]any `json:"newObject" binding:"required"`
}

func (jh *JournalHandler) SaveJournal(c *gin.Context) {
	var req saveJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	principal := requestdata.PrincipalID(c.Request.Context())
	journal, err := jh.journalSvc.Save(c.Request.Context(), req.Subdomain, principal, req.NewObject)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, journal)
}

type submitPubRequest struct {
	JournalID uuid.UUID `json:"journalID" binding:"required"`
	PubID     uuid.UUID `json:"pubID" binding:"required"`
}

func (jh *JournalHandler) SubmitPubToJournal(c *gin.Context) {
	var req submitPubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	principal := requestdata.PrincipalID(c.Request.Context())
	journal, err := jh.journalSvc.SubmitPub(c.Request.Context(), req.JournalID, req.PubID, principal)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, journal)
}

func (jh *JournalHandler) LoadJournalAndLogin(c *gin.Context) {
	host := c.Query("host")
	if host == "" {
		host = c.Request.Host
	}
	principal := requestdata.PrincipalID(c.Request.Context())
	data, err := jh.journalSvc.LoadJournalAndLogin(c.Request.Context(), host, principal)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, data)
}

type createCollectionRequest struct {
	Subdomain           string `json:"subdomain" binding:"required"`
	NewCollectionObject struct {
		Title string `json:"title" binding:"required"`
		Slug  string `json:"slug" binding:"required"`
	} `json:"newCollectionObject" binding:"required"`
}

func (jh *JournalHandler) CreateCollection(c *gin.Context) {
	var req createCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	principal := requestdata.PrincipalID(c.Request.Context())
	collections, err := jh.journalSvc.CreateCollection(c.Request.Context(), req.Subdomain, req.NewCollectionObject.Title, req.NewCollectionObject.Slug, principal)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, collections)
}

type saveCollectionRequest struct {
	Subdomain           string         `json:"subdomain" binding:"required"`
	Slug                string         `json:"slug" binding:"required"`
	NewCollectionObject map[string]any `json:"newCollectionObject" binding:"required"`
}

func (jh *JournalHandler) SaveCollection(c *gin.Context) {
	var req saveCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	principal := requestdata.PrincipalID(c.Request.Context())
	collections, err := jh.journalSvc.SaveCollection(c.Request.Context(), req.Subdomain, req.Slug, req.NewCollectionObject, principal)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, collections)
}

func (jh *JournalHandler) GetJournalPubs(c *gin.Context) {
	pubs, err := jh.journalSvc.FeaturedPubsByHost(c.Request.Context(), requestHost(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pubs)
}

func (jh *JournalHandler) GetJournalCollections(c *gin.Context) {
	collections, err := jh.journalSvc.CollectionsByHost(c.Request.Context(), requestHost(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, collections)
}

func errMissingParam(name string) error {
	return fmt.Errorf("missing required parameter %q", name)
}

func requestHost(c *gin.Context) string {
	if host := c.Query("host"); host != "" {
		return host
	}
	return c.Request.Host
}
