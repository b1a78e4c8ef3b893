package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"

	"github.com/openpress/openpress-backend/internal/authz"
	"github.com/openpress/openpress-backend/internal/clients/collab"
	"github.com/openpress/openpress-backend/internal/clients/domains"
	"github.com/openpress/openpress-backend/internal/logger"
	"github.com/openpress/openpress-backend/internal/repos"
	"github.com/openpress/openpress-backend/internal/types"
)

// stockHeaderImages is the fixed rotation of collection header images a new
// collection draws from until an admin uploads a replacement.
var stockHeaderImages = []string{
	"https://res.cloudinary.com/pubpub/image/upload/v1451320792/coll4_ivgyzj.jpg",
	"https://res.cloudinary.com/pubpub/image/upload/v1451320792/coll5_nwapxj.jpg",
	"https://res.cloudinary.com/pubpub/image/upload/v1451320792/coll6_kqgzbq.jpg",
	"https://res.cloudinary.com/pubpub/image/upload/v1451320792/coll7_mrq4q9.jpg",
}

const sideEffectTimeout = 10 * time.Second

// PopulatedJournal is a journal with its referenced aggregates hydrated:
// admin user records, pub records for the curated lists, and pub records
// inside each collection.
type PopulatedJournal struct {
	ID            uuid.UUID             `json:"id"`
	Subdomain     string                `json:"subdomain"`
	CustomDomain  string                `json:"customDomain,omitempty"`
	JournalName   string                `json:"journalName"`
	Design        datatypes.JSONMap     `json:"design"`
	Locale        string                `json:"locale"`
	AutoFeature   bool                  `json:"autoFeature"`
	LandingPage   *uuid.UUID            `json:"landingPage,omitempty"`
	Admins        []*types.User         `json:"admins"`
	Collections   []PopulatedCollection `json:"collections"`
	PubsFeatured  []*types.Pub          `json:"pubsFeatured"`
	PubsSubmitted []*types.Pub          `json:"pubsSubmitted"`
}

type PopulatedCollection struct {
	Slug        string       `json:"slug"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	HeaderImage string       `json:"headerImage"`
	Pubs        []*types.Pub `json:"pubs"`
}

// JournalData is the journal-shaped half of a bootstrap response. Exactly one
// of the two shapes is filled: a hydrated journal when the host matched, or
// the global listing when it did not.
type JournalData struct {
	*PopulatedJournal
	IsAdmin     bool             `json:"isAdmin"`
	RandomSlug  string           `json:"randomSlug,omitempty"`
	AllJournals []*types.Journal `json:"allJournals,omitempty"`
	AllPubs     []*types.Pub     `json:"allPubs,omitempty"`
}

type LoginData struct {
	ID                uuid.UUID         `json:"id"`
	Username          string            `json:"username"`
	Name              string            `json:"name"`
	FirstName         string            `json:"firstName"`
	LastName          string            `json:"lastName"`
	Image             string            `json:"image"`
	Thumbnail         string            `json:"thumbnail"`
	Settings          datatypes.JSONMap `json:"settings"`
	NotificationCount int64             `json:"notificationCount"`
	Assets            []*types.Asset    `json:"assets"`
}

// BootstrapData is the combined payload the client needs to render a page:
// journal context, translation bundle, and session state. LoginData is the
// string "No Session" when no principal is present.
type BootstrapData struct {
	JournalData  JournalData    `json:"journalData"`
	LanguageData map[string]any `json:"languageData"`
	LoginData    any            `json:"loginData"`
}

type JournalService interface {
	Create(ctx context.Context, journalName, subdomain string, creator uuid.UUID) (string, error)
	GetBySubdomain(ctx context.Context, subdomain string, principal uuid.UUID) (*JournalData, error)
	RandomSlug(ctx context.Context, journalID uuid.UUID) (string, error)
	Save(ctx context.Context, subdomain string, principal uuid.UUID, updates map[string]any) (*JournalData, error)
	SubmitPub(ctx context.Context, journalID, pubID, principal uuid.UUID) (*JournalData, error)
	CreateCollection(ctx context.Context, subdomain, title, slug string, principal uuid.UUID) ([]PopulatedCollection, error)
	SaveCollection(ctx context.Context, subdomain, slug string, updates map[string]any, principal uuid.UUID) ([]PopulatedCollection, error)
	FeaturedPubsByHost(ctx context.Context, host string) ([]*types.Pub, error)
	CollectionsByHost(ctx context.Context, host string) ([]PopulatedCollection, error)
	LoadJournalAndLogin(ctx context.Context, host string, principal uuid.UUID) (*BootstrapData, error)
}

type journalService struct {
	journalRepo      repos.JournalRepo
	userRepo         repos.UserRepo
	assetRepo        repos.AssetRepo
	notificationRepo repos.NotificationRepo
	pubSvc           PubService
	imageSvc         ImageService
	translations     TranslationService
	sessions         collab.SessionStore
	registrar        domains.Registrar
	locks            keyedMutex
	log              *logger.Logger
}

func NewJournalService(
	journalRepo repos.JournalRepo,
	userRepo repos.UserRepo,
	assetRepo repos.AssetRepo,
	notificationRepo repos.NotificationRepo,
	pubSvc PubService,
	imageSvc ImageService,
	translations TranslationService,
	sessions collab.SessionStore,
	registrar domains.Registrar,
	baseLog *logger.Logger,
) JournalService {
	return &journalService{
		journalRepo:      journalRepo,
		userRepo:         userRepo,
		assetRepo:        assetRepo,
		notificationRepo: notificationRepo,
		pubSvc:           pubSvc,
		imageSvc:         imageSvc,
		translations:     translations,
		sessions:         sessions,
		registrar:        registrar,
		log:              baseLog.With("service", "JournalService"),
	}
}

// Create runs the journal-creation sequence. Steps are strictly sequential
// and earlier steps are not unwound when a later one fails: a journal whose
// landing-page step failed is persisted without a landing page, and the
// error is returned as-is.
func (js *journalService) Create(ctx context.Context, journalName, subdomain string, creator uuid.UUID) (string, error) {
	taken, err := js.journalRepo.SubdomainExists(ctx, nil, subdomain)
	if err != nil {
		return "", err
	}
	if taken {
		return "", ErrConflict
	}

	journals, err := js.journalRepo.Create(ctx, nil, []*types.Journal{{
		Subdomain:     subdomain,
		JournalName:   journalName,
		Design:        types.DefaultDesign(),
		Locale:        defaultLocale,
		Admins:        datatypes.JSONSlice[uuid.UUID]{creator},
		Collections:   datatypes.JSONSlice[types.Collection]{},
		PubsFeatured:  datatypes.JSONSlice[uuid.UUID]{},
		PubsSubmitted: datatypes.JSONSlice[uuid.UUID]{},
	}})
	if err != nil {
		return "", err
	}
	journal := journals[0]

	// Best effort: the creator's adminJournals set is updated off the request
	// path. Failure leaves the journal-side admin list authoritative.
	go func() {
		bg, cancel := context.WithTimeout(context.Background(), sideEffectTimeout)
		defer cancel()
		if addErr := js.userRepo.AddAdminJournal(bg, nil, creator, journal.ID); addErr != nil {
			js.log.Error("failed to record journal on creator admin set",
				"journalId", journal.ID, "userId", creator, "error", addErr)
		}
	}()

	landing, err := js.pubSvc.CreateLandingPage(ctx, journal.Subdomain, journal.JournalName, journal.ID)
	if err != nil {
		return "", err
	}

	sessionCtx, cancel := context.WithTimeout(ctx, sideEffectTimeout)
	defer cancel()
	err = js.sessions.InitializeSession(sessionCtx, landing.Slug, collab.SessionDocument{
		Collaborators: map[string]collab.Collaborator{
			journal.Subdomain: {
				ID:         journal.ID.String(),
				Name:       journal.JournalName + " Admins",
				FirstName:  journal.JournalName,
				LastName:   "Admins",
				Thumbnail:  "/thumbnails/group.png",
				Permission: "edit",
				Admin:      true,
			},
		},
	})
	if err != nil {
		return "", err
	}

	journal.LandingPage = &landing.ID
	if err := js.journalRepo.Save(ctx, nil, journal); err != nil {
		return "", err
	}
	return journal.Subdomain, nil
}

func (js *journalService) GetBySubdomain(ctx context.Context, subdomain string, principal uuid.UUID) (*JournalData, error) {
	journal, err := js.journalRepo.GetBySubdomain(ctx, nil, subdomain)
	if err != nil {
		return nil, err
	}
	if journal == nil {
		return nil, ErrNotFound
	}
	populated, err := js.populate(ctx, journal)
	if err != nil {
		return nil, err
	}
	return &JournalData{
		PopulatedJournal: populated,
		IsAdmin:          authz.IsAdmin(principal, journal.Admins),
	}, nil
}

func (js *journalService) RandomSlug(ctx context.Context, journalID uuid.UUID) (string, error) {
	journal, err := js.journalRepo.GetByID(ctx, nil, journalID)
	if err != nil {
		return "", err
	}
	if journal == nil {
		return "", ErrNotFound
	}
	return js.pubSvc.RandomSlug(ctx, journal.PubsFeatured)
}

// Save applies a sparse update to a journal. Mutable fields are an explicit
// whitelist; unknown keys are logged and dropped rather than written through.
func (js *journalService) Save(ctx context.Context, subdomain string, principal uuid.UUID, updates map[string]any) (*JournalData, error) {
	unlock := js.locks.lock(subdomain)
	defer unlock()

	journal, err := js.journalRepo.GetBySubdomain(ctx, nil, subdomain)
	if err != nil {
		return nil, err
	}
	if journal == nil {
		return nil, ErrNotFound
	}
	if !authz.IsAdmin(principal, journal.Admins) {
		return nil, ErrForbidden
	}

	for key, value := range updates {
		switch key {
		case "journalName":
			err = decodeField(value, &journal.JournalName)
		case "customDomain":
			var domain string
			if err = decodeField(value, &domain); err == nil && domain != journal.CustomDomain {
				js.registerDomain(journal.CustomDomain, domain)
				journal.CustomDomain = domain
			}
		case "design":
			err = decodeField(value, &journal.Design)
		case "locale":
			err = decodeField(value, &journal.Locale)
		case "autoFeature":
			err = decodeField(value, &journal.AutoFeature)
		case "landingPage":
			err = decodeField(value, &journal.LandingPage)
		case "pubsFeatured":
			var featured datatypes.JSONSlice[uuid.UUID]
			if err = decodeField(value, &featured); err == nil {
				js.writeFeaturedRefs(ctx, journal.ID, principal, difference(featured, journal.PubsFeatured))
				journal.PubsFeatured = featured
			}
		case "pubsSubmitted":
			err = decodeField(value, &journal.PubsSubmitted)
		case "collections":
			err = decodeField(value, &journal.Collections)
		default:
			js.log.Warn("ignoring unknown journal update field", "field", key, "subdomain", subdomain)
		}
		if err != nil {
			return nil, fmt.Errorf("invalid value for field %q: %w", key, err)
		}
	}

	if err := js.journalRepo.Save(ctx, nil, journal); err != nil {
		return nil, err
	}
	populated, err := js.populate(ctx, journal)
	if err != nil {
		return nil, err
	}
	return &JournalData{PopulatedJournal: populated, IsAdmin: true}, nil
}

// writeFeaturedRefs issues the pub-side back-reference for each newly
// featured pub. Writes run concurrently; failures are logged, not surfaced,
// since the journal-side list is the authoritative record.
func (js *journalService) writeFeaturedRefs(ctx context.Context, journalID, principal uuid.UUID, newlyFeatured []uuid.UUID) {
	if len(newlyFeatured) == 0 {
		return
	}
	group, groupCtx := errgroup.WithContext(ctx)
	for _, pubID := range newlyFeatured {
		group.Go(func() error {
			refCtx, cancel := context.WithTimeout(groupCtx, sideEffectTimeout)
			defer cancel()
			return js.pubSvc.AddJournalFeatured(refCtx, pubID, journalID, &principal)
		})
	}
	if err := group.Wait(); err != nil {
		js.log.Error("featured back-reference write failed", "journalId", journalID, "error", err)
	}
}

func (js *journalService) registerDomain(oldDomain, newDomain string) {
	go func() {
		bg, cancel := context.WithTimeout(context.Background(), sideEffectTimeout)
		defer cancel()
		if err := js.registrar.RegisterDomain(bg, oldDomain, newDomain); err != nil {
			js.log.Error("custom domain registration failed", "domain", newDomain, "error", err)
		}
	}()
}

func (js *journalService) SubmitPub(ctx context.Context, journalID, pubID, principal uuid.UUID) (*JournalData, error) {
	journal, err := js.journalRepo.GetByID(ctx, nil, journalID)
	if err != nil {
		return nil, err
	}
	if journal == nil {
		return nil, ErrNotFound
	}

	unlock := js.locks.lock(journal.Subdomain)
	defer unlock()
	journal, err = js.journalRepo.GetByID(ctx, nil, journalID)
	if err != nil {
		return nil, err
	}
	if journal == nil {
		return nil, ErrNotFound
	}

	if !journal.AutoFeature && !authz.IsAdmin(principal, journal.Admins) {
		return nil, ErrForbidden
	}

	if !contains(journal.PubsSubmitted, pubID) && !contains(journal.PubsFeatured, pubID) {
		if err := js.pubSvc.AddJournalSubmitted(ctx, pubID, journalID, &principal); err != nil {
			return nil, err
		}
		if journal.AutoFeature {
			// Policy acted, not an admin: no approving user is recorded.
			if err := js.pubSvc.AddJournalFeatured(ctx, pubID, journalID, nil); err != nil {
				return nil, err
			}
			journal.PubsFeatured = append(journal.PubsFeatured, pubID)
		} else {
			journal.PubsSubmitted = append(journal.PubsSubmitted, pubID)
		}
		if err := js.journalRepo.Save(ctx, nil, journal); err != nil {
			return nil, err
		}
	}

	populated, err := js.populate(ctx, journal)
	if err != nil {
		return nil, err
	}
	return &JournalData{PopulatedJournal: populated, IsAdmin: true}, nil
}

func (js *journalService) CreateCollection(ctx context.Context, subdomain, title, slug string, principal uuid.UUID) ([]PopulatedCollection, error) {
	unlock := js.locks.lock(subdomain)
	defer unlock()

	journal, err := js.journalRepo.GetBySubdomain(ctx, nil, subdomain)
	if err != nil {
		return nil, err
	}
	if journal == nil {
		return nil, ErrNotFound
	}
	// Collection mutations carry no admin gate. Kept as-is pending a product
	// decision; logged so non-admin writes are visible.
	if !authz.IsAdmin(principal, journal.Admins) {
		js.log.Warn("collection created by non-admin principal", "subdomain", subdomain, "principal", principal)
	}

	journal.Collections = append(journal.Collections, types.Collection{
		Slug:        slug,
		Title:       title,
		Description: "",
		HeaderImage: stockHeaderImages[rand.Intn(len(stockHeaderImages))],
		Pubs:        []uuid.UUID{},
	})
	if err := js.journalRepo.Save(ctx, nil, journal); err != nil {
		return nil, err
	}
	return js.populateCollections(ctx, journal.Collections)
}

// SaveCollection merges an update into the collection matching slug. When the
// payload carries a headerImageURL, the image is rehosted first and the
// hosted URL wins over any direct headerImage assignment; the upload blocks
// the save. Duplicate slugs resolve to the last match in list order.
func (js *journalService) SaveCollection(ctx context.Context, subdomain, slug string, updates map[string]any, principal uuid.UUID) ([]PopulatedCollection, error) {
	hostedURL := ""
	if raw, ok := updates["headerImageURL"]; ok {
		var sourceURL string
		if err := decodeField(raw, &sourceURL); err != nil {
			return nil, fmt.Errorf("invalid value for field %q: %w", "headerImageURL", err)
		}
		uploaded, err := js.imageSvc.UploadFromURL(ctx, sourceURL)
		if err != nil {
			return nil, err
		}
		hostedURL = uploaded
	}

	unlock := js.locks.lock(subdomain)
	defer unlock()

	journal, err := js.journalRepo.GetBySubdomain(ctx, nil, subdomain)
	if err != nil {
		return nil, err
	}
	if journal == nil {
		return nil, ErrNotFound
	}
	if !authz.IsAdmin(principal, journal.Admins) {
		js.log.Warn("collection saved by non-admin principal", "subdomain", subdomain, "principal", principal)
	}

	target := -1
	for index := len(journal.Collections) - 1; index >= 0; index-- {
		if journal.Collections[index].Slug == slug {
			target = index
			break
		}
	}
	if target == -1 {
		return nil, ErrNotFound
	}

	collection := &journal.Collections[target]
	for key, value := range updates {
		var fieldErr error
		switch key {
		case "title":
			fieldErr = decodeField(value, &collection.Title)
		case "description":
			fieldErr = decodeField(value, &collection.Description)
		case "headerImage":
			fieldErr = decodeField(value, &collection.HeaderImage)
		case "pubs":
			fieldErr = decodeField(value, &collection.Pubs)
		case "headerImageURL", "slug":
			// headerImageURL handled above; slug is the lookup key.
		default:
			js.log.Warn("ignoring unknown collection update field", "field", key, "subdomain", subdomain)
		}
		if fieldErr != nil {
			return nil, fmt.Errorf("invalid value for field %q: %w", key, fieldErr)
		}
	}
	if hostedURL != "" {
		collection.HeaderImage = hostedURL
	}

	if err := js.journalRepo.Save(ctx, nil, journal); err != nil {
		return nil, err
	}
	return js.populateCollections(ctx, journal.Collections)
}

func (js *journalService) FeaturedPubsByHost(ctx context.Context, host string) ([]*types.Pub, error) {
	journal, err := js.resolveHost(ctx, host)
	if err != nil {
		return nil, err
	}
	return js.orderedPubs(ctx, journal.PubsFeatured)
}

func (js *journalService) CollectionsByHost(ctx context.Context, host string) ([]PopulatedCollection, error) {
	journal, err := js.resolveHost(ctx, host)
	if err != nil {
		return nil, err
	}
	return js.populateCollections(ctx, journal.Collections)
}

// LoadJournalAndLogin is the bootstrap read. One lookup decides the shape of
// journalData: a hydrated journal when the host matches, otherwise the global
// listing of public journals and pubs.
func (js *journalService) LoadJournalAndLogin(ctx context.Context, host string, principal uuid.UUID) (*BootstrapData, error) {
	journal, err := js.journalRepo.GetByHost(ctx, nil, hostSubdomain(host), host)
	if err != nil {
		return nil, err
	}

	locale := defaultLocale
	var journalData JournalData
	if journal != nil {
		locale = journal.Locale
		populated, popErr := js.populate(ctx, journal)
		if popErr != nil {
			return nil, popErr
		}
		journalData.PopulatedJournal = populated
		journalData.IsAdmin = authz.IsAdmin(principal, journal.Admins)
		slug, slugErr := js.pubSvc.RandomSlug(ctx, journal.PubsFeatured)
		if slugErr != nil {
			js.log.Warn("random slug lookup failed", "subdomain", journal.Subdomain, "error", slugErr)
		} else {
			journalData.RandomSlug = slug
		}
	} else {
		allJournals, listErr := js.journalRepo.ListAll(ctx, nil)
		if listErr != nil {
			return nil, listErr
		}
		allPubs, listErr := js.pubSvc.ListPublic(ctx)
		if listErr != nil {
			return nil, listErr
		}
		journalData.AllJournals = allJournals
		journalData.AllPubs = allPubs
	}

	languageData, err := js.translations.Bundle(locale)
	if err != nil {
		js.log.Warn("translation bundle load failed", "locale", locale, "error", err)
		languageData = map[string]any{}
	}

	loginData, err := js.loginData(ctx, principal)
	if err != nil {
		return nil, err
	}

	return &BootstrapData{
		JournalData:  journalData,
		LanguageData: languageData,
		LoginData:    loginData,
	}, nil
}

func (js *journalService) loginData(ctx context.Context, principal uuid.UUID) (any, error) {
	if principal == uuid.Nil {
		return "No Session", nil
	}
	users, err := js.userRepo.GetByIDs(ctx, nil, []uuid.UUID{principal})
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return "No Session", nil
	}
	user := users[0]
	unread, err := js.notificationRepo.CountUnread(ctx, nil, principal)
	if err != nil {
		return nil, err
	}
	assets, err := js.assetRepo.GetByIDs(ctx, nil, user.Assets)
	if err != nil {
		return nil, err
	}
	return &LoginData{
		ID:                user.ID,
		Username:          user.Username,
		Name:              user.Name,
		FirstName:         user.FirstName,
		LastName:          user.LastName,
		Image:             user.Image,
		Thumbnail:         user.Thumbnail,
		Settings:          user.Settings,
		NotificationCount: unread,
		Assets:            assets,
	}, nil
}

func (js *journalService) resolveHost(ctx context.Context, host string) (*types.Journal, error) {
	journal, err := js.journalRepo.GetByHost(ctx, nil, hostSubdomain(host), host)
	if err != nil {
		return nil, err
	}
	if journal == nil {
		return nil, ErrNotFound
	}
	return journal, nil
}

func (js *journalService) populate(ctx context.Context, journal *types.Journal) (*PopulatedJournal, error) {
	admins, err := js.userRepo.GetByIDs(ctx, nil, journal.Admins)
	if err != nil {
		return nil, err
	}

	pubIDs := make([]uuid.UUID, 0, len(journal.PubsFeatured)+len(journal.PubsSubmitted))
	pubIDs = append(pubIDs, journal.PubsFeatured...)
	pubIDs = append(pubIDs, journal.PubsSubmitted...)
	for _, collection := range journal.Collections {
		pubIDs = append(pubIDs, collection.Pubs...)
	}
	pubsByID, err := js.pubsByID(ctx, pubIDs)
	if err != nil {
		return nil, err
	}

	collections := make([]PopulatedCollection, 0, len(journal.Collections))
	for _, collection := range journal.Collections {
		collections = append(collections, PopulatedCollection{
			Slug:        collection.Slug,
			Title:       collection.Title,
			Description: collection.Description,
			HeaderImage: collection.HeaderImage,
			Pubs:        pick(pubsByID, collection.Pubs),
		})
	}

	return &PopulatedJournal{
		ID:            journal.ID,
		Subdomain:     journal.Subdomain,
		CustomDomain:  journal.CustomDomain,
		JournalName:   journal.JournalName,
		Design:        journal.Design,
		Locale:        journal.Locale,
		AutoFeature:   journal.AutoFeature,
		LandingPage:   journal.LandingPage,
		Admins:        admins,
		Collections:   collections,
		PubsFeatured:  pick(pubsByID, journal.PubsFeatured),
		PubsSubmitted: pick(pubsByID, journal.PubsSubmitted),
	}, nil
}

func (js *journalService) populateCollections(ctx context.Context, collections []types.Collection) ([]PopulatedCollection, error) {
	var pubIDs []uuid.UUID
	for _, collection := range collections {
		pubIDs = append(pubIDs, collection.Pubs...)
	}
	pubsByID, err := js.pubsByID(ctx, pubIDs)
	if err != nil {
		return nil, err
	}
	populated := make([]PopulatedCollection, 0, len(collections))
	for _, collection := range collections {
		populated = append(populated, PopulatedCollection{
			Slug:        collection.Slug,
			Title:       collection.Title,
			Description: collection.Description,
			HeaderImage: collection.HeaderImage,
			Pubs:        pick(pubsByID, collection.Pubs),
		})
	}
	return populated, nil
}

func (js *journalService) orderedPubs(ctx context.Context, ids []uuid.UUID) ([]*types.Pub, error) {
	pubsByID, err := js.pubsByID(ctx, ids)
	if err != nil {
		return nil, err
	}
	return pick(pubsByID, ids), nil
}

func (js *journalService) pubsByID(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*types.Pub, error) {
	pubs, err := js.pubSvc.GetByIDs(ctx, dedupe(ids))
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*types.Pub, len(pubs))
	for _, pub := range pubs {
		byID[pub.ID] = pub
	}
	return byID, nil
}

// pick maps ids to their fetched pubs, preserving list order and dropping
// dangling references.
func pick(pubsByID map[uuid.UUID]*types.Pub, ids []uuid.UUID) []*types.Pub {
	result := make([]*types.Pub, 0, len(ids))
	for _, id := range ids {
		if pub, ok := pubsByID[id]; ok {
			result = append(result, pub)
		}
	}
	return result
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	result := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}

func contains(ids []uuid.UUID, id uuid.UUID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

// difference returns the members of next that are absent from prev.
func difference(next, prev []uuid.UUID) []uuid.UUID {
	var result []uuid.UUID
	for _, id := range next {
		if !contains(prev, id) {
			result = append(result, id)
		}
	}
	return result
}

func decodeField(value any, target any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, target)
}

// hostSubdomain extracts the leading label of a host header, the part that
// maps to a journal subdomain.
func hostSubdomain(host string) string {
	if index := strings.IndexByte(host, ':'); index != -1 {
		host = host[:index]
	}
	if index := strings.IndexByte(host, '.'); index != -1 {
		return host[:index]
	}
	return host
}

// keyedMutex serializes mutations per journal so concurrent feature/submit
// and collection writes cannot drop each other's list updates.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (km *keyedMutex) lock(key string) func() {
	km.mu.Lock()
	if km.locks == nil {
		km.locks = make(map[string]*sync.Mutex)
	}
	entry, ok := km.locks[key]
	if !ok {
		entry = &sync.Mutex{}
		km.locks[key] = entry
	}
	km.mu.Unlock()
	entry.Lock()
	return entry.Unlock
}
