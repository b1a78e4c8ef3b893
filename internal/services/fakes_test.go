package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/openpress/openpress-backend/internal/clients/collab"
	"github.com/openpress/openpress-backend/internal/logger"
	"github.com/openpress/openpress-backend/internal/types"
)

func testLogger() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

type fakeJournalRepo struct {
	mu       sync.Mutex
	journals []*types.Journal
}

func (f *fakeJournalRepo) Create(_ context.Context, _ *gorm.DB, journals []*types.Journal) ([]*types.Journal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, journal := range journals {
		if journal.ID == uuid.Nil {
			journal.ID = uuid.New()
		}
		f.journals = append(f.journals, journal)
	}
	return journals, nil
}

func (f *fakeJournalRepo) GetByID(_ context.Context, _ *gorm.DB, id uuid.UUID) (*types.Journal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, journal := range f.journals {
		if journal.ID == id {
			return journal, nil
		}
	}
	return nil, nil
}

func (f *fakeJournalRepo) GetBySubdomain(_ context.Context, _ *gorm.DB, subdomain string) (*types.Journal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, journal := range f.journals {
		if journal.Subdomain == subdomain {
			return journal, nil
		}
	}
	return nil, nil
}

func (f *fakeJournalRepo) GetByHost(_ context.Context, _ *gorm.DB, subdomain, host string) (*types.Journal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, journal := range f.journals {
		if journal.Subdomain == subdomain || (journal.CustomDomain != "" && journal.CustomDomain == host) {
			return journal, nil
		}
	}
	return nil, nil
}

func (f *fakeJournalRepo) Save(_ context.Context, _ *gorm.DB, journal *types.Journal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for index, existing := range f.journals {
		if existing.ID == journal.ID {
			f.journals[index] = journal
			return nil
		}
	}
	return errors.New("journal not found")
}

func (f *fakeJournalRepo) SubdomainExists(_ context.Context, _ *gorm.DB, subdomain string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, journal := range f.journals {
		if journal.Subdomain == subdomain {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeJournalRepo) ListAll(_ context.Context, _ *gorm.DB) ([]*types.Journal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*types.Journal{}, f.journals...), nil
}

func (f *fakeJournalRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.journals)
}

type fakePubRepo struct {
	mu   sync.Mutex
	pubs []*types.Pub
}

func (f *fakePubRepo) Create(_ context.Context, _ *gorm.DB, pubs []*types.Pub) ([]*types.Pub, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, pub := range pubs {
		if pub.ID == uuid.Nil {
			pub.ID = uuid.New()
		}
		f.pubs = append(f.pubs, pub)
	}
	return pubs, nil
}

func (f *fakePubRepo) GetByID(_ context.Context, _ *gorm.DB, id uuid.UUID) (*types.Pub, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.findLocked(id), nil
}

func (f *fakePubRepo) GetByIDs(_ context.Context, _ *gorm.DB, ids []uuid.UUID) ([]*types.Pub, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var results []*types.Pub
	for _, id := range ids {
		if pub := f.findLocked(id); pub != nil {
			results = append(results, pub)
		}
	}
	return results, nil
}

func (f *fakePubRepo) Save(_ context.Context, _ *gorm.DB, pub *types.Pub) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for index, existing := range f.pubs {
		if existing.ID == pub.ID {
			f.pubs[index] = pub
			return nil
		}
	}
	return errors.New("pub not found")
}

func (f *fakePubRepo) RandomSlug(_ context.Context, _ *gorm.DB, candidateIDs []uuid.UUID) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(candidateIDs) > 0 {
		if pub := f.findLocked(candidateIDs[0]); pub != nil {
			return pub.Slug, nil
		}
		return "", nil
	}
	for _, pub := range f.pubs {
		if pub.HistoryCount > 0 && !pub.IsPrivate {
			return pub.Slug, nil
		}
	}
	return "", nil
}

func (f *fakePubRepo) ListPublic(_ context.Context, _ *gorm.DB) ([]*types.Pub, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var results []*types.Pub
	for _, pub := range f.pubs {
		if pub.HistoryCount > 0 && !pub.IsPrivate {
			results = append(results, pub)
		}
	}
	return results, nil
}

func (f *fakePubRepo) AppendFeaturedRef(_ context.Context, _ *gorm.DB, pubID uuid.UUID, ref types.JournalRef) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	pub := f.findLocked(pubID)
	if pub == nil {
		return errors.New("pub not found")
	}
	pub.FeaturedIn = append(pub.FeaturedIn, ref)
	return nil
}

func (f *fakePubRepo) AppendSubmittedRef(_ context.Context, _ *gorm.DB, pubID uuid.UUID, ref types.JournalRef) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	pub := f.findLocked(pubID)
	if pub == nil {
		return errors.New("pub not found")
	}
	pub.SubmittedTo = append(pub.SubmittedTo, ref)
	return nil
}

func (f *fakePubRepo) findLocked(id uuid.UUID) *types.Pub {
	for _, pub := range f.pubs {
		if pub.ID == id {
			return pub
		}
	}
	return nil
}

func (f *fakePubRepo) get(id uuid.UUID) *types.Pub {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.findLocked(id)
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users []*types.User
}

func (f *fakeUserRepo) Create(_ context.Context, _ *gorm.DB, users []*types.User) ([]*types.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range users {
		if user.ID == uuid.Nil {
			user.ID = uuid.New()
		}
		f.users = append(f.users, user)
	}
	return users, nil
}

func (f *fakeUserRepo) GetByIDs(_ context.Context, _ *gorm.DB, userIDs []uuid.UUID) ([]*types.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var results []*types.User
	for _, id := range userIDs {
		for _, user := range f.users {
			if user.ID == id {
				results = append(results, user)
				break
			}
		}
	}
	return results, nil
}

func (f *fakeUserRepo) GetByEmails(_ context.Context, _ *gorm.DB, userEmails []string) ([]*types.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var results []*types.User
	for _, email := range userEmails {
		for _, user := range f.users {
			if user.Email == email {
				results = append(results, user)
				break
			}
		}
	}
	return results, nil
}

func (f *fakeUserRepo) EmailExists(_ context.Context, _ *gorm.DB, userEmail string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == userEmail {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) AddAdminJournal(_ context.Context, _ *gorm.DB, userID, journalID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.ID == userID {
			user.AdminJournals = append(user.AdminJournals, journalID)
			return nil
		}
	}
	return errors.New("user not found")
}

func (f *fakeUserRepo) adminJournals(userID uuid.UUID) []uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.ID == userID {
			return append([]uuid.UUID{}, user.AdminJournals...)
		}
	}
	return nil
}

type fakeAssetRepo struct {
	assets []*types.Asset
}

func (f *fakeAssetRepo) GetByIDs(_ context.Context, _ *gorm.DB, ids []uuid.UUID) ([]*types.Asset, error) {
	var results []*types.Asset
	for _, id := range ids {
		for _, asset := range f.assets {
			if asset.ID == id {
				results = append(results, asset)
				break
			}
		}
	}
	return results, nil
}

type fakeNotificationRepo struct {
	unread map[uuid.UUID]int64
}

func (f *fakeNotificationRepo) CountUnread(_ context.Context, _ *gorm.DB, recipientID uuid.UUID) (int64, error) {
	return f.unread[recipientID], nil
}

type sessionInit struct {
	slug string
	doc  collab.SessionDocument
}

type fakeSessionStore struct {
	mu    sync.Mutex
	inits []sessionInit
	err   error
}

func (f *fakeSessionStore) InitializeSession(_ context.Context, slug string, doc collab.SessionDocument) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.inits = append(f.inits, sessionInit{slug: slug, doc: doc})
	return nil
}

func (f *fakeSessionStore) Close() error { return nil }

func (f *fakeSessionStore) initialized() []sessionInit {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sessionInit{}, f.inits...)
}

type domainChange struct {
	oldDomain string
	newDomain string
}

type fakeRegistrar struct {
	mu      sync.Mutex
	changes []domainChange
}

func (f *fakeRegistrar) RegisterDomain(_ context.Context, oldDomain, newDomain string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.changes = append(f.changes, domainChange{oldDomain: oldDomain, newDomain: newDomain})
	return nil
}

func (f *fakeRegistrar) registered() []domainChange {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domainChange{}, f.changes...)
}

type fakeImageService struct {
	hostedURL string
	sources   []string
}

func (f *fakeImageService) UploadFromURL(_ context.Context, sourceURL string) (string, error) {
	f.sources = append(f.sources, sourceURL)
	return f.hostedURL, nil
}

type stubTranslations struct {
	bundles map[string]map[string]any
}

func (s *stubTranslations) Bundle(locale string) (map[string]any, error) {
	if bundle, ok := s.bundles[locale]; ok {
		return bundle, nil
	}
	if bundle, ok := s.bundles[defaultLocale]; ok {
		return bundle, nil
	}
	return nil, errors.New("no bundle")
}

// journalFixture bundles a journal service with the fakes behind it.
type journalFixture struct {
	svc          JournalService
	journalRepo  *fakeJournalRepo
	pubRepo      *fakePubRepo
	userRepo     *fakeUserRepo
	assetRepo    *fakeAssetRepo
	notifRepo    *fakeNotificationRepo
	sessions     *fakeSessionStore
	registrar    *fakeRegistrar
	imageSvc     *fakeImageService
	translations *stubTranslations
}

func newJournalFixture() *journalFixture {
	log := testLogger()
	journalRepo := &fakeJournalRepo{}
	pubRepo := &fakePubRepo{}
	userRepo := &fakeUserRepo{}
	assetRepo := &fakeAssetRepo{}
	notifRepo := &fakeNotificationRepo{unread: map[uuid.UUID]int64{}}
	sessions := &fakeSessionStore{}
	registrar := &fakeRegistrar{}
	imageSvc := &fakeImageService{hostedURL: "https://cdn.example.org/hosted.jpg"}
	translations := &stubTranslations{bundles: map[string]map[string]any{
		defaultLocale: {"login": "Login"},
	}}
	svc := NewJournalService(
		journalRepo,
		userRepo,
		assetRepo,
		notifRepo,
		NewPubService(pubRepo, log),
		imageSvc,
		translations,
		sessions,
		registrar,
		log,
	)
	return &journalFixture{
		svc:          svc,
		journalRepo:  journalRepo,
		pubRepo:      pubRepo,
		userRepo:     userRepo,
		assetRepo:    assetRepo,
		notifRepo:    notifRepo,
		sessions:     sessions,
		registrar:    registrar,
		imageSvc:     imageSvc,
		translations: translations,
	}
}

// eventually polls cond until it holds or the deadline passes. Used for the
// fire-and-forget side effects that run off the request path.
func eventually(cond func() bool, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return cond()
}
