package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/openpress/openpress-backend/internal/logger"
	"github.com/openpress/openpress-backend/internal/repos"
	"github.com/openpress/openpress-backend/internal/types"
)

// landingSuffix is reserved for journal landing pages. Ordinary pub slugs
// may not end with it; landing-page uniqueness depends on that rule.
const landingSuffix = "-landingpage"

type PubService interface {
	CreatePub(ctx context.Context, slug, title string, journalID *uuid.UUID) (*types.Pub, error)
	CreateLandingPage(ctx context.Context, subdomain, journalName string, journalID uuid.UUID) (*types.Pub, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*types.Pub, error)
	RandomSlug(ctx context.Context, candidateIDs []uuid.UUID) (string, error)
	ListPublic(ctx context.Context) ([]*types.Pub, error)
	AddJournalFeatured(ctx context.Context, pubID, journalID uuid.UUID, byUserID *uuid.UUID) error
	AddJournalSubmitted(ctx context.Context, pubID, journalID uuid.UUID, byUserID *uuid.UUID) error
}

type pubService struct {
	pubRepo repos.PubRepo
	log     *logger.Logger
}

func NewPubService(pubRepo repos.PubRepo, baseLog *logger.Logger) PubService {
	return &pubService{
		pubRepo: pubRepo,
		log:     baseLog.With("service", "PubService"),
	}
}

func (ps *pubService) CreatePub(ctx context.Context, slug, title string, journalID *uuid.UUID) (*types.Pub, error) {
	if strings.HasSuffix(slug, landingSuffix) {
		return nil, ErrReservedSlug
	}
	pubs, err := ps.pubRepo.Create(ctx, nil, []*types.Pub{{
		Slug:      slug,
		Title:     title,
		JournalID: journalID,
	}})
	if err != nil {
		return nil, err
	}
	return pubs[0], nil
}

// CreateLandingPage builds the journal's home document. The slug is derived
// from the subdomain, which is globally unique, so no collision check is
// needed here.
func (ps *pubService) CreateLandingPage(ctx context.Context, subdomain, journalName string, journalID uuid.UUID) (*types.Pub, error) {
	pubs, err := ps.pubRepo.Create(ctx, nil, []*types.Pub{{
		Slug:         subdomain + landingSuffix,
		Title:        journalName + " Landing Page",
		JournalID:    &journalID,
		IsJournalPub: true,
	}})
	if err != nil {
		return nil, err
	}
	return pubs[0], nil
}

func (ps *pubService) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*types.Pub, error) {
	return ps.pubRepo.GetByIDs(ctx, nil, ids)
}

func (ps *pubService) RandomSlug(ctx context.Context, candidateIDs []uuid.UUID) (string, error) {
	return ps.pubRepo.RandomSlug(ctx, nil, candidateIDs)
}

func (ps *pubService) ListPublic(ctx context.Context) ([]*types.Pub, error) {
	return ps.pubRepo.ListPublic(ctx, nil)
}

func (ps *pubService) AddJournalFeatured(ctx context.Context, pubID, journalID uuid.UUID, byUserID *uuid.UUID) error {
	return ps.pubRepo.AppendFeaturedRef(ctx, nil, pubID, types.JournalRef{
		JournalID: journalID,
		ByUserID:  byUserID,
		Date:      time.Now(),
	})
}

func (ps *pubService) AddJournalSubmitted(ctx context.Context, pubID, journalID uuid.UUID, byUserID *uuid.UUID) error {
	return ps.pubRepo.AppendSubmittedRef(ctx, nil, pubID, types.JournalRef{
		JournalID: journalID,
		ByUserID:  byUserID,
		Date:      time.Now(),
	})
}
