package repos

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openpress/openpress-backend/internal/logger"
	"github.com/openpress/openpress-backend/internal/types"
)

type PubRepo interface {
	Create(ctx context.Context, tx *gorm.DB, pubs []*types.Pub) ([]*types.Pub, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Pub, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Pub, error)
	Save(ctx context.Context, tx *gorm.DB, pub *types.Pub) error
	// RandomSlug picks one slug at random from the given candidate ids, or
	// from all public pubs with nonzero history when no candidates are given.
	RandomSlug(ctx context.Context, tx *gorm.DB, candidateIDs []uuid.UUID) (string, error)
	ListPublic(ctx context.Context, tx *gorm.DB) ([]*types.Pub, error)
	AppendFeaturedRef(ctx context.Context, tx *gorm.DB, pubID uuid.UUID, ref types.JournalRef) error
	AppendSubmittedRef(ctx context.Context, tx *gorm.DB, pubID uuid.UUID, ref types.JournalRef) error
}

type pubRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPubRepo(db *gorm.DB, baseLog *logger.Logger) PubRepo {
	return &pubRepo{db: db, log: baseLog.With("repo", "PubRepo")}
}

func (pr *pubRepo) Create(ctx context.Context, tx *gorm.DB, pubs []*types.Pub) ([]*types.Pub, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if len(pubs) == 0 {
		return []*types.Pub{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&pubs).Error; err != nil {
		return nil, err
	}
	return pubs, nil
}

func (pr *pubRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Pub, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var result types.Pub
	err := transaction.WithContext(ctx).Where("id = ?", id).First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (pr *pubRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Pub, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var results []*types.Pub
	if len(ids) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *pubRepo) Save(ctx context.Context, tx *gorm.DB, pub *types.Pub) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	return transaction.WithContext(ctx).Save(pub).Error
}

func (pr *pubRepo) RandomSlug(ctx context.Context, tx *gorm.DB, candidateIDs []uuid.UUID) (string, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	query := transaction.WithContext(ctx).Model(&types.Pub{})
	if len(candidateIDs) > 0 {
		query = query.Where("id IN ?", candidateIDs)
	} else {
		query = query.Where("history_count > 0 AND is_private = false")
	}
	var slug string
	err := query.Order("random()").Limit(1).Pluck("slug", &slug).Error
	if err != nil {
		return "", err
	}
	return slug, nil
}

func (pr *pubRepo) ListPublic(ctx context.Context, tx *gorm.DB) ([]*types.Pub, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var results []*types.Pub
	if err := transaction.WithContext(ctx).
		Select("id", "title", "slug", "abstract").
		Where("history_count > 0 AND is_private = false").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *pubRepo) AppendFeaturedRef(ctx context.Context, tx *gorm.DB, pubID uuid.UUID, ref types.JournalRef) error {
	return pr.appendRef(ctx, tx, pubID, ref, true)
}

func (pr *pubRepo) AppendSubmittedRef(ctx context.Context, tx *gorm.DB, pubID uuid.UUID, ref types.JournalRef) error {
	return pr.appendRef(ctx, tx, pubID, ref, false)
}

func (pr *pubRepo) appendRef(ctx context.Context, tx *gorm.DB, pubID uuid.UUID, ref types.JournalRef, featured bool) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	pub, err := pr.GetByID(ctx, transaction, pubID)
	if err != nil {
		return err
	}
	if pub == nil {
		return fmt.Errorf("pub %s not found", pubID)
	}
	if ref.Date.IsZero() {
		ref.Date = time.Now()
	}
	if featured {
		pub.FeaturedIn = append(pub.FeaturedIn, ref)
	} else {
		pub.SubmittedTo = append(pub.SubmittedTo, ref)
	}
	return pr.Save(ctx, transaction, pub)
}
