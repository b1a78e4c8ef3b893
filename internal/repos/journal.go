package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openpress/openpress-backend/internal/logger"
	"github.com/openpress/openpress-backend/internal/types"
)

type JournalRepo interface {
	Create(ctx context.Context, tx *gorm.DB, journals []*types.Journal) ([]*types.Journal, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Journal, error)
	GetBySubdomain(ctx context.Context, tx *gorm.DB, subdomain string) (*types.Journal, error)
	GetByHost(ctx context.Context, tx *gorm.DB, subdomain, host string) (*types.Journal, error)
	Save(ctx context.Context, tx *gorm.DB, journal *types.Journal) error
	SubdomainExists(ctx context.Context, tx *gorm.DB, subdomain string) (bool, error)
	ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Journal, error)
}

type journalRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewJournalRepo(db *gorm.DB, baseLog *logger.Logger) JournalRepo {
	return &journalRepo{db: db, log: baseLog.With("repo", "JournalRepo")}
}

func (jr *journalRepo) Create(ctx context.Context, tx *gorm.DB, journals []*types.Journal) ([]*types.Journal, error) {
	transaction := tx
	if transaction == nil {
		transaction = jr.db
	}
	if len(journals) == 0 {
		return []*types.Journal{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&journals).Error; err != nil {
		return nil, err
	}
	return journals, nil
}

func (jr *journalRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Journal, error) {
	transaction := tx
	if transaction == nil {
		transaction = jr.db
	}
	var result types.Journal
	err := transaction.WithContext(ctx).Where("id = ?", id).First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (jr *journalRepo) GetBySubdomain(ctx context.Context, tx *gorm.DB, subdomain string) (*types.Journal, error) {
	transaction := tx
	if transaction == nil {
		transaction = jr.db
	}
	var result types.Journal
	err := transaction.WithContext(ctx).Where("subdomain = ?", subdomain).First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (jr *journalRepo) GetByHost(ctx context.Context, tx *gorm.DB, subdomain, host string) (*types.Journal, error) {
	transaction := tx
	if transaction == nil {
		transaction = jr.db
	}
	var result types.Journal
	err := transaction.WithContext(ctx).
		Where("subdomain = ? OR custom_domain = ?", subdomain, host).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (jr *journalRepo) Save(ctx context.Context, tx *gorm.DB, journal *types.Journal) error {
	transaction := tx
	if transaction == nil {
		transaction = jr.db
	}
	return transaction.WithContext(ctx).Save(journal).Error
}

func (jr *journalRepo) SubdomainExists(ctx context.Context, tx *gorm.DB, subdomain string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = jr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Journal{}).
		Where("subdomain = ?", subdomain).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (jr *journalRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Journal, error) {
	transaction := tx
	if transaction == nil {
		transaction = jr.db
	}
	var results []*types.Journal
	if err := transaction.WithContext(ctx).
		Select("id", "journal_name", "subdomain", "custom_domain", "pubs_featured", "collections", "design").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
