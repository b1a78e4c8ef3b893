package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openpress/openpress-backend/internal/logger"
	"github.com/openpress/openpress-backend/internal/types"
)

type NotificationRepo interface {
	CountUnread(ctx context.Context, tx *gorm.DB, recipientID uuid.UUID) (int64, error)
}

type notificationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewNotificationRepo(db *gorm.DB, baseLog *logger.Logger) NotificationRepo {
	return &notificationRepo{db: db, log: baseLog.With("repo", "NotificationRepo")}
}

func (nr *notificationRepo) CountUnread(ctx context.Context, tx *gorm.DB, recipientID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = nr.db
	}
	if recipientID == uuid.Nil {
		return 0, nil
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Notification{}).
		Where("recipient_id = ? AND read = false", recipientID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
