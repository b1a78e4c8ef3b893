package types

import (
	"time"

	"github.com/google/uuid"
)

type Asset struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index;column:user_id" json:"userId"`
	Label     string    `gorm:"column:label" json:"label"`
	AssetType string    `gorm:"column:asset_type" json:"assetType"`
	URL       string    `gorm:"column:url" json:"url"`
	Thumbnail string    `gorm:"column:thumbnail" json:"thumbnail"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (Asset) TableName() string { return "asset" }
