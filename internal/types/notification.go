package types

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	RecipientID uuid.UUID `gorm:"type:uuid;not null;index;column:recipient_id" json:"recipientId"`
	Kind        string    `gorm:"column:kind" json:"kind"`
	Read        bool      `gorm:"column:read;not null;default:false" json:"read"`
	CreatedAt   time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (Notification) TableName() string { return "notification" }
