package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type User struct {
	ID            uuid.UUID                      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Email         string                         `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Username      string                         `gorm:"uniqueIndex;not null;column:username" json:"username"`
	Password      string                         `gorm:"not null;column:password" json:"-"`
	Name          string                         `gorm:"column:name" json:"name"`
	FirstName     string                         `gorm:"column:first_name" json:"firstName"`
	LastName      string                         `gorm:"column:last_name" json:"lastName"`
	Image         string                         `gorm:"column:image" json:"image"`
	Thumbnail     string                         `gorm:"column:thumbnail" json:"thumbnail"`
	Settings      datatypes.JSONMap              `gorm:"column:settings;type:jsonb" json:"settings"`
	Following     datatypes.JSONSlice[uuid.UUID] `gorm:"column:following;type:jsonb" json:"following"`
	Assets        datatypes.JSONSlice[uuid.UUID] `gorm:"column:assets;type:jsonb" json:"assets"`
	AdminJournals datatypes.JSONSlice[uuid.UUID] `gorm:"column:admin_journals;type:jsonb" json:"adminJournals"`
	CreatedAt     time.Time                      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt     time.Time                      `gorm:"not null;default:now()" json:"updated_at"`
}

func (User) TableName() string { return "user" }
