package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Journal is the owning aggregate for collections and for the curated pub
// lists. Admins, collections and the pub lists are stored as JSONB documents:
// they belong to the journal document itself and are never persisted
// independently. PubsFeatured/PubsSubmitted hold references only — each Pub
// carries its own inverse record, and the two sides are kept consistent
// without a transaction.
type Journal struct {
	ID            uuid.UUID                       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Subdomain     string                          `gorm:"uniqueIndex;not null;column:subdomain" json:"subdomain"`
	CustomDomain  string                          `gorm:"index;column:custom_domain" json:"customDomain,omitempty"`
	JournalName   string                          `gorm:"not null;column:journal_name" json:"journalName"`
	Design        datatypes.JSONMap               `gorm:"column:design;type:jsonb" json:"design"`
	Locale        string                          `gorm:"column:locale;default:'en'" json:"locale"`
	AutoFeature   bool                            `gorm:"column:auto_feature;not null;default:false" json:"autoFeature"`
	LandingPage   *uuid.UUID                      `gorm:"type:uuid;column:landing_page" json:"landingPage,omitempty"`
	Admins        datatypes.JSONSlice[uuid.UUID]  `gorm:"column:admins;type:jsonb" json:"admins"`
	Collections   datatypes.JSONSlice[Collection] `gorm:"column:collections;type:jsonb" json:"collections"`
	PubsFeatured  datatypes.JSONSlice[uuid.UUID]  `gorm:"column:pubs_featured;type:jsonb" json:"pubsFeatured"`
	PubsSubmitted datatypes.JSONSlice[uuid.UUID]  `gorm:"column:pubs_submitted;type:jsonb" json:"pubsSubmitted"`
	CreatedAt     time.Time                       `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt     time.Time                       `gorm:"not null;default:now()" json:"updated_at"`
}

func (Journal) TableName() string { return "journal" }

// Collection is embedded in its parent journal's JSONB column. Slug is unique
// within the parent journal only.
type Collection struct {
	Slug        string      `json:"slug"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	HeaderImage string      `json:"headerImage"`
	Pubs        []uuid.UUID `json:"pubs"`
}

// DefaultDesign is the presentation config seeded at journal creation.
func DefaultDesign() datatypes.JSONMap {
	return datatypes.JSONMap{
		"headerBackground":        "#373737",
		"headerText":              "#E0E0E0",
		"headerHover":             "#FFF",
		"landingHeaderBackground": "#E0E0E0",
		"landingHeaderText":       "#373737",
		"landingHeaderHover":      "#000",
	}
}
