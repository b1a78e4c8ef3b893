package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// JournalRef records, on a pub, which journal featured or received it and
// which user triggered that. ByUserID is nil when a policy (auto-feature)
// acted rather than a specific admin.
type JournalRef struct {
	JournalID uuid.UUID  `json:"journalId"`
	ByUserID  *uuid.UUID `json:"byUserId,omitempty"`
	Date      time.Time  `json:"date"`
}

type Pub struct {
	ID           uuid.UUID                       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Slug         string                          `gorm:"uniqueIndex;not null;column:slug" json:"slug"`
	Title        string                          `gorm:"not null;column:title" json:"title"`
	Abstract     string                          `gorm:"column:abstract" json:"abstract"`
	JournalID    *uuid.UUID                      `gorm:"type:uuid;index;column:journal_id" json:"journalId,omitempty"`
	IsJournalPub bool                            `gorm:"column:is_journal_pub;not null;default:false" json:"isJournalPub"`
	IsPrivate    bool                            `gorm:"column:is_private;not null;default:false" json:"isPrivate"`
	HistoryCount int                             `gorm:"column:history_count;not null;default:0" json:"historyCount"`
	FeaturedIn   datatypes.JSONSlice[JournalRef] `gorm:"column:featured_in;type:jsonb" json:"featuredIn"`
	SubmittedTo  datatypes.JSONSlice[JournalRef] `gorm:"column:submitted_to;type:jsonb" json:"submittedTo"`
	CreatedAt    time.Time                       `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time                       `gorm:"not null;default:now()" json:"updated_at"`
}

func (Pub) TableName() string { return "pub" }
