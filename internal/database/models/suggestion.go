package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Suggestion is a user-submitted candidate group awaiting moderation.
// It is deleted on approval or rejection, never updated in place.
type Suggestion struct {
	ID               uuid.UUID        `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name             string           `json:"name" gorm:"not null;size:200"`
	Platform         string           `json:"platform" gorm:"not null;size:100"`
	Link             string           `json:"link" gorm:"not null;size:2000"`
	Description      string           `json:"description" gorm:"type:text"`
	Language         string           `json:"language" gorm:"size:100"`
	SubmittedBy      string           `json:"submitted_by,omitempty" gorm:"size:200"`
	AdminContact     string           `json:"admin_contact,omitempty" gorm:"size:200"`
	AdminContactType string           `json:"admin_contact_type,omitempty" gorm:"size:20"`
	Status           SuggestionStatus `json:"status" gorm:"not null;size:20;default:pending"`
	CreatedAt        time.Time        `json:"created_at" gorm:"index"`
}

// TableName returns the table name for Suggestion
func (Suggestion) TableName() string {
	return "suggestions"
}

// BeforeCreate sets the UUID if not already set
func (s *Suggestion) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
