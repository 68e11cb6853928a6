package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// PostingStatus is the lifecycle state of an internship posting.
type PostingStatus string

const (
	PostingActive   PostingStatus = "active"
	PostingPaused   PostingStatus = "paused"
	PostingArchived PostingStatus = "archived"
)

// Posting is a company-published internship opening.
// Archived postings are hidden from candidate listings but kept for audit.
type Posting struct {
	ID              uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CompanyEmail    string         `gorm:"type:varchar(255);not null;index" json:"company_email"`
	Title           string         `gorm:"type:varchar(255);not null" json:"title"`
	Category        string         `gorm:"type:varchar(100)" json:"category"`
	WorkMode        string         `gorm:"type:varchar(50)" json:"work_mode"` // onsite, remote, hybrid
	Province        string         `gorm:"type:varchar(100)" json:"province"`
	RequiredSkills  pq.StringArray `gorm:"type:text[]" json:"required_skills"`
	PreferredSkills pq.StringArray `gorm:"type:text[]" json:"preferred_skills"`
	Description     string         `gorm:"type:text" json:"description"`
	Status          PostingStatus  `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

// ParsePostingStatus converts a raw string to a PostingStatus, returning
// false for unknown values.
func ParsePostingStatus(s string) (PostingStatus, bool) {
	switch PostingStatus(s) {
	case PostingActive, PostingPaused, PostingArchived:
		return PostingStatus(s), true
	}
	return "", false
}
