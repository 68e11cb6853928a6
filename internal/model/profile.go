package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// CandidateProfile is a student's matchable profile. It is keyed by email
// because identity is supplied by the external auth collaborator; the core
// never creates accounts of its own.
type CandidateProfile struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email     string         `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	Name      string         `gorm:"type:varchar(255)" json:"name"`
	Skills    pq.StringArray `gorm:"type:text[]" json:"skills"`
	Province  string         `gorm:"type:varchar(100)" json:"province"`
	ResumeURL string         `gorm:"type:text" json:"resume_url"`
	HasResume bool           `gorm:"default:false" json:"has_resume"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}
