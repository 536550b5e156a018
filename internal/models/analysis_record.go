package models

import (
	"time"

	"github.com/google/uuid"
)

type AnalysisRecord struct {
	ID                   uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ResumeSource         SourceKind `gorm:"type:text;not null" json:"resume_source"`
	JobDescriptionSource SourceKind `gorm:"type:text;not null" json:"job_description_source"`
	MatchScore           int        `gorm:"not null" json:"match_score"`
	Result               string     `gorm:"type:jsonb;not null" json:"-"`
	Provider             string     `gorm:"type:text" json:"provider"`
	Model                string     `gorm:"type:text" json:"model"`
	CreatedAt            time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (AnalysisRecord) TableName() string {
	return "analyses"
}
