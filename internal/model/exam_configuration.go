package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultPassingScore applies when no configuration sets one.
const DefaultPassingScore = 60

// ExamConfiguration holds admin-tunable exam settings. At most one
// configuration is active at a time; activating one deactivates the rest.
// A nil MaxAttempts means unlimited.
type ExamConfiguration struct {
	ID               uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name             string         `json:"name" gorm:"not null"`
	Description      string         `json:"description,omitempty"`
	DurationMinutes  int            `json:"duration_minutes"`
	MaxAttempts      *int           `json:"max_attempts,omitempty"`
	PassingScore     int            `json:"passing_score" gorm:"not null;default:60"`
	ShuffleQuestions bool           `json:"shuffle_questions"`
	IsActive         bool           `json:"is_active" gorm:"not null;default:false;index"`
	CreatedBy        *uuid.UUID     `json:"created_by,omitempty" gorm:"type:uuid"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}
