package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	FlagStatusPending  = "pending"
	FlagStatusReviewed = "reviewed"
	FlagStatusResolved = "resolved"
)

// ExamQuestionFlag is a review-queue entry raised by a thalibah against a
// question during submission. Recording flags is best effort and must never
// fail the submission itself.
type ExamQuestionFlag struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	QuestionID  uuid.UUID      `json:"question_id" gorm:"type:uuid;not null;index"`
	Question    ExamQuestion   `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	UserID      uuid.UUID      `json:"user_id" gorm:"type:uuid;not null;index"`
	AttemptID   uuid.UUID      `json:"attempt_id" gorm:"type:uuid;not null;index"`
	FlagType    string         `json:"flag_type" gorm:"not null"`
	FlagMessage string         `json:"flag_message,omitempty" gorm:"type:text"`
	Status      string         `json:"status" gorm:"not null;default:'pending';index"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
