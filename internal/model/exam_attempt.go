package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	AttemptStatusInProgress = "in_progress"
	AttemptStatusSubmitted  = "submitted"
)

// AnswerRecord is one graded answer stored inside the answers JSONB column.
// IsCorrect is only meaningful once the attempt has been submitted.
type AnswerRecord struct {
	QuestionID uuid.UUID `json:"question_id"`
	Answer     string    `json:"answer"`
	IsCorrect  bool      `json:"is_correct"`
}

// ExamAttempt tracks one pass of a user through a juz exam. An attempt is
// created in_progress and transitions exactly once to submitted.
type ExamAttempt struct {
	ID             uuid.UUID                         `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID         uuid.UUID                         `json:"user_id" gorm:"type:uuid;not null;index:idx_attempt_user_reg_juz"`
	RegistrationID uuid.UUID                         `json:"registration_id" gorm:"type:uuid;not null;index:idx_attempt_user_reg_juz"`
	JuzNumber      int                               `json:"juz_number" gorm:"not null;index:idx_attempt_user_reg_juz"`
	Status         string                            `json:"status" gorm:"not null;default:'in_progress';index"`
	Answers        datatypes.JSONSlice[AnswerRecord] `json:"answers"`
	TotalQuestions int                               `json:"total_questions"`
	CorrectAnswers int                               `json:"correct_answers"`
	Score          *int                              `json:"score,omitempty"`
	StartedAt      time.Time                         `json:"started_at"`
	SubmittedAt    *time.Time                        `json:"submitted_at,omitempty"`
	CreatedAt      time.Time                         `json:"created_at"`
	UpdatedAt      time.Time                         `json:"updated_at"`
	DeletedAt      gorm.DeletedAt                    `gorm:"index" json:"-"`
}
