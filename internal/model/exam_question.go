package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// QuestionOption is one multiple-choice option stored inside the options
// JSONB column.
type QuestionOption struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// ExamQuestion is one multiple-choice question in a juz's question bank.
type ExamQuestion struct {
	ID             uuid.UUID                            `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	JuzNumber      int                                  `json:"juz_number" gorm:"not null;index"`
	SectionNumber  int                                  `json:"section_number" gorm:"not null"`
	SectionTitle   string                               `json:"section_title"`
	QuestionNumber int                                  `json:"question_number"`
	QuestionText   string                               `json:"question_text" gorm:"type:text;not null"`
	Options        datatypes.JSONSlice[QuestionOption]  `json:"options"`
	CorrectAnswer  string                               `json:"correct_answer" gorm:"type:text"`
	IsActive       bool                                 `json:"is_active" gorm:"not null;default:true;index"`
	CreatedAt      time.Time                            `json:"created_at"`
	UpdatedAt      time.Time                            `json:"updated_at"`
	DeletedAt      gorm.DeletedAt                       `gorm:"index" json:"-"`
}
