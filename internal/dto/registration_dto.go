package dto

import (
	"time"

	"github.com/google/uuid"
)

// RegistrationDTO is a pendaftaran record as returned to its owner.
type RegistrationDTO struct {
	ID              uuid.UUID  `json:"id"`
	UserID          uuid.UUID  `json:"user_id"`
	FullName        string     `json:"full_name"`
	ChosenJuz       string     `json:"chosen_juz"`
	Status          string     `json:"status"`
	ExamRequired    bool       `json:"exam_required"`
	RequiredExamJuz *int       `json:"required_exam_juz,omitempty"`
	ExamJuzNumber   *int       `json:"exam_juz_number,omitempty"`
	ExamStatus      string     `json:"exam_status"`
	ExamAttemptID   *uuid.UUID `json:"exam_attempt_id,omitempty"`
	ExamScore       *int       `json:"exam_score,omitempty"`
	ExamSubmittedAt *time.Time `json:"exam_submitted_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// DaftarUlangSubmitDTO records the halaqah choices confirmed at submission.
type DaftarUlangSubmitDTO struct {
	UjianHalaqahID  *uuid.UUID `json:"ujian_halaqah_id"`
	TashihHalaqahID *uuid.UUID `json:"tashih_halaqah_id"`
}

// DaftarUlangDTO is a re-enrollment submission as returned to its owner.
type DaftarUlangDTO struct {
	ID              uuid.UUID  `json:"id"`
	UserID          uuid.UUID  `json:"user_id"`
	UjianHalaqahID  *uuid.UUID `json:"ujian_halaqah_id,omitempty"`
	TashihHalaqahID *uuid.UUID `json:"tashih_halaqah_id,omitempty"`
	Status          string     `json:"status"`
	SubmittedAt     *time.Time `json:"submitted_at,omitempty"`
}
