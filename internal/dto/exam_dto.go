package dto

import (
	"time"

	"github.com/google/uuid"
)

// ExamStartDTO is the start-attempt body.
type ExamStartDTO struct {
	JuzNumber int `json:"juz_number" binding:"required,oneof=28 29 30"`
}

// ExamAnswerDTO is one submitted answer.
type ExamAnswerDTO struct {
	QuestionID uuid.UUID `json:"questionId" binding:"required"`
	Answer     string    `json:"answer"`
}

// ExamFlagDTO marks a question for review.
type ExamFlagDTO struct {
	QuestionID uuid.UUID `json:"questionId" binding:"required"`
	FlagType   string    `json:"flagType" binding:"required"`
	Message    string    `json:"message"`
}

// ExamSubmitDTO is the submit-attempt body.
type ExamSubmitDTO struct {
	AttemptID        uuid.UUID       `json:"attemptId" binding:"required"`
	Answers          []ExamAnswerDTO `json:"answers" binding:"required,dive"`
	FlaggedQuestions []ExamFlagDTO   `json:"flaggedQuestions" binding:"omitempty,dive"`
}

// AnswerRecordDTO is one graded answer inside an attempt.
type AnswerRecordDTO struct {
	QuestionID uuid.UUID `json:"question_id"`
	Answer     string    `json:"answer"`
	IsCorrect  bool      `json:"is_correct"`
}

// AttemptDTO is the attempt shape returned to the owner.
type AttemptDTO struct {
	ID             uuid.UUID         `json:"id"`
	UserID         uuid.UUID         `json:"user_id"`
	RegistrationID uuid.UUID         `json:"registration_id"`
	JuzNumber      int               `json:"juz_number"`
	Status         string            `json:"status"`
	Answers        []AnswerRecordDTO `json:"answers"`
	TotalQuestions int               `json:"total_questions"`
	CorrectAnswers int               `json:"correct_answers"`
	Score          *int              `json:"score,omitempty"`
	StartedAt      time.Time         `json:"started_at"`
	SubmittedAt    *time.Time        `json:"submitted_at,omitempty"`
}

// StartAttemptResultDTO wraps the attempt plus whether it was resumed. A
// resumed start carries an explanatory message alongside its 200 status.
type StartAttemptResultDTO struct {
	Attempt AttemptDTO `json:"attempt"`
	Message string     `json:"message,omitempty"`
	Resumed bool       `json:"-"`
}

// SectionResultDTO is the per-section breakdown of a graded submission.
type SectionResultDTO struct {
	SectionNumber  int    `json:"section_number"`
	SectionTitle   string `json:"section_title"`
	TotalQuestions int    `json:"total_questions"`
	CorrectAnswers int    `json:"correct_answers"`
	Percentage     int    `json:"percentage"`
}

// ExamResultDTO is the overall grading summary.
type ExamResultDTO struct {
	Sections          []SectionResultDTO `json:"sections"`
	OverallPercentage int                `json:"overall_percentage"`
	Passed            bool               `json:"passed"`
}

// SubmitAttemptResultDTO is the submit response payload.
type SubmitAttemptResultDTO struct {
	Attempt AttemptDTO    `json:"attempt"`
	Result  ExamResultDTO `json:"result"`
}

// EligibilityDTO reports whether the caller can sit the exam and why not.
type EligibilityDTO struct {
	IsEligible   bool   `json:"is_eligible"`
	RequiredJuz  *int   `json:"required_juz"`
	Reason       string `json:"reason,omitempty"`
	HasCompleted bool   `json:"has_completed"`
	AttemptsUsed int    `json:"attempts_used"`
	MaxAttempts  *int   `json:"max_attempts,omitempty"`
}

// ExamQuestionDTO is a question as shown to an examinee. Option correctness
// and the answer key are stripped.
type ExamQuestionDTO struct {
	ID             uuid.UUID `json:"id"`
	JuzNumber      int       `json:"juz_number"`
	SectionNumber  int       `json:"section_number"`
	SectionTitle   string    `json:"section_title"`
	QuestionNumber int       `json:"question_number"`
	QuestionText   string    `json:"question_text"`
	Options        []string  `json:"options"`
}

// ExamQuestionsDTO is the question set for the caller's required juz.
type ExamQuestionsDTO struct {
	Data          []ExamQuestionDTO `json:"data"`
	Total         int               `json:"total"`
	ExamJuzNumber int               `json:"examJuzNumber"`
}

// QuestionOptionDTO carries a full option, answer key included. Admin only.
type QuestionOptionDTO struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// QuestionCreateDTO is the admin create/update question body.
type QuestionCreateDTO struct {
	JuzNumber      int                 `json:"juz_number" binding:"required,min=1,max=30"`
	SectionNumber  int                 `json:"section_number" binding:"required,min=1"`
	SectionTitle   string              `json:"section_title"`
	QuestionNumber int                 `json:"question_number"`
	QuestionText   string              `json:"question_text" binding:"required"`
	Options        []QuestionOptionDTO `json:"options" binding:"required,min=2,dive"`
	CorrectAnswer  string              `json:"correct_answer" binding:"required"`
	IsActive       *bool               `json:"is_active"`
}

// ConfigurationDTO is the admin create/update exam configuration body.
type ConfigurationDTO struct {
	Name             string `json:"name" binding:"required"`
	Description      string `json:"description"`
	DurationMinutes  int    `json:"duration_minutes" binding:"omitempty,min=1"`
	MaxAttempts      *int   `json:"max_attempts" binding:"omitempty,min=1"`
	PassingScore     int    `json:"passing_score" binding:"omitempty,min=0,max=100"`
	ShuffleQuestions bool   `json:"shuffle_questions"`
	IsActive         bool   `json:"is_active"`
}

// FlagUpdateDTO moves a flag through the review queue.
type FlagUpdateDTO struct {
	Status string `json:"status" binding:"required,oneof=pending reviewed resolved"`
}
