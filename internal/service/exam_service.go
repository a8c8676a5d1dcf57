package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/tikrarapp/tikrar-backend/config"
	"github.com/tikrarapp/tikrar-backend/internal/apperr"
	"github.com/tikrarapp/tikrar-backend/internal/dto"
	"github.com/tikrarapp/tikrar-backend/internal/model"
	"github.com/tikrarapp/tikrar-backend/internal/repository"
	"gorm.io/gorm"
)

// ExamService governs the exam attempt lifecycle: eligibility, question
// delivery, the in_progress -> submitted transition and deterministic
// grading. An attempt is created in_progress, may be resumed indefinitely,
// and transitions exactly once to submitted.
type ExamService interface {
	Eligibility(principal model.Principal) (*dto.EligibilityDTO, error)
	QuestionsForUser(principal model.Principal) (*dto.ExamQuestionsDTO, error)
	StartAttempt(principal model.Principal, req dto.ExamStartDTO) (*dto.StartAttemptResultDTO, error)
	SubmitAttempt(principal model.Principal, req dto.ExamSubmitDTO) (*dto.SubmitAttemptResultDTO, error)
	GetAttempt(principal model.Principal, attemptID uuid.UUID) (*dto.AttemptDTO, error)
	ListAttempts(principal model.Principal) ([]dto.AttemptDTO, error)
}

type examService struct {
	registrationRepo repository.RegistrationRepository
	attemptRepo      repository.ExamAttemptRepository
	questionRepo     repository.ExamQuestionRepository
	configRepo       repository.ExamConfigurationRepository
	flagRepo         repository.QuestionFlagRepository
	cfg              *config.Config
}

func NewExamService(
	registrationRepo repository.RegistrationRepository,
	attemptRepo repository.ExamAttemptRepository,
	questionRepo repository.ExamQuestionRepository,
	configRepo repository.ExamConfigurationRepository,
	flagRepo repository.QuestionFlagRepository,
	cfg *config.Config,
) ExamService {
	return &examService{
		registrationRepo: registrationRepo,
		attemptRepo:      attemptRepo,
		questionRepo:     questionRepo,
		configRepo:       configRepo,
		flagRepo:         flagRepo,
		cfg:              cfg,
	}
}

func (s *examService) Eligibility(principal model.Principal) (*dto.EligibilityDTO, error) {
	registration, err := s.registrationRepo.FindLatestApprovedByUser(principal.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.EligibilityDTO{
				IsEligible: false,
				Reason:     "Pendaftaran yang disetujui tidak ditemukan, silakan daftar terlebih dahulu",
			}, nil
		}
		return nil, apperr.Store(err)
	}

	requiredJuz := RequiredExamJuz(registration.ChosenJuz)
	if requiredJuz == nil {
		return &dto.EligibilityDTO{
			IsEligible: false,
			Reason:     fmt.Sprintf("Tidak ada ujian untuk juz %s", registration.ChosenJuz),
		}, nil
	}

	maxAttempts, err := s.maxAttempts()
	if err != nil {
		return nil, err
	}
	submittedCount, err := s.attemptRepo.CountSubmitted(principal.UserID, registration.ID)
	if err != nil {
		return nil, apperr.Store(err)
	}

	out := dto.EligibilityDTO{
		RequiredJuz:  requiredJuz,
		AttemptsUsed: int(submittedCount),
		MaxAttempts:  maxAttempts,
	}

	switch {
	case maxAttempts == nil && submittedCount > 0:
		out.HasCompleted = true
		out.Reason = "Ujian sudah dikerjakan"
	case maxAttempts != nil && int(submittedCount) >= *maxAttempts:
		out.HasCompleted = true
		out.Reason = fmt.Sprintf("Kesempatan ujian habis (%d/%d percobaan)", submittedCount, *maxAttempts)
	default:
		out.IsEligible = true
	}
	return &out, nil
}

func (s *examService) QuestionsForUser(principal model.Principal) (*dto.ExamQuestionsDTO, error) {
	registration, requiredJuz, err := s.requiredRegistration(principal)
	if err != nil {
		return nil, err
	}

	if err := s.checkAttemptBudget(principal.UserID, registration); err != nil {
		return nil, err
	}

	questions, err := s.questionRepo.FindActiveByJuz(*requiredJuz)
	if err != nil {
		return nil, apperr.Store(err)
	}
	if len(questions) == 0 {
		return nil, apperr.New(apperr.KindNotFound, fmt.Sprintf("Belum ada soal untuk juz %d", *requiredJuz))
	}

	out := dto.ExamQuestionsDTO{
		Data:          make([]dto.ExamQuestionDTO, 0, len(questions)),
		Total:         len(questions),
		ExamJuzNumber: *requiredJuz,
	}
	for i := range questions {
		out.Data = append(out.Data, toExamQuestionDTO(&questions[i]))
	}
	return &out, nil
}

func (s *examService) StartAttempt(principal model.Principal, req dto.ExamStartDTO) (*dto.StartAttemptResultDTO, error) {
	registration, requiredJuz, err := s.requiredRegistration(principal)
	if err != nil {
		return nil, err
	}
	if *requiredJuz != req.JuzNumber {
		return nil, apperr.New(apperr.KindJuzMismatch,
			fmt.Sprintf("Juz pilihan %s mewajibkan ujian Juz %d", registration.ChosenJuz, *requiredJuz))
	}

	if err := s.checkAttemptBudget(principal.UserID, registration); err != nil {
		return nil, err
	}

	// Resume semantics: an unfinished attempt is returned as-is, never
	// duplicated.
	inProgress, err := s.attemptRepo.FindInProgress(principal.UserID, registration.ID, req.JuzNumber)
	if err == nil {
		log.Info().
			Str("attempt_id", inProgress.ID.String()).
			Str("user_id", principal.UserID.String()).
			Int("juz_number", req.JuzNumber).
			Msg("Resuming existing exam attempt")
		return &dto.StartAttemptResultDTO{
			Attempt: toAttemptDTO(inProgress),
			Message: "Melanjutkan ujian yang sedang berlangsung",
			Resumed: true,
		}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Store(err)
	}

	totalQuestions, err := s.questionRepo.CountActiveByJuz(req.JuzNumber)
	if err != nil {
		return nil, apperr.Store(err)
	}
	if totalQuestions == 0 {
		return nil, apperr.New(apperr.KindNotFound, fmt.Sprintf("Belum ada soal untuk juz %d, silakan hubungi admin", req.JuzNumber))
	}

	attempt := model.ExamAttempt{
		UserID:         principal.UserID,
		RegistrationID: registration.ID,
		JuzNumber:      req.JuzNumber,
		Status:         model.AttemptStatusInProgress,
		Answers:        []model.AnswerRecord{},
		TotalQuestions: int(totalQuestions),
		StartedAt:      time.Now(),
	}
	if err := s.attemptRepo.Create(&attempt); err != nil {
		return nil, apperr.Store(err)
	}

	// Mirror attempt state onto the registration for quick lookups; the
	// attempt row stays authoritative, so a mirror failure is only logged.
	if err := s.registrationRepo.UpdateExamFields(registration.ID, map[string]interface{}{
		"exam_juz_number": req.JuzNumber,
		"exam_status":     model.ExamStatusInProgress,
		"exam_attempt_id": attempt.ID,
	}); err != nil {
		log.Error().Err(err).
			Str("registration_id", registration.ID.String()).
			Msg("Failed to mirror attempt start onto registration")
	}

	log.Info().
		Str("attempt_id", attempt.ID.String()).
		Str("user_id", principal.UserID.String()).
		Int("juz_number", req.JuzNumber).
		Int64("total_questions", totalQuestions).
		Msg("Exam attempt started")
	return &dto.StartAttemptResultDTO{Attempt: toAttemptDTO(&attempt)}, nil
}

func (s *examService) SubmitAttempt(principal model.Principal, req dto.ExamSubmitDTO) (*dto.SubmitAttemptResultDTO, error) {
	attempt, err := s.attemptRepo.FindByIDAndUser(req.AttemptID, principal.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "Ujian tidak ditemukan")
		}
		return nil, apperr.Store(err)
	}
	if attempt.Status == model.AttemptStatusSubmitted {
		return nil, apperr.New(apperr.KindAlreadySubmitted, "Ujian sudah pernah dikumpulkan").
			WithDetails(toAttemptDTO(attempt))
	}

	questions, err := s.questionRepo.FindActiveByJuz(attempt.JuzNumber)
	if err != nil {
		return nil, apperr.Store(err)
	}

	graded, correct := gradeAnswers(questions, req.Answers)
	score := CalculateScore(correct, len(questions))
	submittedAt := time.Now()

	// Single conditional update: only an in_progress attempt transitions.
	// A concurrent duplicate submit loses the race and is reported as
	// AlreadySubmitted with the winning result.
	ok, err := s.attemptRepo.MarkSubmitted(attempt.ID, graded, correct, score, submittedAt)
	if err != nil {
		return nil, apperr.Store(err)
	}
	if !ok {
		existing, findErr := s.attemptRepo.FindByIDAndUser(req.AttemptID, principal.UserID)
		if findErr != nil {
			return nil, apperr.Store(findErr)
		}
		return nil, apperr.New(apperr.KindAlreadySubmitted, "Ujian sudah pernah dikumpulkan").
			WithDetails(toAttemptDTO(existing))
	}

	attempt.Answers = graded
	attempt.CorrectAnswers = correct
	attempt.Score = &score
	attempt.Status = model.AttemptStatusSubmitted
	attempt.SubmittedAt = &submittedAt

	if err := s.registrationRepo.UpdateExamFields(attempt.RegistrationID, map[string]interface{}{
		"exam_score":        score,
		"exam_status":       model.ExamStatusCompleted,
		"exam_submitted_at": submittedAt,
	}); err != nil {
		log.Error().Err(err).
			Str("registration_id", attempt.RegistrationID.String()).
			Msg("Failed to mirror exam score onto registration")
	}

	s.recordFlags(principal, attempt.ID, req.FlaggedQuestions)

	passingGrade := s.passingGrade()
	result := dto.ExamResultDTO{
		Sections:          buildSectionResults(questions, graded),
		OverallPercentage: score,
		Passed:            score >= passingGrade,
	}

	log.Info().
		Str("attempt_id", attempt.ID.String()).
		Str("user_id", principal.UserID.String()).
		Int("juz_number", attempt.JuzNumber).
		Int("score", score).
		Int("correct_answers", correct).
		Int("total_questions", len(questions)).
		Msg("Exam submitted")
	return &dto.SubmitAttemptResultDTO{Attempt: toAttemptDTO(attempt), Result: result}, nil
}

func (s *examService) GetAttempt(principal model.Principal, attemptID uuid.UUID) (*dto.AttemptDTO, error) {
	attempt, err := s.attemptRepo.FindByIDAndUser(attemptID, principal.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "Ujian tidak ditemukan")
		}
		return nil, apperr.Store(err)
	}
	out := toAttemptDTO(attempt)
	return &out, nil
}

func (s *examService) ListAttempts(principal model.Principal) ([]dto.AttemptDTO, error) {
	attempts, err := s.attemptRepo.FindAllByUser(principal.UserID)
	if err != nil {
		return nil, apperr.Store(err)
	}
	out := make([]dto.AttemptDTO, 0, len(attempts))
	for i := range attempts {
		out = append(out, toAttemptDTO(&attempts[i]))
	}
	return out, nil
}

// requiredRegistration loads the caller's approved registration and the juz
// it must be examined on.
func (s *examService) requiredRegistration(principal model.Principal) (*model.Registration, *int, error) {
	registration, err := s.registrationRepo.FindLatestApprovedByUser(principal.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperr.New(apperr.KindNotFound, "Pendaftaran yang disetujui tidak ditemukan, silakan daftar terlebih dahulu")
		}
		return nil, nil, apperr.Store(err)
	}
	requiredJuz := RequiredExamJuz(registration.ChosenJuz)
	if requiredJuz == nil {
		return nil, nil, apperr.New(apperr.KindExamNotRequired,
			fmt.Sprintf("Tidak ada ujian untuk juz %s", registration.ChosenJuz))
	}
	return registration, requiredJuz, nil
}

// checkAttemptBudget enforces the submitted-attempt ceiling. Only submitted
// attempts consume budget: in_progress attempts may be resumed indefinitely.
// Without a configured max_attempts, a single completion closes the exam.
func (s *examService) checkAttemptBudget(userID uuid.UUID, registration *model.Registration) error {
	maxAttempts, err := s.maxAttempts()
	if err != nil {
		return err
	}
	submittedCount, err := s.attemptRepo.CountSubmitted(userID, registration.ID)
	if err != nil {
		return apperr.Store(err)
	}

	if maxAttempts == nil {
		if submittedCount > 0 {
			requiredJuz := RequiredExamJuz(registration.ChosenJuz)
			appErr := apperr.New(apperr.KindAlreadyCompleted, "Ujian sudah pernah dikerjakan")
			if requiredJuz != nil {
				if prior, findErr := s.attemptRepo.FindSubmitted(userID, registration.ID, *requiredJuz); findErr == nil {
					appErr = appErr.WithDetails(toAttemptDTO(prior))
				}
			}
			return appErr
		}
		return nil
	}
	if int(submittedCount) >= *maxAttempts {
		return apperr.New(apperr.KindMaxAttemptsReached,
			fmt.Sprintf("Kesempatan ujian habis, telah digunakan %d/%d percobaan", submittedCount, *maxAttempts))
	}
	return nil
}

// maxAttempts reads the ceiling from the active configuration; nil means
// unlimited (no active configuration or no ceiling set).
func (s *examService) maxAttempts() (*int, error) {
	configuration, err := s.configRepo.FindActive()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperr.Store(err)
	}
	return configuration.MaxAttempts, nil
}

func (s *examService) passingGrade() int {
	if configuration, err := s.configRepo.FindActive(); err == nil && configuration.PassingScore > 0 {
		return configuration.PassingScore
	}
	return s.cfg.Exam.PassingGrade
}

// recordFlags persists question flags raised during submission. Best effort:
// a flag failure never rolls back the already-committed score.
func (s *examService) recordFlags(principal model.Principal, attemptID uuid.UUID, flagged []dto.ExamFlagDTO) {
	if len(flagged) == 0 {
		return
	}
	flags := make([]model.ExamQuestionFlag, 0, len(flagged))
	for _, f := range flagged {
		flags = append(flags, model.ExamQuestionFlag{
			QuestionID:  f.QuestionID,
			UserID:      principal.UserID,
			AttemptID:   attemptID,
			FlagType:    f.FlagType,
			FlagMessage: f.Message,
			Status:      model.FlagStatusPending,
		})
	}
	if err := s.flagRepo.CreateBatch(flags); err != nil {
		log.Error().Err(err).
			Str("attempt_id", attemptID.String()).
			Int("flag_count", len(flags)).
			Msg("Failed to record question flags")
		return
	}
	log.Info().
		Str("attempt_id", attemptID.String()).
		Int("flag_count", len(flags)).
		Msg("Question flags recorded")
}

func toAttemptDTO(attempt *model.ExamAttempt) dto.AttemptDTO {
	var out dto.AttemptDTO
	copier.Copy(&out, attempt)
	out.Answers = make([]dto.AnswerRecordDTO, 0, len(attempt.Answers))
	for _, record := range attempt.Answers {
		out.Answers = append(out.Answers, dto.AnswerRecordDTO{
			QuestionID: record.QuestionID,
			Answer:     record.Answer,
			IsCorrect:  record.IsCorrect,
		})
	}
	return out
}

func toExamQuestionDTO(question *model.ExamQuestion) dto.ExamQuestionDTO {
	options := make([]string, 0, len(question.Options))
	for _, option := range question.Options {
		options = append(options, option.Text)
	}
	return dto.ExamQuestionDTO{
		ID:             question.ID,
		JuzNumber:      question.JuzNumber,
		SectionNumber:  question.SectionNumber,
		SectionTitle:   question.SectionTitle,
		QuestionNumber: question.QuestionNumber,
		QuestionText:   question.QuestionText,
		Options:        options,
	}
}
