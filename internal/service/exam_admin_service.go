package service

import (
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/tikrarapp/tikrar-backend/internal/apperr"
	"github.com/tikrarapp/tikrar-backend/internal/dto"
	"github.com/tikrarapp/tikrar-backend/internal/model"
	"github.com/tikrarapp/tikrar-backend/internal/repository"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ExamAdminService manages the question bank, exam configurations and the
// flag review queue.
type ExamAdminService interface {
	CreateQuestion(principal model.Principal, req dto.QuestionCreateDTO) (*model.ExamQuestion, error)
	UpdateQuestion(questionID uuid.UUID, req dto.QuestionCreateDTO) (*model.ExamQuestion, error)
	DeleteQuestion(questionID uuid.UUID) error
	ListQuestions(juzNumber int) ([]model.ExamQuestion, error)

	ListConfigurations() ([]model.ExamConfiguration, error)
	CreateConfiguration(principal model.Principal, req dto.ConfigurationDTO) (*model.ExamConfiguration, error)
	UpdateConfiguration(configurationID uuid.UUID, req dto.ConfigurationDTO) (*model.ExamConfiguration, error)

	ListFlags(status string) ([]model.ExamQuestionFlag, error)
	UpdateFlag(flagID uuid.UUID, req dto.FlagUpdateDTO) (*model.ExamQuestionFlag, error)
}

type examAdminService struct {
	questionRepo repository.ExamQuestionRepository
	configRepo   repository.ExamConfigurationRepository
	flagRepo     repository.QuestionFlagRepository
}

func NewExamAdminService(
	questionRepo repository.ExamQuestionRepository,
	configRepo repository.ExamConfigurationRepository,
	flagRepo repository.QuestionFlagRepository,
) ExamAdminService {
	return &examAdminService{
		questionRepo: questionRepo,
		configRepo:   configRepo,
		flagRepo:     flagRepo,
	}
}

func (s *examAdminService) CreateQuestion(principal model.Principal, req dto.QuestionCreateDTO) (*model.ExamQuestion, error) {
	if err := validateQuestion(req); err != nil {
		return nil, err
	}
	question := model.ExamQuestion{
		JuzNumber:      req.JuzNumber,
		SectionNumber:  req.SectionNumber,
		SectionTitle:   req.SectionTitle,
		QuestionNumber: req.QuestionNumber,
		QuestionText:   req.QuestionText,
		Options:        toQuestionOptions(req.Options),
		CorrectAnswer:  req.CorrectAnswer,
		IsActive:       true,
	}
	if req.IsActive != nil {
		question.IsActive = *req.IsActive
	}
	if err := s.questionRepo.Create(&question); err != nil {
		return nil, apperr.Store(err)
	}
	log.Info().
		Str("question_id", question.ID.String()).
		Str("admin_id", principal.UserID.String()).
		Int("juz_number", question.JuzNumber).
		Msg("Exam question created")
	return &question, nil
}

func (s *examAdminService) UpdateQuestion(questionID uuid.UUID, req dto.QuestionCreateDTO) (*model.ExamQuestion, error) {
	if err := validateQuestion(req); err != nil {
		return nil, err
	}
	question, err := s.questionRepo.FindByID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "Soal tidak ditemukan")
		}
		return nil, apperr.Store(err)
	}

	question.JuzNumber = req.JuzNumber
	question.SectionNumber = req.SectionNumber
	question.SectionTitle = req.SectionTitle
	question.QuestionNumber = req.QuestionNumber
	question.QuestionText = req.QuestionText
	question.Options = toQuestionOptions(req.Options)
	question.CorrectAnswer = req.CorrectAnswer
	if req.IsActive != nil {
		question.IsActive = *req.IsActive
	}
	if err := s.questionRepo.Update(question); err != nil {
		return nil, apperr.Store(err)
	}
	return question, nil
}

func (s *examAdminService) DeleteQuestion(questionID uuid.UUID) error {
	if _, err := s.questionRepo.FindByID(questionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.KindNotFound, "Soal tidak ditemukan")
		}
		return apperr.Store(err)
	}
	if err := s.questionRepo.Delete(questionID); err != nil {
		return apperr.Store(err)
	}
	log.Info().Str("question_id", questionID.String()).Msg("Exam question deleted")
	return nil
}

func (s *examAdminService) ListQuestions(juzNumber int) ([]model.ExamQuestion, error) {
	questions, err := s.questionRepo.FindActiveByJuz(juzNumber)
	if err != nil {
		return nil, apperr.Store(err)
	}
	return questions, nil
}

func (s *examAdminService) ListConfigurations() ([]model.ExamConfiguration, error) {
	configurations, err := s.configRepo.FindAll()
	if err != nil {
		return nil, apperr.Store(err)
	}
	return configurations, nil
}

func (s *examAdminService) CreateConfiguration(principal model.Principal, req dto.ConfigurationDTO) (*model.ExamConfiguration, error) {
	// Activating a configuration retires every other active one so that
	// FindActive stays single-valued.
	if req.IsActive {
		if err := s.configRepo.DeactivateAll(); err != nil {
			return nil, apperr.Store(err)
		}
	}
	configuration := model.ExamConfiguration{
		Name:             req.Name,
		Description:      req.Description,
		DurationMinutes:  req.DurationMinutes,
		MaxAttempts:      req.MaxAttempts,
		PassingScore:     req.PassingScore,
		ShuffleQuestions: req.ShuffleQuestions,
		IsActive:         req.IsActive,
		CreatedBy:        &principal.UserID,
	}
	if configuration.PassingScore == 0 {
		configuration.PassingScore = model.DefaultPassingScore
	}
	if err := s.configRepo.Create(&configuration); err != nil {
		return nil, apperr.Store(err)
	}
	log.Info().
		Str("configuration_id", configuration.ID.String()).
		Str("admin_id", principal.UserID.String()).
		Bool("is_active", configuration.IsActive).
		Msg("Exam configuration created")
	return &configuration, nil
}

func (s *examAdminService) UpdateConfiguration(configurationID uuid.UUID, req dto.ConfigurationDTO) (*model.ExamConfiguration, error) {
	configuration, err := s.configRepo.FindByID(configurationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "Konfigurasi ujian tidak ditemukan")
		}
		return nil, apperr.Store(err)
	}

	if req.IsActive && !configuration.IsActive {
		if err := s.configRepo.DeactivateAll(); err != nil {
			return nil, apperr.Store(err)
		}
	}
	configuration.Name = req.Name
	configuration.Description = req.Description
	configuration.DurationMinutes = req.DurationMinutes
	configuration.MaxAttempts = req.MaxAttempts
	if req.PassingScore > 0 {
		configuration.PassingScore = req.PassingScore
	}
	configuration.ShuffleQuestions = req.ShuffleQuestions
	configuration.IsActive = req.IsActive
	if err := s.configRepo.Update(configuration); err != nil {
		return nil, apperr.Store(err)
	}
	return configuration, nil
}

func (s *examAdminService) ListFlags(status string) ([]model.ExamQuestionFlag, error) {
	flags, err := s.flagRepo.FindByStatus(status)
	if err != nil {
		return nil, apperr.Store(err)
	}
	return flags, nil
}

func (s *examAdminService) UpdateFlag(flagID uuid.UUID, req dto.FlagUpdateDTO) (*model.ExamQuestionFlag, error) {
	flag, err := s.flagRepo.FindByID(flagID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "Laporan soal tidak ditemukan")
		}
		return nil, apperr.Store(err)
	}
	flag.Status = req.Status
	if err := s.flagRepo.Update(flag); err != nil {
		return nil, apperr.Store(err)
	}
	return flag, nil
}

// validateQuestion checks the cross-field rule the binding tags cannot: the
// answer key must match one of the options, and exactly the options marked
// correct.
func validateQuestion(req dto.QuestionCreateDTO) error {
	keyMatchesOption := false
	for _, option := range req.Options {
		if option.Text == req.CorrectAnswer {
			keyMatchesOption = true
			if !option.IsCorrect {
				return apperr.New(apperr.KindValidation, "Kunci jawaban tidak ditandai benar pada opsi")
			}
		} else if option.IsCorrect {
			return apperr.New(apperr.KindValidation, "Opsi yang ditandai benar tidak sesuai kunci jawaban")
		}
	}
	if !keyMatchesOption {
		return apperr.New(apperr.KindValidation, "Kunci jawaban harus salah satu dari opsi")
	}
	return nil
}

func toQuestionOptions(options []dto.QuestionOptionDTO) datatypes.JSONSlice[model.QuestionOption] {
	out := make([]model.QuestionOption, 0, len(options))
	for _, option := range options {
		out = append(out, model.QuestionOption{Text: option.Text, IsCorrect: option.IsCorrect})
	}
	return datatypes.NewJSONSlice(out)
}
