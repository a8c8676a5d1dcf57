package service

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/tikrarapp/tikrar-backend/internal/apperr"
	"github.com/tikrarapp/tikrar-backend/internal/dto"
	"github.com/tikrarapp/tikrar-backend/internal/model"
	"github.com/tikrarapp/tikrar-backend/internal/repository"
	"gorm.io/gorm"
)

type RegistrationService interface {
	MyRegistration(principal model.Principal) (*dto.RegistrationDTO, error)
	Approve(registrationID uuid.UUID) (*dto.RegistrationDTO, error)
}

type registrationService struct {
	registrationRepo repository.RegistrationRepository
}

func NewRegistrationService(registrationRepo repository.RegistrationRepository) RegistrationService {
	return &registrationService{registrationRepo: registrationRepo}
}

func (s *registrationService) MyRegistration(principal model.Principal) (*dto.RegistrationDTO, error) {
	registration, err := s.registrationRepo.FindLatestByUser(principal.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "Pendaftaran tidak ditemukan")
		}
		return nil, apperr.Store(err)
	}
	return toRegistrationDTO(registration), nil
}

func (s *registrationService) Approve(registrationID uuid.UUID) (*dto.RegistrationDTO, error) {
	registration, err := s.registrationRepo.FindByID(registrationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "Pendaftaran tidak ditemukan")
		}
		return nil, apperr.Store(err)
	}
	if registration.Status != model.RegistrationStatusPending {
		return nil, apperr.New(apperr.KindValidation, "Hanya pendaftaran berstatus pending yang dapat disetujui")
	}
	registration.Status = model.RegistrationStatusApproved
	if err := s.registrationRepo.Update(registration); err != nil {
		return nil, apperr.Store(err)
	}
	log.Info().
		Str("registration_id", registration.ID.String()).
		Str("user_id", registration.UserID.String()).
		Msg("Registration approved")
	return toRegistrationDTO(registration), nil
}

func toRegistrationDTO(registration *model.Registration) *dto.RegistrationDTO {
	var out dto.RegistrationDTO
	copier.Copy(&out, registration)
	out.ExamRequired = IsExamRequired(registration.ChosenJuz)
	out.RequiredExamJuz = RequiredExamJuz(registration.ChosenJuz)
	return &out
}
