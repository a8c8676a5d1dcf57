package repository

import (
	"github.com/google/uuid"
	"github.com/tikrarapp/tikrar-backend/internal/model"
	"gorm.io/gorm"
)

type RegistrationRepository interface {
	FindByID(id uuid.UUID) (*model.Registration, error)
	// FindLatestByUser returns the user's most recent registration
	// regardless of status.
	FindLatestByUser(userID uuid.UUID) (*model.Registration, error)
	// FindLatestApprovedByUser returns the user's most recent approved
	// registration, the one exam operations bind to.
	FindLatestApprovedByUser(userID uuid.UUID) (*model.Registration, error)
	Update(registration *model.Registration) error
	// UpdateExamFields mirrors attempt state onto the registration without
	// touching the rest of the row.
	UpdateExamFields(id uuid.UUID, fields map[string]interface{}) error
}

type registrationRepository struct {
	db *gorm.DB
}

func NewRegistrationRepository(db *gorm.DB) RegistrationRepository {
	return &registrationRepository{db: db}
}

func (r *registrationRepository) FindByID(id uuid.UUID) (*model.Registration, error) {
	var registration model.Registration
	if err := r.db.First(&registration, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &registration, nil
}

func (r *registrationRepository) FindLatestByUser(userID uuid.UUID) (*model.Registration, error) {
	var registration model.Registration
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&registration).Error
	if err != nil {
		return nil, err
	}
	return &registration, nil
}

func (r *registrationRepository) FindLatestApprovedByUser(userID uuid.UUID) (*model.Registration, error) {
	var registration model.Registration
	err := r.db.
		Where("user_id = ? AND status = ?", userID, model.RegistrationStatusApproved).
		Order("created_at DESC").
		First(&registration).Error
	if err != nil {
		return nil, err
	}
	return &registration, nil
}

func (r *registrationRepository) Update(registration *model.Registration) error {
	return r.db.Save(registration).Error
}

func (r *registrationRepository) UpdateExamFields(id uuid.UUID, fields map[string]interface{}) error {
	return r.db.Model(&model.Registration{}).Where("id = ?", id).Updates(fields).Error
}
