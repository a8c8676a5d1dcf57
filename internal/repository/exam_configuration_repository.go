package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/tikrarapp/tikrar-backend/internal/model"
	"gorm.io/gorm"
)

type ExamConfigurationRepository interface {
	// FindActive returns the single active configuration, or
	// gorm.ErrRecordNotFound when none is active (= exam defaults apply).
	FindActive() (*model.ExamConfiguration, error)
	FindAll() ([]model.ExamConfiguration, error)
	FindByID(id uuid.UUID) (*model.ExamConfiguration, error)
	Create(configuration *model.ExamConfiguration) error
	Update(configuration *model.ExamConfiguration) error
	DeactivateAll() error
}

type examConfigurationRepository struct {
	db *gorm.DB
}

func NewExamConfigurationRepository(db *gorm.DB) ExamConfigurationRepository {
	return &examConfigurationRepository{db: db}
}

func (r *examConfigurationRepository) FindActive() (*model.ExamConfiguration, error) {
	var configuration model.ExamConfiguration
	err := r.db.
		Where("is_active = ?", true).
		Order("created_at DESC").
		First(&configuration).Error
	if err != nil {
		return nil, err
	}
	return &configuration, nil
}

func (r *examConfigurationRepository) FindAll() ([]model.ExamConfiguration, error) {
	var configurations []model.ExamConfiguration
	err := r.db.Order("created_at DESC").Find(&configurations).Error
	return configurations, err
}

func (r *examConfigurationRepository) FindByID(id uuid.UUID) (*model.ExamConfiguration, error) {
	var configuration model.ExamConfiguration
	if err := r.db.First(&configuration, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &configuration, nil
}

func (r *examConfigurationRepository) Create(configuration *model.ExamConfiguration) error {
	return r.db.Create(configuration).Error
}

func (r *examConfigurationRepository) Update(configuration *model.ExamConfiguration) error {
	return r.db.Save(configuration).Error
}

func (r *examConfigurationRepository) DeactivateAll() error {
	return r.db.Model(&model.ExamConfiguration{}).
		Where("is_active = ?", true).
		Updates(map[string]interface{}{"is_active": false, "updated_at": time.Now()}).Error
}
