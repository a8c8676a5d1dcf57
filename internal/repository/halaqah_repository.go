package repository

import (
	"github.com/google/uuid"
	"github.com/tikrarapp/tikrar-backend/internal/model"
	"gorm.io/gorm"
)

type HalaqahRepository interface {
	Create(halaqah *model.Halaqah) error
	FindByID(id uuid.UUID) (*model.Halaqah, error)
	FindAllActive() ([]model.Halaqah, error)
	FindAllIDs() ([]uuid.UUID, error)
	Update(halaqah *model.Halaqah) error
}

type halaqahRepository struct {
	db *gorm.DB
}

func NewHalaqahRepository(db *gorm.DB) HalaqahRepository {
	return &halaqahRepository{db: db}
}

func (r *halaqahRepository) Create(halaqah *model.Halaqah) error {
	return r.db.Create(halaqah).Error
}

func (r *halaqahRepository) FindByID(id uuid.UUID) (*model.Halaqah, error) {
	var halaqah model.Halaqah
	if err := r.db.First(&halaqah, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &halaqah, nil
}

func (r *halaqahRepository) FindAllActive() ([]model.Halaqah, error) {
	var halaqahs []model.Halaqah
	err := r.db.
		Where("status = ?", model.HalaqahStatusActive).
		Order("day_of_week ASC, start_time ASC").
		Find(&halaqahs).Error
	return halaqahs, err
}

func (r *halaqahRepository) FindAllIDs() ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.Model(&model.Halaqah{}).Order("created_at ASC").Pluck("id", &ids).Error
	return ids, err
}

func (r *halaqahRepository) Update(halaqah *model.Halaqah) error {
	return r.db.Save(halaqah).Error
}
