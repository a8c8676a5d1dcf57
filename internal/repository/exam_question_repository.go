package repository

import (
	"github.com/google/uuid"
	"github.com/tikrarapp/tikrar-backend/internal/model"
	"gorm.io/gorm"
)

type ExamQuestionRepository interface {
	Create(question *model.ExamQuestion) error
	FindByID(id uuid.UUID) (*model.ExamQuestion, error)
	// FindActiveByJuz returns the active question bank for a juz ordered by
	// section then question number; this is the snapshot grading runs against.
	FindActiveByJuz(juzNumber int) ([]model.ExamQuestion, error)
	CountActiveByJuz(juzNumber int) (int64, error)
	Update(question *model.ExamQuestion) error
	Delete(id uuid.UUID) error
}

type examQuestionRepository struct {
	db *gorm.DB
}

func NewExamQuestionRepository(db *gorm.DB) ExamQuestionRepository {
	return &examQuestionRepository{db: db}
}

func (r *examQuestionRepository) Create(question *model.ExamQuestion) error {
	return r.db.Create(question).Error
}

func (r *examQuestionRepository) FindByID(id uuid.UUID) (*model.ExamQuestion, error) {
	var question model.ExamQuestion
	if err := r.db.First(&question, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *examQuestionRepository) FindActiveByJuz(juzNumber int) ([]model.ExamQuestion, error) {
	var questions []model.ExamQuestion
	err := r.db.
		Where("juz_number = ? AND is_active = ?", juzNumber, true).
		Order("section_number ASC, question_number ASC").
		Find(&questions).Error
	return questions, err
}

func (r *examQuestionRepository) CountActiveByJuz(juzNumber int) (int64, error) {
	var count int64
	err := r.db.Model(&model.ExamQuestion{}).
		Where("juz_number = ? AND is_active = ?", juzNumber, true).
		Count(&count).Error
	return count, err
}

func (r *examQuestionRepository) Update(question *model.ExamQuestion) error {
	return r.db.Save(question).Error
}

func (r *examQuestionRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.ExamQuestion{}, "id = ?", id).Error
}
