package repositories

import (
	"errors"

	"treinai_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrPhotoNotFound      = errors.New("progress photo not found")
	ErrComparisonNotFound = errors.New("photo comparison not found")
)

type PhotoRepository interface {
	CreatePhoto(db *gorm.DB, photo *models.ProgressPhoto) error
	FindPhotoByID(db *gorm.DB, id string) (*models.ProgressPhoto, error)
	FindPhotosByStudentID(db *gorm.DB, studentID string) ([]models.ProgressPhoto, error)
	DeletePhoto(db *gorm.DB, id string) error

	CreateComparison(db *gorm.DB, comparison *models.PhotoComparison) error
	FindComparisonByID(db *gorm.DB, id string) (*models.PhotoComparison, error)
	FindComparisonsByStudentID(db *gorm.DB, studentID string) ([]models.PhotoComparison, error)
	DeleteComparison(db *gorm.DB, id string) error
}

type photoRepository struct{}

func NewPhotoRepository() PhotoRepository {
	return &photoRepository{}
}

func (r *photoRepository) CreatePhoto(db *gorm.DB, photo *models.ProgressPhoto) error {
	return db.Create(photo).Error
}

func (r *photoRepository) FindPhotoByID(db *gorm.DB, id string) (*models.ProgressPhoto, error) {
	var photo models.ProgressPhoto
	if err := db.First(&photo, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPhotoNotFound
		}
		return nil, err
	}
	return &photo, nil
}

func (r *photoRepository) FindPhotosByStudentID(db *gorm.DB, studentID string) ([]models.ProgressPhoto, error) {
	var photos []models.ProgressPhoto
	err := db.Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&photos).Error
	return photos, err
}

func (r *photoRepository) DeletePhoto(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.ProgressPhoto{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPhotoNotFound
	}
	return nil
}

func (r *photoRepository) CreateComparison(db *gorm.DB, comparison *models.PhotoComparison) error {
	return db.Create(comparison).Error
}

func (r *photoRepository) FindComparisonByID(db *gorm.DB, id string) (*models.PhotoComparison, error) {
	var comparison models.PhotoComparison
	if err := db.First(&comparison, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComparisonNotFound
		}
		return nil, err
	}
	return &comparison, nil
}

func (r *photoRepository) FindComparisonsByStudentID(db *gorm.DB, studentID string) ([]models.PhotoComparison, error) {
	var comparisons []models.PhotoComparison
	err := db.Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&comparisons).Error
	return comparisons, err
}

func (r *photoRepository) DeleteComparison(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.PhotoComparison{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrComparisonNotFound
	}
	return nil
}
