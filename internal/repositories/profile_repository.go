package repositories

import (
	"errors"
	"time"

	"treinai_backend/internal/models"

	"gorm.io/gorm"
)

var ErrProfileNotFound = errors.New("profile not found")

// StudentRow is the roster projection: one row per student with the
// account status joined in, so the roster filter never needs a second
// query per student.
type StudentRow struct {
	models.Profile
	Email  string               `gorm:"column:email"`
	Status models.AccountStatus `gorm:"column:status"`
}

type ProfileRepository interface {
	Create(db *gorm.DB, profile *models.Profile) error
	FindByUserID(db *gorm.DB, userID string) (*models.Profile, error)
	Update(db *gorm.DB, profile *models.Profile) error

	// FindActiveStudents returns the trainer's roster: active students
	// only, sorted by name ascending. Deactivated students never appear.
	FindActiveStudents(db *gorm.DB, trainerID string) ([]StudentRow, error)

	// CountActiveStudents backs the plan limit check.
	CountActiveStudents(db *gorm.DB, trainerID string) (int64, error)

	// FindStudentOfTrainer fetches one roster member, rejecting IDs that
	// belong to someone else's student.
	FindStudentOfTrainer(db *gorm.DB, trainerID, studentID string) (*StudentRow, error)
}

type profileRepository struct{}

func NewProfileRepository() ProfileRepository {
	return &profileRepository{}
}

func (r *profileRepository) Create(db *gorm.DB, profile *models.Profile) error {
	return db.Create(profile).Error
}

func (r *profileRepository) FindByUserID(db *gorm.DB, userID string) (*models.Profile, error) {
	var profile models.Profile
	if err := db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) Update(db *gorm.DB, profile *models.Profile) error {
	result := db.Model(&models.Profile{}).Where("user_id = ?", profile.UserID).Updates(map[string]interface{}{
		"full_name":  profile.FullName,
		"avatar":     profile.Avatar,
		"goal":       profile.Goal,
		"weight":     profile.Weight,
		"height":     profile.Height,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *profileRepository) FindActiveStudents(db *gorm.DB, trainerID string) ([]StudentRow, error) {
	var rows []StudentRow
	err := db.Model(&models.Profile{}).
		Select("profiles.*, users.email, users.status").
		Joins("JOIN users ON users.id = profiles.user_id").
		Where("profiles.trainer_id = ?", trainerID).
		Where("users.role = ?", models.AccountRoleStudent).
		Where("users.status = ?", models.AccountStatusActive).
		Order("LOWER(profiles.full_name) ASC").
		Find(&rows).Error
	return rows, err
}

func (r *profileRepository) CountActiveStudents(db *gorm.DB, trainerID string) (int64, error) {
	var count int64
	err := db.Model(&models.Profile{}).
		Joins("JOIN users ON users.id = profiles.user_id").
		Where("profiles.trainer_id = ?", trainerID).
		Where("users.role = ?", models.AccountRoleStudent).
		Where("users.status = ?", models.AccountStatusActive).
		Count(&count).Error
	return count, err
}

func (r *profileRepository) FindStudentOfTrainer(db *gorm.DB, trainerID, studentID string) (*StudentRow, error) {
	var row StudentRow
	err := db.Model(&models.Profile{}).
		Select("profiles.*, users.email, users.status").
		Joins("JOIN users ON users.id = profiles.user_id").
		Where("profiles.user_id = ? AND profiles.trainer_id = ?", studentID, trainerID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &row, nil
}
