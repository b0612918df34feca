package repositories

import (
	"errors"

	"treinai_backend/internal/models"

	"gorm.io/gorm"
)

var ErrMealPlanNotFound = errors.New("meal plan not found")

type MealPlanRepository interface {
	// Create persists the plan with its meals and foods in one shot.
	Create(db *gorm.DB, plan *models.MealPlan) error

	FindByID(db *gorm.DB, id string) (*models.MealPlan, error)

	// FindByStudentID returns the student's current plan, or
	// ErrMealPlanNotFound when none was ever saved.
	FindByStudentID(db *gorm.DB, studentID string) (*models.MealPlan, error)

	// DeleteByStudentID clears the previous plan; a save is
	// delete-then-create inside one transaction.
	DeleteByStudentID(db *gorm.DB, studentID string) error
}

type mealPlanRepository struct{}

func NewMealPlanRepository() MealPlanRepository {
	return &mealPlanRepository{}
}

func (r *mealPlanRepository) Create(db *gorm.DB, plan *models.MealPlan) error {
	return db.Create(plan).Error
}

func (r *mealPlanRepository) FindByID(db *gorm.DB, id string) (*models.MealPlan, error) {
	var plan models.MealPlan
	err := preloadMeals(db).First(&plan, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMealPlanNotFound
		}
		return nil, err
	}
	return &plan, nil
}

func (r *mealPlanRepository) FindByStudentID(db *gorm.DB, studentID string) (*models.MealPlan, error) {
	var plan models.MealPlan
	err := preloadMeals(db).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMealPlanNotFound
		}
		return nil, err
	}
	return &plan, nil
}

func (r *mealPlanRepository) DeleteByStudentID(db *gorm.DB, studentID string) error {
	return db.Where("student_id = ?", studentID).Delete(&models.MealPlan{}).Error
}

func preloadMeals(db *gorm.DB) *gorm.DB {
	return db.Preload("Meals", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_index ASC")
	}).Preload("Meals.Foods")
}
