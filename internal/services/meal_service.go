package services

import (
	"context"

	"treinai_backend/internal/models"
	"treinai_backend/internal/repositories"
	"treinai_backend/internal/services/dto"
	"treinai_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type MealPlanService interface {
	// SavePlan replaces the student's meal plan. Plan, meals and foods go
	// in as one transaction so the dashboard never shows a half plan.
	SavePlan(ctx context.Context, trainerID, studentID string, req *dto.SaveMealPlanRequest) (*dto.MealPlanResponse, error)

	GetPlan(ctx context.Context, requesterID string, requesterRole models.AccountRole, studentID string) (*dto.MealPlanResponse, error)
}

type MealPlanServiceImpl struct {
	db          *gorm.DB
	mealRepo    repositories.MealPlanRepository
	profileRepo repositories.ProfileRepository
}

func NewMealPlanService(
	db *gorm.DB,
	mealRepo repositories.MealPlanRepository,
	profileRepo repositories.ProfileRepository,
) MealPlanService {
	return &MealPlanServiceImpl{
		db:          db,
		mealRepo:    mealRepo,
		profileRepo: profileRepo,
	}
}

func (s *MealPlanServiceImpl) SavePlan(ctx context.Context, trainerID, studentID string, req *dto.SaveMealPlanRequest) (*dto.MealPlanResponse, error) {
	if err := ensureStudentAccess(ctx, s.db, s.profileRepo, trainerID, models.AccountRoleTrainer, studentID); err != nil {
		return nil, err
	}

	plan := &models.MealPlan{
		StudentID:     studentID,
		TrainerID:     trainerID,
		TotalCalories: req.TotalCalories,
		Protein:       req.Protein,
		Carbs:         req.Carbs,
		Fat:           req.Fat,
	}
	for idx, in := range req.Meals {
		meal := models.Meal{
			Name:       in.Name,
			Time:       defaultMealTime(in.Time),
			OrderIndex: idx,
		}
		for _, food := range in.Foods {
			meal.Foods = append(meal.Foods, models.MealFood{
				FoodName: food.Name,
				Amount:   food.Amount,
				Calories: food.Calories,
			})
		}
		plan.Meals = append(plan.Meals, meal)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.mealRepo.DeleteByStudentID(tx, studentID); err != nil {
			return err
		}
		return s.mealRepo.Create(tx, plan)
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return buildMealPlanResponse(plan), nil
}

func (s *MealPlanServiceImpl) GetPlan(ctx context.Context, requesterID string, requesterRole models.AccountRole, studentID string) (*dto.MealPlanResponse, error) {
	if err := ensureStudentAccess(ctx, s.db, s.profileRepo, requesterID, requesterRole, studentID); err != nil {
		return nil, err
	}

	plan, err := s.mealRepo.FindByStudentID(s.db.WithContext(ctx), studentID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrMealPlanNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	return buildMealPlanResponse(plan), nil
}

func defaultMealTime(t string) string {
	if t == "" {
		return "08:00"
	}
	return t
}

func buildMealPlanResponse(plan *models.MealPlan) *dto.MealPlanResponse {
	resp := &dto.MealPlanResponse{
		ID:            plan.ID,
		TotalCalories: plan.TotalCalories,
		Protein:       plan.Protein,
		Carbs:         plan.Carbs,
		Fat:           plan.Fat,
		Meals:         make([]dto.MealResponse, 0, len(plan.Meals)),
	}
	for _, meal := range plan.Meals {
		mr := dto.MealResponse{
			ID:    meal.ID,
			Name:  meal.Name,
			Time:  meal.Time,
			Foods: make([]dto.FoodResponse, 0, len(meal.Foods)),
		}
		for _, food := range meal.Foods {
			mr.Foods = append(mr.Foods, dto.FoodResponse{
				ID:       food.ID,
				Name:     food.FoodName,
				Amount:   food.Amount,
				Calories: food.Calories,
			})
		}
		resp.Meals = append(resp.Meals, mr)
	}
	return resp
}
