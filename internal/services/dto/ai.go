package dto

type SuggestWorkoutRequest struct {
	StudentID   string `json:"student_id" binding:"required,uuid"`
	MuscleGroup string `json:"muscle_group"`
}

type SuggestMealPlanRequest struct {
	StudentID string `json:"student_id" binding:"required,uuid"`
}

type SuggestedExercise struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Sets        int    `json:"sets"`
	Reps        string `json:"reps"`
	RestSeconds int    `json:"rest_seconds"`
}

type SuggestedWorkoutResponse struct {
	Exercises []SuggestedExercise `json:"exercises"`
}

type SuggestedMealPlanResponse struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}
