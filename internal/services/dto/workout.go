package dto

// ExerciseInput is one line of the workout editor.
type ExerciseInput struct {
	Name        string  `json:"name" binding:"required"`
	Category    string  `json:"category"`
	Sets        int     `json:"sets" binding:"omitempty,gt=0"`
	Reps        string  `json:"reps"`
	Weight      float64 `json:"weight" binding:"omitempty,gte=0"`
	RestSeconds int     `json:"rest_seconds" binding:"omitempty,gte=0"`
	VideoURL    string  `json:"video_url" binding:"omitempty,url"`
}

type WorkoutInput struct {
	Name      string          `json:"name" binding:"required"`
	Focus     string          `json:"focus"`
	Exercises []ExerciseInput `json:"exercises" binding:"required,min=1,dive"`
}

// SaveWorkoutsRequest replaces the student's whole program at once,
// exactly as the editor screen submits it.
type SaveWorkoutsRequest struct {
	Workouts []WorkoutInput `json:"workouts" binding:"required,min=1,dive"`
}

type ExerciseResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category,omitempty"`
	Sets        int     `json:"sets"`
	Reps        string  `json:"reps"`
	Weight      float64 `json:"weight"`
	RestSeconds int     `json:"rest_seconds"`
	VideoURL    string  `json:"video_url,omitempty"`
}

type WorkoutResponse struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Focus     string             `json:"focus,omitempty"`
	Exercises []ExerciseResponse `json:"exercises"`
}

type WorkoutListResponse struct {
	Workouts []WorkoutResponse `json:"workouts"`
}
