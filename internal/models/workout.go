package models

// Workout is one training session of a student's program ("Treino A").
type Workout struct {
	BaseModel
	StudentID string `gorm:"index;not null"`
	TrainerID string `gorm:"index;not null"`
	Name      string `gorm:"not null"`
	Focus     string // muscle group the session targets

	Exercises []WorkoutExercise `gorm:"foreignKey:WorkoutID;constraint:OnDelete:CASCADE"`
}

type WorkoutExercise struct {
	BaseModel
	WorkoutID    string `gorm:"index;not null"`
	ExerciseName string `gorm:"not null"`
	Category     string
	Sets         int    `gorm:"default:3"`
	Reps         string `gorm:"default:'12'"` // free text: "12", "8-10", "até a falha"
	Weight       float64
	RestSeconds  int `gorm:"default:60"`
	OrderIndex   int `gorm:"not null"`
	VideoURL     string
}
