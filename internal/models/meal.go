package models

// MealPlan is the daily macro prescription; saving always creates a new
// plan, the newest one is the active one.
type MealPlan struct {
	BaseModel
	StudentID     string `gorm:"index;not null"`
	TrainerID     string `gorm:"index;not null"`
	TotalCalories int    `gorm:"not null"`
	Protein       int
	Carbs         int
	Fat           int

	Meals []Meal `gorm:"foreignKey:MealPlanID;constraint:OnDelete:CASCADE"`
}

type Meal struct {
	BaseModel
	MealPlanID string `gorm:"index;not null"`
	Name       string `gorm:"not null"`
	Time       string `gorm:"default:'08:00'"`
	OrderIndex int    `gorm:"not null"`

	Foods []MealFood `gorm:"foreignKey:MealID;constraint:OnDelete:CASCADE"`
}

type MealFood struct {
	BaseModel
	MealID   string `gorm:"index;not null"`
	FoodName string `gorm:"not null"`
	Amount   string
	Calories int
}
