package dto

type FoodInput struct {
	Name     string `json:"name" binding:"required"`
	Amount   string `json:"amount"`
	Calories int    `json:"calories" binding:"omitempty,gte=0"`
}

type MealInput struct {
	Name  string      `json:"name" binding:"required"`
	Time  string      `json:"time"`
	Foods []FoodInput `json:"foods" binding:"dive"`
}

type SaveMealPlanRequest struct {
	TotalCalories int         `json:"total_calories" binding:"required,gt=0"`
	Protein       int         `json:"protein" binding:"omitempty,gte=0"`
	Carbs         int         `json:"carbs" binding:"omitempty,gte=0"`
	Fat           int         `json:"fat" binding:"omitempty,gte=0"`
	Meals         []MealInput `json:"meals" binding:"dive"`
}

type FoodResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Amount   string `json:"amount,omitempty"`
	Calories int    `json:"calories"`
}

type MealResponse struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Time  string         `json:"time"`
	Foods []FoodResponse `json:"foods"`
}

type MealPlanResponse struct {
	ID            string         `json:"id"`
	TotalCalories int            `json:"total_calories"`
	Protein       int            `json:"protein"`
	Carbs         int            `json:"carbs"`
	Fat           int            `json:"fat"`
	Meals         []MealResponse `json:"meals"`
}
