package models

// Profile carries the displayable account attributes. For students it also
// links the owning trainer; TrainerID stays nil for trainer accounts.
type Profile struct {
	BaseModel
	UserID    string  `gorm:"uniqueIndex;not null"`
	FullName  string  `gorm:"not null"`
	Avatar    string  // public URL; empty means "let the client pick a placeholder"
	Goal      string  // e.g. "Hipertrofia", "Emagrecimento"
	Weight    float64 // kg
	Height    float64 // m
	TrainerID *string `gorm:"index"`
}
