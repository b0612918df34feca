package models

import "time"

type User struct {
	BaseModel
	Email        string        `gorm:"uniqueIndex;not null"`
	PasswordHash string        `gorm:"not null"`
	Role         AccountRole   `gorm:"type:varchar(20);not null"`
	Status       AccountStatus `gorm:"type:varchar(20);default:'new'"`

	// Relations
	Profile       *Profile       `gorm:"foreignKey:UserID"`
	RefreshTokens []RefreshToken `gorm:"foreignKey:UserID"`
}

type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"not null;index"`
	Token     string    `gorm:"not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
}
