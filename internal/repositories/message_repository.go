package repositories

import (
	"treinai_backend/internal/models"

	"gorm.io/gorm"
)

type MessageRepository interface {
	Create(db *gorm.DB, message *models.Message) error

	// FindConversation returns every message exchanged between the two
	// users in either direction, oldest first. The pair is unordered so
	// (a,b) and (b,a) name the same conversation.
	FindConversation(db *gorm.DB, userA, userB string) ([]models.Message, error)
}

type messageRepository struct{}

func NewMessageRepository() MessageRepository {
	return &messageRepository{}
}

func (r *messageRepository) Create(db *gorm.DB, message *models.Message) error {
	return db.Create(message).Error
}

func (r *messageRepository) FindConversation(db *gorm.DB, userA, userB string) ([]models.Message, error) {
	var messages []models.Message
	err := db.Where(
		"(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
		userA, userB, userB, userA,
	).Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}
