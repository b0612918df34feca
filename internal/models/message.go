package models

import "time"

// Message is immutable once created. A conversation is the set of
// messages whose {SenderID, ReceiverID} equals one unordered user pair.
// Deactivating an account keeps its message history.
type Message struct {
	ID         string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	SenderID   string    `gorm:"index;not null"`
	ReceiverID string    `gorm:"index;not null"`
	Content    string    `gorm:"type:text;not null"`
	CreatedAt  time.Time `gorm:"default:now()"`
}
