// Package client implements the navigation and data-synchronization
// state machine of the TreinAí mobile client: session resolution, the
// trainer's roster cache, the view router and the realtime chat mirror.
package client

import (
	"context"
	"time"
)

type Role string

const (
	RoleTrainer Role = "trainer"
	RoleStudent Role = "student"
)

type Status string

const (
	StatusNew      Status = "new"
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Session is the client's current identity. Absent session means the
// login view.
type Session struct {
	UserID      string
	AccessToken string
}

// Account is the resolved identity behind a session.
type Account struct {
	ID        string
	Role      Role
	Status    Status
	Name      string
	Avatar    string
	TrainerID string
}

// StudentSummary is the roster projection of one student.
type StudentSummary struct {
	ID     string
	Name   string
	Avatar string
	Status Status
	Goal   string
	Weight float64
	Height float64
}

// Message is one immutable chat entry.
type Message struct {
	ID         string
	SenderID   string
	ReceiverID string
	Content    string
	CreatedAt  time.Time
}

// SessionBackend is what the resolver needs from the server.
type SessionBackend interface {
	// CurrentSession returns (nil, nil) when no session exists.
	CurrentSession(ctx context.Context) (*Session, error)

	// ResolveAccount fetches role and status for the session's user.
	ResolveAccount(ctx context.Context, userID string) (*Account, error)

	// SignOut terminates the session server side.
	SignOut(ctx context.Context) error
}

// RosterBackend feeds the roster cache.
type RosterBackend interface {
	// ActiveStudents returns the trainer's active students.
	ActiveStudents(ctx context.Context) ([]StudentSummary, error)
}

// ChatBackend feeds the realtime mirror.
type ChatBackend interface {
	// Conversation returns the full pair history, oldest first.
	Conversation(ctx context.Context, partnerID string) ([]Message, error)

	// SendMessage inserts one message. The stored message comes back to
	// the sender through the push stream, never through this call.
	SendMessage(ctx context.Context, partnerID, content string) error

	// SubscribeMessages opens the push stream. The returned cancel
	// function closes it; the channel is closed afterwards.
	SubscribeMessages(ctx context.Context) (<-chan Message, func(), error)
}
