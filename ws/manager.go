package ws

import (
	"sync"

	"treinai_backend/internal/logger"
	"treinai_backend/internal/services/dto"
)

// Event is the envelope pushed to subscribers.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Manager tracks one live connection per user and fans persisted chat
// messages out to both ends of a conversation.
type Manager struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (m *Manager) Run() {
	for {
		select {
		case client := <-m.register:
			m.mu.Lock()
			// A reconnect replaces the previous connection of that user.
			if old, ok := m.clients[client.ID]; ok {
				close(old.Send)
			}
			m.clients[client.ID] = client
			m.mu.Unlock()
			logger.Debug("ws client registered", "user_id", client.ID)

		case client := <-m.unregister:
			m.mu.Lock()
			if current, ok := m.clients[client.ID]; ok && current == client {
				close(client.Send)
				delete(m.clients, client.ID)
			}
			m.mu.Unlock()
			logger.Debug("ws client unregistered", "user_id", client.ID)
		}
	}
}

// NotifyPair pushes a stored message to both conversation ends. The
// sender gets it through the same push as the receiver, so the client
// never needs an optimistic echo.
func (m *Manager) NotifyPair(userA, userB string, message *dto.MessageResponse) {
	event := Event{Type: "message", Payload: message}
	m.send(userA, event)
	if userB != userA {
		m.send(userB, event)
	}
}

func (m *Manager) send(userID string, event Event) {
	m.mu.RLock()
	client, ok := m.clients[userID]
	m.mu.RUnlock()
	if !ok {
		return
	}

	select {
	case client.Send <- event:
	default:
		// Slow consumer: drop the connection instead of blocking.
		go func() { m.unregister <- client }()
	}
}

func (m *Manager) ClientCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}

func (m *Manager) IsConnected(userID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.clients[userID]
	return ok
}
