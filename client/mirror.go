package client

import (
	"context"
	"errors"
	"sync"

	"treinai_backend/internal/logger"
)

var (
	// ErrSendInFlight means a previous send has not finished yet.
	ErrSendInFlight = errors.New("a send is already in flight")

	// ErrNoConversation means Start has not been called.
	ErrNoConversation = errors.New("no conversation is open")
)

// Mirror keeps a local, append-only copy of one conversation in sync
// with the server. History is fetched once on Start, then pushed
// messages are merged in. Messages enter the log only when they belong
// to the open pair and their id is not already present, so the fetch
// and the push stream can overlap without duplicates. Sends are write
// only: the sent message shows up through the push stream.
type Mirror struct {
	backend ChatBackend
	selfID  string

	mu        sync.Mutex
	partnerID string
	messages  []Message
	seen      map[string]struct{}
	cancel    func()
	sending   bool
	onChange  func()
}

func NewMirror(backend ChatBackend, selfID string) *Mirror {
	return &Mirror{backend: backend, selfID: selfID}
}

// SetChangeHook registers a callback fired after every mutation of the
// local log. The view layer uses it to re-render.
func (m *Mirror) SetChangeHook(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChange = fn
}

// Start opens the conversation with partnerID. Any previously open
// conversation is torn down first, including its push subscription.
func (m *Mirror) Start(ctx context.Context, partnerID string) error {
	m.Stop()

	history, err := m.backend.Conversation(ctx, partnerID)
	if err != nil {
		return err
	}

	stream, cancel, err := m.backend.SubscribeMessages(ctx)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.partnerID = partnerID
	m.messages = nil
	m.seen = make(map[string]struct{})
	m.cancel = cancel
	for _, msg := range history {
		m.acceptLocked(partnerID, msg)
	}
	m.mu.Unlock()

	go m.consume(ctx, partnerID, stream)
	m.notify()
	return nil
}

// Stop tears the open conversation down. Safe to call repeatedly.
func (m *Mirror) Stop() {
	m.mu.Lock()
	cancel := m.cancel
	m.cancel = nil
	m.partnerID = ""
	m.messages = nil
	m.seen = nil
	m.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// Send writes content to the open conversation. At most one send runs
// at a time; the message is never appended locally, it arrives back
// through the push stream with its server-assigned id.
func (m *Mirror) Send(ctx context.Context, content string) error {
	m.mu.Lock()
	partnerID := m.partnerID
	if partnerID == "" {
		m.mu.Unlock()
		return ErrNoConversation
	}
	if m.sending {
		m.mu.Unlock()
		return ErrSendInFlight
	}
	m.sending = true
	m.mu.Unlock()

	err := m.backend.SendMessage(ctx, partnerID, content)

	m.mu.Lock()
	m.sending = false
	m.mu.Unlock()
	return err
}

// Messages returns a copy of the local log, oldest first.
func (m *Mirror) Messages() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Message, len(m.messages))
	copy(out, m.messages)
	return out
}

func (m *Mirror) consume(ctx context.Context, partnerID string, stream <-chan Message) {
	for msg := range stream {
		m.mu.Lock()
		if m.partnerID != partnerID {
			m.mu.Unlock()
			return
		}
		accepted := m.acceptLocked(partnerID, msg)
		m.mu.Unlock()
		if accepted {
			m.notify()
		}
	}
	logger.CtxDebug(ctx, "Message stream closed", "partnerID", partnerID)
}

// acceptLocked merges one message, returning whether it was new. Only
// messages between self and the open partner are taken.
func (m *Mirror) acceptLocked(partnerID string, msg Message) bool {
	pair := (msg.SenderID == m.selfID && msg.ReceiverID == partnerID) ||
		(msg.SenderID == partnerID && msg.ReceiverID == m.selfID)
	if !pair {
		return false
	}
	if _, dup := m.seen[msg.ID]; dup {
		return false
	}
	m.seen[msg.ID] = struct{}{}
	m.messages = append(m.messages, msg)
	return true
}

func (m *Mirror) notify() {
	m.mu.Lock()
	fn := m.onChange
	m.mu.Unlock()
	if fn != nil {
		fn()
	}
}
