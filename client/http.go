package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"treinai_backend/internal/logger"
)

// RestBackend implements the backend interfaces over the HTTP API and
// the chat WebSocket. It holds the token pair in memory; a persisted
// refresh token can be injected with RestoreSession before the first
// call.
type RestBackend struct {
	baseURL string
	http    *http.Client

	mu           sync.Mutex
	userID       string
	accessToken  string
	refreshToken string
}

func NewRestBackend(baseURL string) *RestBackend {
	return &RestBackend{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

type wireUser struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	Status    string  `json:"status"`
	FullName  string  `json:"full_name"`
	Avatar    string  `json:"avatar"`
	Goal      string  `json:"goal"`
	Weight    float64 `json:"weight"`
	Height    float64 `json:"height"`
	TrainerID *string `json:"trainer_id"`
}

type wireAuth struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	User         wireUser `json:"user"`
}

type wireError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.Code, e.Message)
}

// SignIn authenticates and stores the token pair.
func (b *RestBackend) SignIn(ctx context.Context, email, password string) error {
	var resp wireAuth
	err := b.do(ctx, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return err
	}

	b.mu.Lock()
	b.userID = resp.User.ID
	b.accessToken = resp.AccessToken
	b.refreshToken = resp.RefreshToken
	b.mu.Unlock()
	return nil
}

// RestoreSession seeds a refresh token persisted from a previous run
// and exchanges it for a fresh pair.
func (b *RestBackend) RestoreSession(ctx context.Context, refreshToken string) error {
	var resp wireAuth
	err := b.do(ctx, http.MethodPost, "/api/v1/auth/refresh", map[string]string{
		"refresh_token": refreshToken,
	}, &resp)
	if err != nil {
		return err
	}

	b.mu.Lock()
	b.userID = resp.User.ID
	b.accessToken = resp.AccessToken
	b.refreshToken = resp.RefreshToken
	b.mu.Unlock()
	return nil
}

// CurrentSession reports the in-memory session, nil when signed out.
func (b *RestBackend) CurrentSession(ctx context.Context) (*Session, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.accessToken == "" {
		return nil, nil
	}
	return &Session{UserID: b.userID, AccessToken: b.accessToken}, nil
}

// ResolveAccount asks the server who the session belongs to. The
// server answers from its own record, so a deactivation that happened
// on another device is visible here.
func (b *RestBackend) ResolveAccount(ctx context.Context, userID string) (*Account, error) {
	var resp struct {
		User wireUser `json:"user"`
	}
	if err := b.do(ctx, http.MethodGet, "/api/v1/auth/session", nil, &resp); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusForbidden {
			// A deactivated account still resolves; the gate belongs to
			// the caller, not to this transport.
			return &Account{ID: userID, Status: StatusInactive}, nil
		}
		return nil, err
	}

	trainerID := ""
	if resp.User.TrainerID != nil {
		trainerID = *resp.User.TrainerID
	}
	return &Account{
		ID:        resp.User.ID,
		Role:      Role(resp.User.Role),
		Status:    Status(resp.User.Status),
		Name:      resp.User.FullName,
		Avatar:    resp.User.Avatar,
		TrainerID: trainerID,
	}, nil
}

// SignOut revokes the refresh token server side and forgets the pair.
func (b *RestBackend) SignOut(ctx context.Context) error {
	b.mu.Lock()
	refreshToken := b.refreshToken
	b.userID = ""
	b.accessToken = ""
	b.refreshToken = ""
	b.mu.Unlock()

	if refreshToken == "" {
		return nil
	}
	return b.do(ctx, http.MethodPost, "/api/v1/auth/logout", map[string]string{
		"refresh_token": refreshToken,
	}, nil)
}

// ActiveStudents fetches the trainer's roster.
func (b *RestBackend) ActiveStudents(ctx context.Context) ([]StudentSummary, error) {
	var resp struct {
		Students []struct {
			ID     string  `json:"id"`
			Name   string  `json:"name"`
			Avatar string  `json:"avatar"`
			Status string  `json:"status"`
			Goal   string  `json:"goal"`
			Weight float64 `json:"weight"`
			Height float64 `json:"height"`
		} `json:"students"`
	}
	if err := b.do(ctx, http.MethodGet, "/api/v1/students", nil, &resp); err != nil {
		return nil, err
	}

	students := make([]StudentSummary, 0, len(resp.Students))
	for _, s := range resp.Students {
		students = append(students, StudentSummary{
			ID:     s.ID,
			Name:   s.Name,
			Avatar: s.Avatar,
			Status: Status(s.Status),
			Goal:   s.Goal,
			Weight: s.Weight,
			Height: s.Height,
		})
	}
	return students, nil
}

type wireMessage struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

func (m wireMessage) toMessage() Message {
	return Message{
		ID:         m.ID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Content:    m.Content,
		CreatedAt:  m.CreatedAt,
	}
}

// Conversation fetches the full history with partnerID, oldest first.
func (b *RestBackend) Conversation(ctx context.Context, partnerID string) ([]Message, error) {
	var resp struct {
		Messages []wireMessage `json:"messages"`
	}
	path := "/api/v1/chat/conversations/" + url.PathEscape(partnerID)
	if err := b.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}

	messages := make([]Message, 0, len(resp.Messages))
	for _, m := range resp.Messages {
		messages = append(messages, m.toMessage())
	}
	return messages, nil
}

// SendMessage posts one message. The persisted copy comes back over
// the push stream.
func (b *RestBackend) SendMessage(ctx context.Context, partnerID, content string) error {
	return b.do(ctx, http.MethodPost, "/api/v1/chat/messages", map[string]string{
		"receiver_id": partnerID,
		"content":     content,
	}, nil)
}

// SubscribeMessages dials the chat WebSocket and streams message
// events until the cancel function runs or the connection drops.
func (b *RestBackend) SubscribeMessages(ctx context.Context) (<-chan Message, func(), error) {
	b.mu.Lock()
	token := b.accessToken
	b.mu.Unlock()

	wsURL := strings.Replace(b.baseURL, "http", "ws", 1) + "/api/v1/chat/ws"
	header := http.Header{"Authorization": {"Bearer " + token}}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, header)
	if err != nil {
		return nil, nil, err
	}

	out := make(chan Message, 16)
	done := make(chan struct{})

	go func() {
		defer close(out)
		defer conn.Close()
		for {
			var event struct {
				Type    string          `json:"type"`
				Payload json.RawMessage `json:"payload"`
			}
			if err := conn.ReadJSON(&event); err != nil {
				select {
				case <-done:
				default:
					logger.CtxWithError(ctx, "Message stream read failed", err)
				}
				return
			}
			if event.Type != "message" {
				continue
			}
			var msg wireMessage
			if err := json.Unmarshal(event.Payload, &msg); err != nil {
				logger.CtxWithError(ctx, "Malformed message event", err)
				continue
			}
			select {
			case out <- msg.toMessage():
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			close(done)
			conn.Close()
		})
	}
	return out, cancel, nil
}

func (b *RestBackend) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, b.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	b.mu.Lock()
	if b.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+b.accessToken)
	}
	b.mu.Unlock()

	resp, err := b.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var envelope wireError
		if json.Unmarshal(raw, &envelope) == nil {
			apiErr.Code = envelope.Error.Code
			apiErr.Message = envelope.Error.Message
		}
		return apiErr
	}

	if out != nil && len(raw) > 0 {
		return json.Unmarshal(raw, out)
	}
	return nil
}
