package client

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChatBackend struct {
	mu      sync.Mutex
	history []Message
	sent    []Message
	stream  chan Message
	subs    int
	cancels int
}

func newFakeChatBackend(history ...Message) *fakeChatBackend {
	return &fakeChatBackend{history: history}
}

func (f *fakeChatBackend) Conversation(ctx context.Context, partnerID string) ([]Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Message, len(f.history))
	copy(out, f.history)
	return out, nil
}

func (f *fakeChatBackend) SendMessage(ctx context.Context, partnerID, content string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, Message{ReceiverID: partnerID, Content: content})
	return nil
}

func (f *fakeChatBackend) SubscribeMessages(ctx context.Context) (<-chan Message, func(), error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subs++
	f.stream = make(chan Message, 16)
	stream := f.stream
	return stream, func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.cancels++
		if f.stream == stream {
			close(f.stream)
			f.stream = nil
		}
	}, nil
}

func (f *fakeChatBackend) push(msg Message) {
	f.mu.Lock()
	stream := f.stream
	f.mu.Unlock()
	stream <- msg
}

func waitForMessages(t *testing.T, m *Mirror, want int) []Message {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if msgs := m.Messages(); len(msgs) >= want {
			return msgs
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d messages, have %d", want, len(m.Messages()))
	return nil
}

func TestMirror_StartLoadsHistory(t *testing.T) {
	backend := newFakeChatBackend(
		Message{ID: "m1", SenderID: "partner", ReceiverID: "me", Content: "oi"},
		Message{ID: "m2", SenderID: "me", ReceiverID: "partner", Content: "olá"},
	)
	mirror := NewMirror(backend, "me")
	t.Cleanup(mirror.Stop)

	require.NoError(t, mirror.Start(context.Background(), "partner"))

	msgs := mirror.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "m1", msgs[0].ID)
	assert.Equal(t, "m2", msgs[1].ID)
}

func TestMirror_PushedMessageIsMergedOnce(t *testing.T) {
	backend := newFakeChatBackend(
		Message{ID: "m1", SenderID: "partner", ReceiverID: "me", Content: "oi"},
	)
	mirror := NewMirror(backend, "me")
	t.Cleanup(mirror.Stop)
	require.NoError(t, mirror.Start(context.Background(), "partner"))

	// The push stream can replay a message the fetch already returned.
	backend.push(Message{ID: "m1", SenderID: "partner", ReceiverID: "me", Content: "oi"})
	backend.push(Message{ID: "m2", SenderID: "me", ReceiverID: "partner", Content: "novo"})

	msgs := waitForMessages(t, mirror, 2)
	assert.Len(t, msgs, 2, "duplicate ids must not append twice")
	assert.Equal(t, "m2", msgs[1].ID)
}

func TestMirror_ForeignPairIsIgnored(t *testing.T) {
	backend := newFakeChatBackend()
	mirror := NewMirror(backend, "me")
	t.Cleanup(mirror.Stop)
	require.NoError(t, mirror.Start(context.Background(), "partner"))

	backend.push(Message{ID: "x1", SenderID: "someone", ReceiverID: "else", Content: "spam"})
	backend.push(Message{ID: "m1", SenderID: "partner", ReceiverID: "me", Content: "oi"})

	msgs := waitForMessages(t, mirror, 1)
	require.Len(t, msgs, 1)
	assert.Equal(t, "m1", msgs[0].ID)
}

func TestMirror_SendIsWriteOnly(t *testing.T) {
	backend := newFakeChatBackend()
	mirror := NewMirror(backend, "me")
	t.Cleanup(mirror.Stop)
	require.NoError(t, mirror.Start(context.Background(), "partner"))

	require.NoError(t, mirror.Send(context.Background(), "oi"))

	assert.Empty(t, mirror.Messages(), "sends must not be echoed locally")
	backend.mu.Lock()
	defer backend.mu.Unlock()
	require.Len(t, backend.sent, 1)
	assert.Equal(t, "partner", backend.sent[0].ReceiverID)
}

func TestMirror_SendWithoutConversationFails(t *testing.T) {
	mirror := NewMirror(newFakeChatBackend(), "me")

	err := mirror.Send(context.Background(), "oi")

	assert.ErrorIs(t, err, ErrNoConversation)
}

func TestMirror_PartnerChangeTearsDownOldStream(t *testing.T) {
	backend := newFakeChatBackend()
	mirror := NewMirror(backend, "me")
	t.Cleanup(mirror.Stop)

	require.NoError(t, mirror.Start(context.Background(), "partnerA"))
	require.NoError(t, mirror.Start(context.Background(), "partnerB"))

	backend.mu.Lock()
	subs, cancels := backend.subs, backend.cancels
	backend.mu.Unlock()
	assert.Equal(t, 2, subs)
	assert.Equal(t, 1, cancels, "the first subscription must be cancelled")

	backend.push(Message{ID: "b1", SenderID: "partnerB", ReceiverID: "me", Content: "oi"})
	msgs := waitForMessages(t, mirror, 1)
	assert.Equal(t, "b1", msgs[0].ID)
}

func TestMirror_StopIsIdempotent(t *testing.T) {
	backend := newFakeChatBackend()
	mirror := NewMirror(backend, "me")
	require.NoError(t, mirror.Start(context.Background(), "partner"))

	mirror.Stop()
	mirror.Stop()

	assert.Empty(t, mirror.Messages())
}
