package client

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRosterBackend struct {
	mu       sync.Mutex
	students []StudentSummary
	err      error
	calls    int
}

func (f *fakeRosterBackend) ActiveStudents(ctx context.Context) ([]StudentSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]StudentSummary, len(f.students))
	copy(out, f.students)
	return out, nil
}

func (f *fakeRosterBackend) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestRosterCache_RefreshSortsNamesPtBR(t *testing.T) {
	backend := &fakeRosterBackend{students: []StudentSummary{
		{ID: "3", Name: "Carla Souza", Status: StatusActive},
		{ID: "1", Name: "Ágata Lima", Status: StatusActive},
		{ID: "2", Name: "bruno alves", Status: StatusActive},
	}}
	cache := NewRosterCache(backend)

	require.NoError(t, cache.Refresh(context.Background()))

	students := cache.Students()
	require.Len(t, students, 3)
	assert.Equal(t, "Ágata Lima", students[0].Name)
	assert.Equal(t, "bruno alves", students[1].Name)
	assert.Equal(t, "Carla Souza", students[2].Name)
}

func TestRosterCache_RefreshErrorKeepsStaleList(t *testing.T) {
	backend := &fakeRosterBackend{students: []StudentSummary{
		{ID: "1", Name: "Ana", Status: StatusActive},
	}}
	cache := NewRosterCache(backend)
	require.NoError(t, cache.Refresh(context.Background()))

	backend.mu.Lock()
	backend.err = errors.New("network down")
	backend.mu.Unlock()

	err := cache.Refresh(context.Background())
	require.Error(t, err)
	assert.Len(t, cache.Students(), 1, "failed refresh must not blank the list")
}

func TestRosterCache_RemoveLocally(t *testing.T) {
	backend := &fakeRosterBackend{students: []StudentSummary{
		{ID: "1", Name: "Ana", Status: StatusActive},
		{ID: "2", Name: "Bia", Status: StatusActive},
	}}
	cache := NewRosterCache(backend)
	require.NoError(t, cache.Refresh(context.Background()))

	var removed []string
	cache.SetRemovalHook(func(id string) { removed = append(removed, id) })

	callsBefore := backend.callCount()
	cache.RemoveLocally("1")

	students := cache.Students()
	require.Len(t, students, 1)
	assert.Equal(t, "2", students[0].ID)
	assert.Equal(t, []string{"1"}, removed)
	assert.Equal(t, callsBefore, backend.callCount(), "removal must not trigger a refresh")

	// Removing twice is a no-op on the list.
	cache.RemoveLocally("1")
	assert.Len(t, cache.Students(), 1)
}

func TestRosterCache_Find(t *testing.T) {
	backend := &fakeRosterBackend{students: []StudentSummary{
		{ID: "1", Name: "Ana", Status: StatusActive},
	}}
	cache := NewRosterCache(backend)
	require.NoError(t, cache.Refresh(context.Background()))

	_, ok := cache.Find("1")
	assert.True(t, ok)
	_, ok = cache.Find("missing")
	assert.False(t, ok)
}

func TestRosterCache_Clear(t *testing.T) {
	backend := &fakeRosterBackend{students: []StudentSummary{
		{ID: "1", Name: "Ana", Status: StatusActive},
	}}
	cache := NewRosterCache(backend)
	require.NoError(t, cache.Refresh(context.Background()))

	cache.Clear()
	assert.Empty(t, cache.Students())
}
