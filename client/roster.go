package client

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"treinai_backend/internal/logger"
)

// RosterCache holds the trainer's list of active students. Refreshes
// replace the list atomically; a failed refresh keeps the previous
// snapshot so the list never goes blank on a transient error.
type RosterCache struct {
	backend RosterBackend

	mu       sync.Mutex
	students []StudentSummary

	onRemove func(studentID string)

	collator *collate.Collator
}

func NewRosterCache(backend RosterBackend) *RosterCache {
	return &RosterCache{
		backend:  backend,
		collator: collate.New(language.BrazilianPortuguese, collate.IgnoreCase),
	}
}

// SetRemovalHook registers a callback invoked synchronously from
// RemoveLocally with the removed id. The router uses it to drop a
// selection pointing at the removed student.
func (r *RosterCache) SetRemovalHook(fn func(studentID string)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onRemove = fn
}

// Refresh fetches the active students and swaps the cached list. When
// refreshes overlap, the one that completes last wins regardless of
// start order. On error the stale list stays in place.
func (r *RosterCache) Refresh(ctx context.Context) error {
	students, err := r.backend.ActiveStudents(ctx)
	if err != nil {
		logger.CtxWithError(ctx, "Roster refresh failed, keeping cached list", err)
		return err
	}

	r.sortByName(students)

	r.mu.Lock()
	r.students = students
	r.mu.Unlock()
	return nil
}

func (r *RosterCache) sortByName(students []StudentSummary) {
	sort.SliceStable(students, func(i, j int) bool {
		return r.collator.CompareString(students[i].Name, students[j].Name) < 0
	})
}

// Students returns a copy of the cached list.
func (r *RosterCache) Students() []StudentSummary {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]StudentSummary, len(r.students))
	copy(out, r.students)
	return out
}

// Find returns the cached summary for id, or false when absent.
func (r *RosterCache) Find(id string) (StudentSummary, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.students {
		if s.ID == id {
			return s, true
		}
	}
	return StudentSummary{}, false
}

// RemoveLocally filters id out of the cached list and notifies the
// removal hook so any selection of that student is cleared. It is
// synchronous, idempotent and never triggers a refresh.
func (r *RosterCache) RemoveLocally(studentID string) {
	r.mu.Lock()
	kept := r.students[:0]
	for _, s := range r.students {
		if s.ID != studentID {
			kept = append(kept, s)
		}
	}
	r.students = kept
	hook := r.onRemove
	r.mu.Unlock()

	if hook != nil {
		hook(studentID)
	}
}

// Clear empties the cache, used when the session ends.
func (r *RosterCache) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.students = nil
}
