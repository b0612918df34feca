package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouterFixture(students ...StudentSummary) (*Router, *RosterCache, *fakeRosterBackend) {
	backend := &fakeRosterBackend{students: students}
	cache := NewRosterCache(backend)
	return NewRouter(cache), cache, backend
}

func TestRouter_TrainerEntryRefreshesRoster(t *testing.T) {
	router, cache, backend := newRouterFixture(
		StudentSummary{ID: "s1", Name: "Ana", Status: StatusActive},
	)

	router.EnterAs(context.Background(), RoleTrainer)

	assert.Equal(t, ViewTrainerHome, router.View())
	assert.Equal(t, 1, backend.callCount())
	assert.Len(t, cache.Students(), 1)
}

func TestRouter_StudentEntrySkipsRoster(t *testing.T) {
	router, _, backend := newRouterFixture()

	router.EnterAs(context.Background(), RoleStudent)

	assert.Equal(t, ViewStudentHome, router.View())
	assert.Zero(t, backend.callCount())
}

func TestRouter_ShowRosterRefreshes(t *testing.T) {
	router, _, backend := newRouterFixture(
		StudentSummary{ID: "s1", Name: "Ana", Status: StatusActive},
	)
	router.EnterAs(context.Background(), RoleTrainer)

	router.ShowRoster(context.Background())

	assert.Equal(t, ViewRosterList, router.View())
	assert.Equal(t, 2, backend.callCount())
}

func TestRouter_RemovalPathDoesNotRefresh(t *testing.T) {
	ctx := context.Background()
	router, cache, backend := newRouterFixture(
		StudentSummary{ID: "s1", Name: "Ana", Status: StatusActive},
		StudentSummary{ID: "s2", Name: "Bia", Status: StatusActive},
	)
	router.EnterAs(ctx, RoleTrainer)
	router.ShowRoster(ctx)
	router.SelectStudent(ctx, "s1")
	require.Equal(t, ViewStudentDetail, router.View())

	calls := backend.callCount()
	cache.RemoveLocally("s1")
	router.ShowRosterAfterRemoval()

	assert.Equal(t, ViewRosterList, router.View())
	assert.Equal(t, calls, backend.callCount(), "post-removal navigation must not refetch")
	assert.Empty(t, router.SelectedStudentID(), "removal clears the selection")
	assert.Len(t, cache.Students(), 1)
}

func TestRouter_StaleDetailFallsBackToTrainerHome(t *testing.T) {
	ctx := context.Background()
	router, _, _ := newRouterFixture(
		StudentSummary{ID: "s1", Name: "Ana", Status: StatusActive},
	)
	router.EnterAs(ctx, RoleTrainer)

	router.SelectStudent(ctx, "gone")

	assert.Equal(t, ViewTrainerHome, router.View())
	assert.Empty(t, router.SelectedStudentID())
}

func TestRouter_EditorsRequireSelection(t *testing.T) {
	ctx := context.Background()
	router, _, _ := newRouterFixture(
		StudentSummary{ID: "s1", Name: "Ana", Status: StatusActive},
	)
	router.EnterAs(ctx, RoleTrainer)

	router.OpenWorkoutEditor(ctx)
	assert.Equal(t, ViewTrainerHome, router.View(), "no selection falls back home")

	router.SelectStudent(ctx, "s1")
	router.OpenWorkoutEditor(ctx)
	assert.Equal(t, ViewWorkoutEditor, router.View())

	router.Back(ctx)
	assert.Equal(t, ViewStudentDetail, router.View(), "editor backs out to the detail view")
	assert.Equal(t, "s1", router.SelectedStudentID())

	router.OpenMealEditor(ctx)
	assert.Equal(t, ViewMealEditor, router.View())
	router.Back(ctx)
	assert.Equal(t, ViewStudentDetail, router.View())
}

func TestRouter_ChatBackDependsOnRole(t *testing.T) {
	ctx := context.Background()

	trainer, _, _ := newRouterFixture(
		StudentSummary{ID: "s1", Name: "Ana", Status: StatusActive},
	)
	trainer.EnterAs(ctx, RoleTrainer)
	trainer.SelectStudent(ctx, "s1")
	trainer.OpenChat(ctx)
	require.Equal(t, ViewChat, trainer.View())
	trainer.Back(ctx)
	assert.Equal(t, ViewStudentDetail, trainer.View(), "trainer backs out of chat to the student's detail")
	assert.Equal(t, "s1", trainer.SelectedStudentID())

	student, _, _ := newRouterFixture()
	student.EnterAs(ctx, RoleStudent)
	student.OpenChat(ctx)
	student.Back(ctx)
	assert.Equal(t, ViewStudentHome, student.View())
}

func TestRouter_TrainerChatRequiresSelection(t *testing.T) {
	ctx := context.Background()
	router, _, _ := newRouterFixture(
		StudentSummary{ID: "s1", Name: "Ana", Status: StatusActive},
	)
	router.EnterAs(ctx, RoleTrainer)

	router.OpenChat(ctx)

	assert.Equal(t, ViewTrainerHome, router.View(), "chat without a selected student falls back home")
}

func TestRouter_ChatBackWithStaleSelectionFallsBackHome(t *testing.T) {
	ctx := context.Background()
	router, cache, _ := newRouterFixture(
		StudentSummary{ID: "s1", Name: "Ana", Status: StatusActive},
	)
	router.EnterAs(ctx, RoleTrainer)
	router.SelectStudent(ctx, "s1")
	router.OpenChat(ctx)
	require.Equal(t, ViewChat, router.View())

	// The student vanished while the chat was open.
	cache.RemoveLocally("s1")
	router.Back(ctx)

	assert.Equal(t, ViewTrainerHome, router.View())
	assert.Empty(t, router.SelectedStudentID())
}

func TestRouter_LogoutClearsSessionState(t *testing.T) {
	ctx := context.Background()
	router, cache, _ := newRouterFixture(
		StudentSummary{ID: "s1", Name: "Ana", Status: StatusActive},
	)
	router.EnterAs(ctx, RoleTrainer)
	router.SelectStudent(ctx, "s1")

	router.EnterLoggedOut()

	assert.Equal(t, ViewLogin, router.View())
	assert.Empty(t, router.SelectedStudentID())
	assert.Empty(t, cache.Students())
	assert.Empty(t, router.Role())
}
