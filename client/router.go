package client

import (
	"context"
	"sync"
)

// View identifies one screen of the app.
type View string

const (
	ViewLogin         View = "login"
	ViewTrainerHome   View = "trainer_home"
	ViewStudentHome   View = "student_home"
	ViewRosterList    View = "roster_list"
	ViewStudentDetail View = "student_detail"
	ViewWorkoutEditor View = "workout_editor"
	ViewMealEditor    View = "meal_editor"
	ViewAddStudent    View = "add_student"
	ViewChat          View = "chat"
)

// Router owns the current view and the selected-student reference that
// the detail and editor screens hang off. Entering a roster-bearing
// view refreshes the roster cache, with one exception: arriving at the
// roster list right after a local removal, so the just-removed student
// cannot flash back in.
type Router struct {
	roster *RosterCache

	mu       sync.Mutex
	view     View
	role     Role
	selected string
}

func NewRouter(roster *RosterCache) *Router {
	r := &Router{roster: roster, view: ViewLogin}
	roster.SetRemovalHook(r.clearSelectionIf)
	return r
}

// EnterAs lands a freshly resolved session on its home view.
func (r *Router) EnterAs(ctx context.Context, role Role) {
	r.mu.Lock()
	r.role = role
	r.selected = ""
	r.mu.Unlock()

	if role == RoleTrainer {
		r.ShowTrainerHome(ctx)
		return
	}
	r.set(ViewStudentHome)
}

// EnterLoggedOut drops all session-scoped state and shows the login.
func (r *Router) EnterLoggedOut() {
	r.roster.Clear()
	r.mu.Lock()
	r.role = ""
	r.selected = ""
	r.view = ViewLogin
	r.mu.Unlock()
}

// ShowTrainerHome refreshes the roster and shows the trainer home.
func (r *Router) ShowTrainerHome(ctx context.Context) {
	_ = r.roster.Refresh(ctx)
	r.mu.Lock()
	r.selected = ""
	r.view = ViewTrainerHome
	r.mu.Unlock()
}

// ShowRoster refreshes the roster and shows the full student list.
func (r *Router) ShowRoster(ctx context.Context) {
	_ = r.roster.Refresh(ctx)
	r.set(ViewRosterList)
}

// ShowRosterAfterRemoval shows the student list without refreshing,
// taking the locally filtered cache as is. RemoveLocally must already
// have run for the deactivated student.
func (r *Router) ShowRosterAfterRemoval() {
	r.set(ViewRosterList)
}

// SelectStudent opens the detail view for id. When id is no longer in
// the cached roster the selection is stale and the trainer home is
// shown instead.
func (r *Router) SelectStudent(ctx context.Context, id string) {
	if _, ok := r.roster.Find(id); !ok {
		r.ShowTrainerHome(ctx)
		return
	}
	r.mu.Lock()
	r.selected = id
	r.view = ViewStudentDetail
	r.mu.Unlock()
}

// OpenWorkoutEditor opens the workout editor for the selected student.
func (r *Router) OpenWorkoutEditor(ctx context.Context) {
	r.openForSelected(ctx, ViewWorkoutEditor)
}

// OpenMealEditor opens the meal plan editor for the selected student.
func (r *Router) OpenMealEditor(ctx context.Context) {
	r.openForSelected(ctx, ViewMealEditor)
}

func (r *Router) openForSelected(ctx context.Context, view View) {
	r.mu.Lock()
	id := r.selected
	r.mu.Unlock()
	if id == "" {
		r.ShowTrainerHome(ctx)
		return
	}
	if _, ok := r.roster.Find(id); !ok {
		r.ShowTrainerHome(ctx)
		return
	}
	r.set(view)
}

// OpenAddStudent opens the student creation form.
func (r *Router) OpenAddStudent() {
	r.set(ViewAddStudent)
}

// OpenChat opens the conversation view. A trainer's conversation hangs
// off the selected student, so trainers reach chat only from the detail
// view; without a live selection they fall back home. Students always
// chat with their own trainer and need no selection.
func (r *Router) OpenChat(ctx context.Context) {
	r.mu.Lock()
	role := r.role
	r.mu.Unlock()

	if role == RoleTrainer {
		r.openForSelected(ctx, ViewChat)
		return
	}
	r.set(ViewChat)
}

// Back navigates to the natural parent of the current view.
func (r *Router) Back(ctx context.Context) {
	r.mu.Lock()
	view := r.view
	role := r.role
	selected := r.selected
	r.mu.Unlock()

	switch view {
	case ViewWorkoutEditor, ViewMealEditor:
		r.SelectStudent(ctx, selected)
	case ViewStudentDetail, ViewRosterList, ViewAddStudent:
		r.ShowTrainerHome(ctx)
	case ViewChat:
		if role == RoleTrainer {
			// Back to the detail view of the student being chatted with.
			// The stale guard in SelectStudent handles a selection that
			// disappeared while the chat was open.
			r.SelectStudent(ctx, selected)
			return
		}
		r.set(ViewStudentHome)
	default:
	}
}

// View returns the current view.
func (r *Router) View() View {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.view
}

// SelectedStudentID returns the id behind the detail and editor views,
// empty when no student is selected.
func (r *Router) SelectedStudentID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.selected
}

// Role returns the role the session entered with.
func (r *Router) Role() Role {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.role
}

func (r *Router) set(view View) {
	r.mu.Lock()
	r.view = view
	r.mu.Unlock()
}

func (r *Router) clearSelectionIf(studentID string) {
	r.mu.Lock()
	if r.selected == studentID {
		r.selected = ""
	}
	r.mu.Unlock()
}
