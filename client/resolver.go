package client

import (
	"context"
	"sync"

	"treinai_backend/internal/logger"
)

// Outcome is the terminal state of one session resolution.
type Outcome string

const (
	OutcomeNoSession        Outcome = "no_session"
	OutcomeActiveTrainer    Outcome = "active_trainer"
	OutcomeActiveStudent    Outcome = "active_student"
	OutcomeRejectedInactive Outcome = "rejected_inactive"
)

// accountDeactivatedNotice is shown when a deactivated account tries to
// enter the app.
const accountDeactivatedNotice = "Sua conta foi desativada. Fale com seu treinador para mais informações."

// SessionResolver decides, on app start and after every sign-in, which
// home the user lands on. An inactive account is signed out server side
// and blocked before any view with data is reached.
type SessionResolver struct {
	backend SessionBackend
	router  *Router

	mu      sync.Mutex
	account *Account
	notice  string
}

func NewSessionResolver(backend SessionBackend, router *Router) *SessionResolver {
	return &SessionResolver{backend: backend, router: router}
}

// Resolve runs the full resolution. Concurrent invocations are safe;
// the one that finishes last determines the visible state.
func (r *SessionResolver) Resolve(ctx context.Context) Outcome {
	session, err := r.backend.CurrentSession(ctx)
	if err != nil {
		logger.CtxWithError(ctx, "Session lookup failed", err)
		return r.conclude(ctx, OutcomeNoSession, nil, "")
	}
	if session == nil {
		return r.conclude(ctx, OutcomeNoSession, nil, "")
	}

	account, err := r.backend.ResolveAccount(ctx, session.UserID)
	if err != nil {
		logger.CtxWithError(ctx, "Account resolution failed", err)
		return r.conclude(ctx, OutcomeNoSession, nil, "")
	}

	// The status gate runs before any role decision. A deactivated
	// account never reaches a home view, and its session is revoked
	// server side so a cached refresh token stays dead.
	if account.Status == StatusInactive {
		if err := r.backend.SignOut(ctx); err != nil {
			logger.CtxWithError(ctx, "Sign-out of deactivated account failed", err)
		}
		return r.conclude(ctx, OutcomeRejectedInactive, nil, accountDeactivatedNotice)
	}

	// Unknown or missing role falls open to the student home, the
	// lower-privilege surface.
	if account.Role == RoleTrainer {
		return r.conclude(ctx, OutcomeActiveTrainer, account, "")
	}
	return r.conclude(ctx, OutcomeActiveStudent, account, "")
}

func (r *SessionResolver) conclude(ctx context.Context, outcome Outcome, account *Account, notice string) Outcome {
	r.mu.Lock()
	r.account = account
	r.notice = notice
	r.mu.Unlock()

	switch outcome {
	case OutcomeActiveTrainer:
		r.router.EnterAs(ctx, RoleTrainer)
	case OutcomeActiveStudent:
		r.router.EnterAs(ctx, RoleStudent)
	default:
		r.router.EnterLoggedOut()
	}
	return outcome
}

// Account returns the resolved account, nil until a resolution lands on
// a home view.
func (r *SessionResolver) Account() *Account {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.account
}

// Notice returns the blocking message to display, empty when none.
func (r *SessionResolver) Notice() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.notice
}
