package client

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSessionBackend struct {
	mu       sync.Mutex
	session  *Session
	account  *Account
	sessErr  error
	acctErr  error
	signOuts int
}

func (f *fakeSessionBackend) CurrentSession(ctx context.Context) (*Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.session, f.sessErr
}

func (f *fakeSessionBackend) ResolveAccount(ctx context.Context, userID string) (*Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.account, f.acctErr
}

func (f *fakeSessionBackend) SignOut(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signOuts++
	f.session = nil
	return nil
}

func (f *fakeSessionBackend) signOutCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.signOuts
}

func newResolverFixture(backend *fakeSessionBackend, roster *fakeRosterBackend) (*SessionResolver, *Router) {
	if roster == nil {
		roster = &fakeRosterBackend{}
	}
	router := NewRouter(NewRosterCache(roster))
	return NewSessionResolver(backend, router), router
}

func TestResolve_NoSessionLandsOnLogin(t *testing.T) {
	resolver, router := newResolverFixture(&fakeSessionBackend{}, nil)

	outcome := resolver.Resolve(context.Background())

	assert.Equal(t, OutcomeNoSession, outcome)
	assert.Equal(t, ViewLogin, router.View())
	assert.Nil(t, resolver.Account())
}

func TestResolve_SessionLookupErrorLandsOnLogin(t *testing.T) {
	backend := &fakeSessionBackend{sessErr: errors.New("storage unavailable")}
	resolver, router := newResolverFixture(backend, nil)

	outcome := resolver.Resolve(context.Background())

	assert.Equal(t, OutcomeNoSession, outcome)
	assert.Equal(t, ViewLogin, router.View())
}

func TestResolve_InactiveAccountIsRejectedAndSignedOut(t *testing.T) {
	backend := &fakeSessionBackend{
		session: &Session{UserID: "u1"},
		account: &Account{ID: "u1", Role: RoleStudent, Status: StatusInactive},
	}
	resolver, router := newResolverFixture(backend, nil)

	outcome := resolver.Resolve(context.Background())

	assert.Equal(t, OutcomeRejectedInactive, outcome)
	assert.Equal(t, ViewLogin, router.View(), "a deactivated account must never reach a home view")
	assert.Equal(t, 1, backend.signOutCount(), "the session must be revoked server side")
	assert.NotEmpty(t, resolver.Notice())
	assert.Nil(t, resolver.Account())
}

func TestResolve_TrainerLandsOnHomeWithFreshRoster(t *testing.T) {
	roster := &fakeRosterBackend{students: []StudentSummary{
		{ID: "s1", Name: "Ana", Status: StatusActive},
	}}
	backend := &fakeSessionBackend{
		session: &Session{UserID: "t1"},
		account: &Account{ID: "t1", Role: RoleTrainer, Status: StatusActive},
	}
	resolver, router := newResolverFixture(backend, roster)

	outcome := resolver.Resolve(context.Background())

	assert.Equal(t, OutcomeActiveTrainer, outcome)
	assert.Equal(t, ViewTrainerHome, router.View())
	assert.Equal(t, 1, roster.callCount())
	require.NotNil(t, resolver.Account())
	assert.Equal(t, "t1", resolver.Account().ID)
}

func TestResolve_StudentLandsOnStudentHome(t *testing.T) {
	backend := &fakeSessionBackend{
		session: &Session{UserID: "s1"},
		account: &Account{ID: "s1", Role: RoleStudent, Status: StatusActive},
	}
	resolver, router := newResolverFixture(backend, nil)

	outcome := resolver.Resolve(context.Background())

	assert.Equal(t, OutcomeActiveStudent, outcome)
	assert.Equal(t, ViewStudentHome, router.View())
}

func TestResolve_UnknownRoleFallsOpenToStudent(t *testing.T) {
	backend := &fakeSessionBackend{
		session: &Session{UserID: "u1"},
		account: &Account{ID: "u1", Role: "", Status: StatusActive},
	}
	resolver, router := newResolverFixture(backend, nil)

	outcome := resolver.Resolve(context.Background())

	assert.Equal(t, OutcomeActiveStudent, outcome)
	assert.Equal(t, ViewStudentHome, router.View())
}

func TestResolve_UnknownRoleNeverSkipsInactiveGate(t *testing.T) {
	backend := &fakeSessionBackend{
		session: &Session{UserID: "u1"},
		account: &Account{ID: "u1", Role: "", Status: StatusInactive},
	}
	resolver, router := newResolverFixture(backend, nil)

	outcome := resolver.Resolve(context.Background())

	assert.Equal(t, OutcomeRejectedInactive, outcome)
	assert.Equal(t, ViewLogin, router.View())
	assert.Equal(t, 1, backend.signOutCount())
}

func TestResolve_AccountLookupErrorLandsOnLogin(t *testing.T) {
	backend := &fakeSessionBackend{
		session: &Session{UserID: "u1"},
		acctErr: errors.New("timeout"),
	}
	resolver, router := newResolverFixture(backend, nil)

	outcome := resolver.Resolve(context.Background())

	assert.Equal(t, OutcomeNoSession, outcome)
	assert.Equal(t, ViewLogin, router.View())
}
