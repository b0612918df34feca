package models

type AccountStatus string
type AccountRole string

const (
	// AccountStatusNew is the state between sign-up and first activity.
	AccountStatusNew      AccountStatus = "new"
	AccountStatusActive   AccountStatus = "active"
	AccountStatusInactive AccountStatus = "inactive"

	AccountRoleTrainer AccountRole = "trainer"
	AccountRoleStudent AccountRole = "student"
)

// CanDeactivate reports whether the status may transition to inactive.
// Deactivation is the only allowed transition: students are soft-deleted
// by flipping status, never removed, so workout and meal history survives.
func (s AccountStatus) CanDeactivate() bool {
	return s == AccountStatusNew || s == AccountStatusActive
}
