// Package contextkeys holds the gin context keys shared between the
// auth middleware and the handlers, so neither side hardcodes strings.
package contextkeys

const (
	// UserIDKey carries the authenticated account ID.
	UserIDKey = "userID"

	// RoleKey carries the authenticated account role as a string.
	RoleKey = "role"
)
