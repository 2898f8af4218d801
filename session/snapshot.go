package session

import "github.com/teamsync/sessioncore/rbac"

// Snapshot is the composed, read-only view of the current session. It
// is recomputed from its inputs on every read and never mutated.
type Snapshot struct {
	// User is the current identity, nil until the identity fetch has
	// resolved successfully.
	User *User

	// Workspace is the current workspace, nil when no workspace
	// identifier is present or the fetch has not resolved.
	Workspace *Workspace

	// Err is the first error from either fetch dimension, nil if both
	// are clean.
	Err error

	// IsLoading is true until the first identity fetch completes.
	IsLoading bool

	// IsFetching is true while an identity fetch is in flight,
	// including background refetches.
	IsFetching bool

	// WorkspaceLoading is true while the workspace dimension has an
	// unresolved fetch for the current identifier.
	WorkspaceLoading bool
}

// HasPermission reports whether the current user holds the permission
// in the current workspace. It fails closed: false whenever the user
// or the workspace is absent, or the user is not a member.
func (s Snapshot) HasPermission(p rbac.Permission) bool {
	if s.User == nil || s.Workspace == nil {
		return false
	}
	return rbac.Resolve(s.User.ID, s.Workspace.Members).Has(p)
}

// Permissions returns the full resolved permission set. Empty whenever
// HasPermission would be false for every permission.
func (s Snapshot) Permissions() rbac.Set {
	if s.User == nil || s.Workspace == nil {
		return rbac.Set{}
	}
	return rbac.Resolve(s.User.ID, s.Workspace.Members)
}
