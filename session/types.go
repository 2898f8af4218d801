package session

import (
	"context"

	"github.com/teamsync/sessioncore/rbac"
)

// User is the identity record returned by the identity fetch.
type User struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	ProfilePicture string `json:"profilePicture"`
}

// Workspace is a tenant-scoped container with its own membership and
// role assignments.
type Workspace struct {
	ID      string        `json:"id"`
	Name    string        `json:"name"`
	Members []rbac.Member `json:"members"`
}

// UserFetchFunc is the identity fetcher contract. Implementations
// issue the request through the authenticated pipeline.
type UserFetchFunc func(ctx context.Context) (*User, error)

// WorkspaceFetchFunc is the workspace fetcher contract, parameterized
// by the workspace identifier from the navigation context.
type WorkspaceFetchFunc func(ctx context.Context, workspaceID string) (*Workspace, error)

// LogoutFunc issues the server-side logout call through the pipeline.
type LogoutFunc func(ctx context.Context) error

// Notifier surfaces user-visible, dismissible error notifications.
// Transient failures reach the user through this boundary; session
// teardown failures are the only notifications the core itself emits.
type Notifier interface {
	Error(title, message string)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(title, message string)

// Error calls the function.
func (f NotifierFunc) Error(title, message string) { f(title, message) }

// noopNotifier discards notifications.
type noopNotifier struct{}

func (noopNotifier) Error(title, message string) {}
