package session

import (
	"context"
	"errors"
)

// ErrNoManager indicates the session manager was consumed outside its
// provider scope. This is an integration defect, not a runtime
// condition; callers that cannot handle it should use MustFromContext
// and fail fast.
var ErrNoManager = errors.New("session: manager not attached to context")

// Context key for the session manager.
type contextKey int

const managerKey contextKey = iota

// WithManager returns a new context with the manager attached. The
// host attaches it once, at the root of the component tree.
func WithManager(ctx context.Context, m *Manager) context.Context {
	return context.WithValue(ctx, managerKey, m)
}

// FromContext retrieves the manager from the context. Returns
// ErrNoManager when used outside the provider scope.
func FromContext(ctx context.Context) (*Manager, error) {
	m, ok := ctx.Value(managerKey).(*Manager)
	if !ok || m == nil {
		return nil, ErrNoManager
	}
	return m, nil
}

// MustFromContext retrieves the manager or panics. Use at construction
// time, where a missing manager is a programming-contract violation
// that must surface immediately.
func MustFromContext(ctx context.Context) *Manager {
	m, err := FromContext(ctx)
	if err != nil {
		panic(err)
	}
	return m
}
