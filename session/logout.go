package session

import (
	"context"
	"errors"

	"github.com/teamsync/sessioncore/cache"
)

// ErrMissingLogout indicates Logout was called without a configured
// LogoutFunc.
var ErrMissingLogout = errors.New("session: logout function is required")

// Logout tears down the session. Sequence, each step a postcondition
// of the previous: server-side logout call, identity cache eviction,
// token clear, navigation to the unauthenticated entry point, full
// process reload. The reload flushes every module-level cache, not
// only the ones this package owns.
//
// On failure the session is left untouched and the user sees an error
// notification; there is no partial logout. A second call while one is
// in flight is a no-op.
func (m *Manager) Logout(ctx context.Context) error {
	if m.logoutFn == nil {
		return ErrMissingLogout
	}

	m.logoutMu.Lock()
	if m.logoutPending {
		m.logoutMu.Unlock()
		return nil
	}
	m.logoutPending = true
	m.logoutMu.Unlock()

	defer func() {
		m.logoutMu.Lock()
		m.logoutPending = false
		m.logoutMu.Unlock()
	}()

	if err := m.logoutFn(ctx); err != nil {
		m.notify.Error("Error", err.Error())
		return err
	}

	// Evict the identity entry so no component can read stale user
	// data, then drop the in-memory copy.
	m.store.Delete(ctx, cache.AuthUserKey())
	m.mu.Lock()
	m.user = nil
	m.userErr = nil
	m.userLoaded = false
	m.mu.Unlock()

	m.tokens.Clear()
	m.nav.Home()
	m.reload.Reload()
	return nil
}
