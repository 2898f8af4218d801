package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/teamsync/sessioncore/cache"
	"github.com/teamsync/sessioncore/navigate"
	"github.com/teamsync/sessioncore/telemetry"
	"github.com/teamsync/sessioncore/token"
	"github.com/teamsync/sessioncore/transport"
)

// Configuration errors.
var (
	ErrMissingUserFetch      = errors.New("session: user fetch function is required")
	ErrMissingWorkspaceFetch = errors.New("session: workspace fetch function is required")
	ErrMissingTokenStore     = errors.New("session: token store is required")
	ErrMissingNavigator      = errors.New("session: navigator is required")
)

// Config assembles the manager's collaborators. FetchUser,
// FetchWorkspace, Tokens, and Navigator are required; everything else
// has a working default.
type Config struct {
	// FetchUser resolves the current identity ("who am I").
	FetchUser UserFetchFunc

	// FetchWorkspace resolves a workspace and the caller's membership.
	FetchWorkspace WorkspaceFetchFunc

	// Logout issues the server-side logout call.
	Logout LogoutFunc

	// Tokens is the process-wide token store.
	Tokens token.Store

	// Navigator performs forced navigation. Wrap with navigate.NewOnce
	// when the same navigator backs the request pipeline.
	Navigator navigate.Navigator

	// Reloader forces the full process reload after logout. Optional;
	// defaults to a no-op for hosts that cannot reload.
	Reloader navigate.Reloader

	// Notifier surfaces logout failures. Optional.
	Notifier Notifier

	// Cache stores fetch results under the stable session keys.
	// Optional; defaults to an in-memory cache with the default policy.
	Cache cache.Cache

	// Policy controls fetch result freshness. Zero value disables
	// caching.
	Policy cache.Policy

	// Instrument attaches telemetry. Optional.
	Instrument *telemetry.Instrument
}

// Manager owns the composition of identity, workspace, and permission
// state. The underlying fetch results are owned by their cache
// entries; the manager owns only how they combine into a Snapshot.
//
// Contract:
// - Concurrency: safe for concurrent use. Concurrent refetches of the
//   same dimension are deduplicated.
// - Ordering: the snapshot reflects the most recent completed fetch of
//   each dimension independently.
type Manager struct {
	fetchUser      UserFetchFunc
	fetchWorkspace WorkspaceFetchFunc
	logoutFn       LogoutFunc
	tokens         token.Store
	nav            navigate.Navigator
	reload         navigate.Reloader
	notify         Notifier
	store          cache.Cache
	policy         cache.Policy
	inst           *telemetry.Instrument

	sf singleflight.Group

	mu                sync.RWMutex
	user              *User
	userErr           error
	userLoaded        bool
	userFetching      bool
	workspaceID       string
	workspace         *Workspace
	workspaceErr      error
	workspaceLoaded   bool
	workspaceFetching bool

	logoutPending bool
	logoutMu      sync.Mutex
}

// NewManager creates a session manager.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.FetchUser == nil {
		return nil, ErrMissingUserFetch
	}
	if cfg.FetchWorkspace == nil {
		return nil, ErrMissingWorkspaceFetch
	}
	if cfg.Tokens == nil {
		return nil, ErrMissingTokenStore
	}
	if cfg.Navigator == nil {
		return nil, ErrMissingNavigator
	}

	m := &Manager{
		fetchUser:      cfg.FetchUser,
		fetchWorkspace: cfg.FetchWorkspace,
		logoutFn:       cfg.Logout,
		tokens:         cfg.Tokens,
		nav:            cfg.Navigator,
		reload:         cfg.Reloader,
		notify:         cfg.Notifier,
		store:          cfg.Cache,
		policy:         cfg.Policy,
		inst:           cfg.Instrument,
	}

	if m.store == nil {
		m.store = cache.NewMemory(cache.DefaultPolicy())
		m.policy = cache.DefaultPolicy()
	}
	if m.reload == nil {
		m.reload = navigate.ReloadFunc(func() {})
	}
	if m.notify == nil {
		m.notify = noopNotifier{}
	}
	if m.inst == nil {
		m.inst = telemetry.Noop()
	}

	// The workspace dimension starts resolved: no identifier, no fetch.
	m.workspaceLoaded = true

	return m, nil
}

// Snapshot returns the current composed session view.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	err := m.userErr
	if err == nil {
		err = m.workspaceErr
	}

	return Snapshot{
		User:             m.user,
		Workspace:        m.workspace,
		Err:              err,
		IsLoading:        !m.userLoaded,
		IsFetching:       m.userFetching,
		WorkspaceLoading: !m.workspaceLoaded || m.workspaceFetching,
	}
}

// Start performs the initial identity fetch, preferring a fresh cache
// entry over the network. Hosts call it once after construction.
func (m *Manager) Start(ctx context.Context) error {
	return m.loadUser(ctx, false)
}

// RefetchAuth forces revalidation of the identity, bypassing the
// cache. Collaborators call it after a profile mutation.
func (m *Manager) RefetchAuth(ctx context.Context) error {
	return m.loadUser(ctx, true)
}

func (m *Manager) loadUser(ctx context.Context, force bool) error {
	if !force {
		if data, ok := m.store.Get(ctx, cache.AuthUserKey()); ok {
			var u User
			if err := json.Unmarshal(data, &u); err == nil {
				m.mu.Lock()
				m.user = &u
				m.userErr = nil
				m.userLoaded = true
				m.mu.Unlock()
				return nil
			}
		}
	}

	m.mu.Lock()
	m.userFetching = true
	m.mu.Unlock()

	_, err, _ := m.sf.Do(cache.AuthUserKey(), func() (any, error) {
		u, err := m.fetchUser(ctx)

		m.mu.Lock()
		m.userFetching = false
		m.userLoaded = true
		if err != nil {
			m.userErr = err
		} else {
			m.user = u
			m.userErr = nil
		}
		m.mu.Unlock()

		if err != nil {
			return nil, err
		}
		if data, merr := json.Marshal(u); merr == nil {
			m.store.Set(ctx, cache.AuthUserKey(), data, m.policy.EffectiveTTL(0))
		}
		return u, nil
	})
	return err
}

// SetWorkspaceID switches the session to the workspace identified by
// id, taken from the navigation context. An empty identifier
// short-circuits: no request is issued and the workspace is absent. A
// fetch still in flight for a previous identifier cannot overwrite the
// new one; results are applied only if the identifier is still
// current.
func (m *Manager) SetWorkspaceID(ctx context.Context, id string) error {
	m.mu.Lock()
	m.workspaceID = id
	if id == "" {
		m.workspace = nil
		m.workspaceErr = nil
		m.workspaceLoaded = true
		m.workspaceFetching = false
		m.mu.Unlock()
		return nil
	}
	m.workspace = nil
	m.workspaceErr = nil
	m.workspaceLoaded = false
	m.mu.Unlock()

	return m.loadWorkspace(ctx, id, false)
}

// RefetchWorkspace forces revalidation of the current workspace,
// bypassing the cache. Collaborators call it after a membership
// change.
func (m *Manager) RefetchWorkspace(ctx context.Context) error {
	m.mu.RLock()
	id := m.workspaceID
	m.mu.RUnlock()

	if id == "" {
		return nil
	}
	return m.loadWorkspace(ctx, id, true)
}

func (m *Manager) loadWorkspace(ctx context.Context, id string, force bool) error {
	key := cache.WorkspaceKey(id)

	if !force {
		if data, ok := m.store.Get(ctx, key); ok {
			var ws Workspace
			if err := json.Unmarshal(data, &ws); err == nil {
				m.applyWorkspace(id, &ws, nil)
				return nil
			}
		}
	}

	m.mu.Lock()
	if m.workspaceID == id {
		m.workspaceFetching = true
	}
	m.mu.Unlock()

	_, err, _ := m.sf.Do(key, func() (any, error) {
		ws, err := m.fetchWorkspace(ctx, id)
		if err != nil {
			m.applyWorkspace(id, nil, err)

			// Workspace-scoped authorization errors arise even with a
			// valid token, e.g. the user was removed from the
			// workspace. The token stays in place; only explicit
			// logout and the pipeline clear it.
			if transport.IsUnauthorized(err) {
				m.inst.Unauthorized(ctx, "workspace")
				m.nav.Home()
			}
			return nil, err
		}

		m.applyWorkspace(id, ws, nil)
		if data, merr := json.Marshal(ws); merr == nil {
			m.store.Set(ctx, key, data, m.policy.EffectiveTTL(0))
		}
		return ws, nil
	})
	return err
}

// applyWorkspace records a fetch outcome, dropping it when the
// identifier has been superseded by a later SetWorkspaceID.
func (m *Manager) applyWorkspace(id string, ws *Workspace, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.workspaceID != id {
		return
	}

	m.workspaceFetching = false
	m.workspaceLoaded = true
	m.workspace = ws
	m.workspaceErr = err
}
