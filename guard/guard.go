package guard

import (
	"context"

	"github.com/teamsync/sessioncore/navigate"
	"github.com/teamsync/sessioncore/rbac"
	"github.com/teamsync/sessioncore/session"
)

// View is a renderable unit: it produces its rendered output or an
// error. Guards wrap views; they never render anything of their own
// beyond a loading indicator.
type View func(ctx context.Context) (string, error)

// LoadingIndicator is what the wrapping guard renders while the
// session snapshot is still loading.
const LoadingIndicator = "Loading..."

// Decision is the outcome of evaluating a permission against the
// current snapshot.
type Decision int

const (
	// DecisionLoading means the snapshot is not ready; no deny or
	// redirect may be derived from it.
	DecisionLoading Decision = iota

	// DecisionAllow means the current user holds the permission.
	DecisionAllow

	// DecisionDeny means the permission is absent. A routine state,
	// not an error.
	DecisionDeny
)

func (d Decision) String() string {
	switch d {
	case DecisionLoading:
		return "loading"
	case DecisionAllow:
		return "allow"
	case DecisionDeny:
		return "deny"
	default:
		return "unknown"
	}
}

// Guard evaluates permissions against the session manager's snapshot.
type Guard struct {
	mgr *session.Manager
	nav navigate.Navigator
}

// New creates a guard bound to the given session manager. The
// navigator receives the in-app redirect issued by wrapped views on
// denial.
func New(mgr *session.Manager, nav navigate.Navigator) *Guard {
	return &Guard{mgr: mgr, nav: nav}
}

// FromContext creates a guard from the manager attached to the
// context, failing fast outside the provider scope.
func FromContext(ctx context.Context, nav navigate.Navigator) (*Guard, error) {
	mgr, err := session.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	return New(mgr, nav), nil
}

// Decide evaluates one permission against the current snapshot.
func (g *Guard) Decide(p rbac.Permission) Decision {
	snap := g.mgr.Snapshot()
	if snap.IsLoading {
		return DecisionLoading
	}
	if snap.User == nil || !snap.HasPermission(p) {
		return DecisionDeny
	}
	return DecisionAllow
}

// Render is the declarative guard form: the view renders only when the
// permission is held. Loading and denial both render nothing, and
// denial triggers no navigation; the protected surface simply does not
// appear.
func (g *Guard) Render(ctx context.Context, p rbac.Permission, view View) (string, error) {
	if g.Decide(p) != DecisionAllow {
		return "", nil
	}
	return view(ctx)
}

// WithPermission is the wrapping guard form: it decorates an entire
// renderable unit. While the snapshot is loading it renders a loading
// indicator. Once loading completes, denial renders nothing and
// navigates to the current workspace; only an allowed evaluation
// reaches the wrapped view.
func (g *Guard) WithPermission(view View, p rbac.Permission) View {
	return func(ctx context.Context) (string, error) {
		switch g.Decide(p) {
		case DecisionLoading:
			return LoadingIndicator, nil
		case DecisionDeny:
			g.nav.To(workspacePath(g.mgr.Snapshot().Workspace))
			return "", nil
		default:
			return view(ctx)
		}
	}
}

// workspacePath builds the in-app redirect target for a denial.
func workspacePath(ws *session.Workspace) string {
	if ws == nil {
		return "/workspace/"
	}
	return "/workspace/" + ws.ID
}
