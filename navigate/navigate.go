package navigate

import "sync"

// Navigator performs navigation on behalf of the session core.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Home must be a full top-level navigation that discards all
//   in-memory caches and state; To is an in-app route change.
type Navigator interface {
	// Home navigates to the unauthenticated entry point ("/").
	Home()

	// To performs an in-app route change to the given path.
	To(path string)
}

// Reloader forces a full process reload, flushing every module-level
// and global cache.
type Reloader interface {
	Reload()
}

// Funcs adapts plain functions to the Navigator interface. Nil
// functions are no-ops.
type Funcs struct {
	HomeFunc func()
	ToFunc   func(path string)
}

// Home calls HomeFunc if set.
func (f Funcs) Home() {
	if f.HomeFunc != nil {
		f.HomeFunc()
	}
}

// To calls ToFunc if set.
func (f Funcs) To(path string) {
	if f.ToFunc != nil {
		f.ToFunc(path)
	}
}

// ReloadFunc adapts a plain function to the Reloader interface.
type ReloadFunc func()

// Reload calls the function.
func (f ReloadFunc) Reload() { f() }

// Once wraps a Navigator so that only the first Home call has
// observable effect. Concurrent unauthorized responses may each
// request a redirect; after the first, the application is already
// navigating away and further calls are harmless no-ops.
type Once struct {
	next Navigator
	home sync.Once
}

// NewOnce wraps next with single-effective-Home semantics.
func NewOnce(next Navigator) *Once {
	return &Once{next: next}
}

// Home forwards to the wrapped navigator at most once.
func (o *Once) Home() {
	o.home.Do(o.next.Home)
}

// To forwards unconditionally; in-app route changes are not fatal and
// need no dedup.
func (o *Once) To(path string) {
	o.next.To(path)
}

// Recorder is a Navigator and Reloader for tests.
type Recorder struct {
	mu      sync.Mutex
	homes   int
	reloads int
	paths   []string
}

// Home records a full navigation.
func (r *Recorder) Home() {
	r.mu.Lock()
	r.homes++
	r.mu.Unlock()
}

// To records an in-app route change.
func (r *Recorder) To(path string) {
	r.mu.Lock()
	r.paths = append(r.paths, path)
	r.mu.Unlock()
}

// Reload records a process reload.
func (r *Recorder) Reload() {
	r.mu.Lock()
	r.reloads++
	r.mu.Unlock()
}

// Homes returns the number of Home calls observed.
func (r *Recorder) Homes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.homes
}

// Reloads returns the number of Reload calls observed.
func (r *Recorder) Reloads() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reloads
}

// Paths returns the in-app route changes observed, in order.
func (r *Recorder) Paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}

// Ensure implementations satisfy the interfaces
var (
	_ Navigator = Funcs{}
	_ Navigator = (*Once)(nil)
	_ Navigator = (*Recorder)(nil)
	_ Reloader  = (*Recorder)(nil)
	_ Reloader  = ReloadFunc(nil)
)
