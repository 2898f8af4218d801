// Package navigate is the boundary between the session core and the
// host application's navigation.
//
// Home is a full top-level navigation to the unauthenticated entry
// point: the host must discard all in-memory state, not perform an
// in-app route change. To is an ordinary in-app route change. Reload
// restarts the process-level state entirely; logout uses it as a
// deliberately coarse cache-invalidation strategy.
package navigate
