// Package cache stores fetch results for the session core.
//
// Entries are keyed by stable string keys: the identity fetch under
// "authUser" and each workspace fetch under "workspace:<id>". Keying
// workspace results by identifier keeps a stale result for an
// abandoned workspace from leaking into the current session snapshot.
// The session core owns invalidation of these keys on logout and on
// workspace authorization errors; collaborator-owned keys are outside
// its responsibility.
package cache
