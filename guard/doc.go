// Package guard gates renderable units on resolved permissions.
//
// Authorization denial is not an error: a guarded unit simply does not
// render. Decisions are never made against a still-loading session
// snapshot, so protected surfaces cannot flash an unauthorized state
// during initial hydration. Both guard forms evaluate through the same
// permission resolution path as every other check in the client.
package guard
