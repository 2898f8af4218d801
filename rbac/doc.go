// Package rbac maps workspace membership roles to permission sets.
//
// The role-to-permission mapping is static configuration. Resolution is
// deterministic and fails closed: a caller who is not a member of the
// workspace resolves to the empty set. Every permission gate in the
// client evaluates through this package so authorization logic cannot
// diverge between call sites.
package rbac
