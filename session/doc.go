// Package session composes identity, workspace membership, and
// permissions into one snapshot for the whole application.
//
// The identity and workspace fetches are independent asynchronous
// sources; either may resolve first, and consumers must tolerate
// either being momentarily absent. Permission checks fail closed until
// both are present. The manager also coordinates logout: one server
// call, identity cache eviction, token clear, navigation, and a full
// process reload, in that order.
package session
