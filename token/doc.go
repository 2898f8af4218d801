// Package token holds the session's bearer credential.
//
// The store is the sole owner of the token: the request pipeline reads
// it on every outbound call, explicit login writes it, and logout or a
// global unauthorized response clears it. The token is opaque to the
// client; there is no proactive expiry logic (expiry is detected
// reactively through request failures).
package token
