package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Descriptor is a diagnostic view of a token. It is produced without
// signature verification and must never be used for authorization or
// proactive expiry decisions; it exists for logging and support
// tooling only.
type Descriptor struct {
	// Subject is the sub claim, when the token is a parseable JWT.
	Subject string

	// ExpiresAt is the exp claim, zero when absent.
	ExpiresAt time.Time
}

// Describe peeks at the claims of a JWT-shaped token. Opaque tokens
// and parse failures yield an empty descriptor rather than an error:
// the client treats every token as opaque and a descriptor is purely
// best-effort.
func Describe(tok string) Descriptor {
	if tok == "" {
		return Descriptor{}
	}

	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(tok, claims); err != nil {
		return Descriptor{}
	}

	var d Descriptor
	if sub, err := claims.GetSubject(); err == nil {
		d.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		d.ExpiresAt = exp.Time
	}
	return d
}
