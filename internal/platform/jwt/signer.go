package jwt

import (
	"errors"
	"net/http"
)

// Claims is the payload of a token: caller-supplied data plus the registered
// claims (iss, aud, iat, exp) added at sign time.
type Claims map[string]any

var (
	ErrMissingToken     = errors.New("jwt: missing token")
	ErrMalformedToken   = errors.New("jwt: malformed token")
	ErrInvalidSignature = errors.New("jwt: invalid signature")
	ErrTokenExpired     = errors.New("jwt: token expired")
	ErrClaimMismatch    = errors.New("jwt: issuer or audience mismatch")
	ErrReservedClaim    = errors.New("jwt: payload sets a reserved claim")
)

// Signer defines methods for issuing and checking tokens.
//
// Verify is the only method suitable for trust decisions. Decode skips the
// signature and claim checks and exists for inspection.
type Signer interface {
	Sign(payload Claims, rememberMe bool) (token string, err error)
	Verify(tokenString string) (Claims, error)
	Decode(tokenString string) (Claims, error)
	Extract(r *http.Request) string
}
