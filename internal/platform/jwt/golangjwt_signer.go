package jwt

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"net/http"
	"time"

	"github.com/ferdiebergado/tokenkit/internal/config"
	"github.com/golang-jwt/jwt/v5"
)

var reservedClaims = []string{"iss", "aud", "exp"}

// golangJWTSigner implements the Signer interface using the golang-jwt library.
type golangJWTSigner struct {
	method      jwt.SigningMethod
	key         []byte
	issuer      string
	audience    string
	ttl         time.Duration
	rememberTTL time.Duration
	now         func() time.Time
}

var _ Signer = (*golangJWTSigner)(nil)

type Option func(*golangJWTSigner)

// WithClock replaces time.Now for issuing and validating tokens.
func WithClock(now func() time.Time) Option {
	return func(s *golangJWTSigner) {
		s.now = now
	}
}

// NewGolangJWTSigner creates an HMAC signer from the JWT config and the signing key.
func NewGolangJWTSigner(cfg *config.JWT, key string, opts ...Option) (Signer, error) {
	if key == "" {
		return nil, errors.New("jwt: signing key is empty")
	}

	method, ok := jwt.GetSigningMethod(cfg.Algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("jwt: unsupported signing algorithm %q", cfg.Algorithm)
	}

	if cfg.TTL.Duration <= 0 || cfg.RememberTTL.Duration <= 0 {
		return nil, fmt.Errorf("jwt: invalid ttl %v or remember ttl %v", cfg.TTL.Duration, cfg.RememberTTL.Duration)
	}

	s := &golangJWTSigner{
		method:      method,
		key:         []byte(key),
		issuer:      cfg.Issuer,
		audience:    cfg.Audience,
		ttl:         cfg.TTL.Duration,
		rememberTTL: cfg.RememberTTL.Duration,
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Sign adds the configured issuer and audience to a copy of the payload and
// signs it. The token expires after the remember ttl when rememberMe is set,
// otherwise after the regular ttl, counted from the payload's iat if it has one.
func (s *golangJWTSigner) Sign(payload Claims, rememberMe bool) (string, error) {
	for _, name := range reservedClaims {
		if _, ok := payload[name]; ok {
			return "", fmt.Errorf("%w: %s", ErrReservedClaim, name)
		}
	}

	ttl := s.ttl
	if rememberMe {
		ttl = s.rememberTTL
	}

	claims := make(jwt.MapClaims, len(payload)+len(reservedClaims)+1)
	maps.Copy(claims, payload)

	issuedAt, ok := unixClaim(claims["iat"])
	if !ok {
		issuedAt = s.now().Unix()
		claims["iat"] = issuedAt
	}
	claims["exp"] = time.Unix(issuedAt, 0).Add(ttl).Unix()
	if s.issuer != "" {
		claims["iss"] = s.issuer
	}
	if s.audience != "" {
		claims["aud"] = s.audience
	}

	token := jwt.NewWithClaims(s.method, claims)
	signedToken, err := token.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signedToken, nil
}

// Verify checks the signature, issuer, audience and expiry of the token and
// returns its claims. An empty token fails with ErrMissingToken.
func (s *golangJWTSigner) Verify(tokenString string) (Claims, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		options = append(options, jwt.WithIssuer(s.issuer))
	}
	if s.audience != "" {
		options = append(options, jwt.WithAudience(s.audience))
	}

	token, err := jwt.NewParser(options...).ParseWithClaims(tokenString, jwt.MapClaims{}, func(_ *jwt.Token) (any, error) {
		return s.key, nil
	})
	if err != nil {
		return nil, classify(err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: unknown claims type %T", ErrMalformedToken, token.Claims)
	}

	return Claims(claims), nil
}

// Decode returns the claims without checking the signature or any claim.
func (s *golangJWTSigner) Decode(tokenString string) (Claims, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("%w: unknown claims type %T", ErrMalformedToken, token.Claims)
	}

	return Claims(claims), nil
}

func (s *golangJWTSigner) Extract(r *http.Request) string {
	return ExtractToken(r)
}

// unixClaim reads a numeric date claim as whole seconds.
func unixClaim(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	default:
		return 0, false
	}
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: %w", ErrMalformedToken, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %w", ErrTokenExpired, err)
	case errors.Is(err, jwt.ErrTokenInvalidIssuer), errors.Is(err, jwt.ErrTokenInvalidAudience):
		return fmt.Errorf("%w: %w", ErrClaimMismatch, err)
	default:
		return fmt.Errorf("verify token: %w", err)
	}
}
