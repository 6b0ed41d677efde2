package auth

import (
	"context"
	"fmt"
	"net/http"
	"reflect"

	"github.com/ferdiebergado/tokenkit/internal/platform/jwt"
)

// Identity is the result of a successful authentication. Token is empty when
// the identity was restored from a session.
type Identity struct {
	User   any
	Claims jwt.Claims
	Token  string
}

// Strategy authenticates a request. Errors wrap ErrUnauthenticated when the
// credentials are missing or invalid and ErrUserLookup when they were valid
// but the user could not be loaded.
type Strategy interface {
	Authenticate(r *http.Request) (*Identity, error)
}

// UserFetcher loads the user described by verified claims. Returning a nil
// user with a nil error rejects the request as unauthenticated; a nil pointer
// of any type counts as no user.
type UserFetcher interface {
	FetchUser(ctx context.Context, claims jwt.Claims) (any, error)
}

type UserFetcherFunc func(ctx context.Context, claims jwt.Claims) (any, error)

func (f UserFetcherFunc) FetchUser(ctx context.Context, claims jwt.Claims) (any, error) {
	return f(ctx, claims)
}

type JWTStrategy struct {
	signer  jwt.Signer
	fetcher UserFetcher
}

var _ Strategy = (*JWTStrategy)(nil)

func NewJWTStrategy(signer jwt.Signer, fetcher UserFetcher) *JWTStrategy {
	return &JWTStrategy{
		signer:  signer,
		fetcher: fetcher,
	}
}

func (s *JWTStrategy) Authenticate(r *http.Request) (*Identity, error) {
	token := s.signer.Extract(r)
	if token == "" {
		return nil, fmt.Errorf("%w: %w", ErrUnauthenticated, jwt.ErrMissingToken)
	}

	claims, err := s.signer.Verify(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}

	identity, err := s.resolve(r.Context(), claims)
	if err != nil {
		return nil, err
	}

	identity.Token = token
	return identity, nil
}

func (s *JWTStrategy) resolve(ctx context.Context, claims jwt.Claims) (*Identity, error) {
	u, err := s.fetcher.FetchUser(ctx, claims)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUserLookup, err)
	}

	if isNil(u) {
		return nil, fmt.Errorf("%w: no user for token", ErrUnauthenticated)
	}

	return &Identity{User: u, Claims: claims}, nil
}

// SessionStrategy is implemented by strategies that can rebuild an identity
// from claims saved in a session.
type SessionStrategy interface {
	Restore(ctx context.Context, claims jwt.Claims) (*Identity, error)
}

var _ SessionStrategy = (*JWTStrategy)(nil)

// Restore loads the user for claims that were verified when the session was created.
func (s *JWTStrategy) Restore(ctx context.Context, claims jwt.Claims) (*Identity, error) {
	return s.resolve(ctx, claims)
}

// isNil also catches typed nils such as (*user.User)(nil) stored in an any.
func isNil(u any) bool {
	if u == nil {
		return true
	}

	v := reflect.ValueOf(u)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}
