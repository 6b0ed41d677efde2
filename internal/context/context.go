package context

import (
	"context"
	"errors"
	"fmt"
)

type ctxKey int

const authStateCtxKey ctxKey = iota + 1

var ErrNoUser = errors.New("no authenticated user in context")

// AuthState holds the authenticated user of a single request. It is owned by
// the request's handler chain and never shared across requests.
type AuthState struct {
	user any
}

func (s *AuthState) User() any {
	return s.user
}

func (s *AuthState) IsAuthenticated() bool {
	return s.user != nil
}

// NewContextWithAuthState returns a context carrying an empty AuthState.
//
//nolint:ireturn // returning context.Context is intentional
func NewContextWithAuthState(baseCtx context.Context) (context.Context, *AuthState) {
	state := &AuthState{}
	return context.WithValue(baseCtx, authStateCtxKey, state), state
}

func AuthStateFromContext(ctx context.Context) (*AuthState, bool) {
	state, ok := ctx.Value(authStateCtxKey).(*AuthState)
	return state, ok
}

// NewContextWithUser records user in the request's AuthState, installing one
// if the context has none.
//
//nolint:ireturn // returning context.Context is intentional
func NewContextWithUser(baseCtx context.Context, user any) context.Context {
	ctx := baseCtx
	state, ok := AuthStateFromContext(ctx)
	if !ok {
		ctx, state = NewContextWithAuthState(ctx)
	}
	state.user = user
	return ctx
}

// nolint: ireturn //This is a generic function.
func UserFromContext[T any](ctx context.Context) (T, error) {
	var zero T

	state, ok := AuthStateFromContext(ctx)
	if !ok || state.user == nil {
		return zero, ErrNoUser
	}

	u, ok := state.user.(T)
	if !ok {
		return zero, fmt.Errorf("user in context is a %T, not a %T", state.user, zero)
	}
	return u, nil
}
