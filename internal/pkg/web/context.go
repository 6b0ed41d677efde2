package web

import (
	"context"
	"errors"
	"fmt"
)

var ErrNoParams = errors.New("web: no request payload in context")

type paramsKey struct{}

// NewContextWithParams stores a decoded request payload for later middleware
// and the handler.
//
//nolint:ireturn // returning context.Context is intentional
func NewContextWithParams(ctx context.Context, params any) context.Context {
	return context.WithValue(ctx, paramsKey{}, params)
}

// ParamsFromContext returns the stored payload if it is a T.
//
//nolint:ireturn // generic getter
func ParamsFromContext[T any](ctx context.Context) (T, error) {
	if params, ok := ctx.Value(paramsKey{}).(T); ok {
		return params, nil
	}

	var zero T
	return zero, fmt.Errorf("%w: want %T", ErrNoParams, zero)
}
