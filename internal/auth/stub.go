package auth

import (
	"context"
	"errors"
	"net/http"
)

type StubStrategy struct {
	AuthenticateFunc func(r *http.Request) (*Identity, error)
}

var _ Strategy = (*StubStrategy)(nil)

func (s *StubStrategy) Authenticate(r *http.Request) (*Identity, error) {
	if s.AuthenticateFunc == nil {
		return nil, errors.New("Authenticate() not implemented by stub")
	}
	return s.AuthenticateFunc(r)
}

type StubService struct {
	LoginUserFunc func(ctx context.Context, params LoginUserParams) (string, error)
}

var _ AuthService = (*StubService)(nil)

func (s *StubService) LoginUser(ctx context.Context, params LoginUserParams) (string, error) {
	if s.LoginUserFunc == nil {
		return "", errors.New("LoginUser() not implemented by stub")
	}
	return s.LoginUserFunc(ctx, params)
}
