package user

import (
	"context"
	"errors"
)

type StubRepo struct {
	FindFunc        func(ctx context.Context, userID string) (*User, error)
	FindByEmailFunc func(ctx context.Context, email string) (*User, error)
}

var _ Repository = &StubRepo{}

func (r *StubRepo) Find(ctx context.Context, userID string) (*User, error) {
	if r.FindFunc == nil {
		return nil, errors.New("Find() not implemented by stub")
	}
	return r.FindFunc(ctx, userID)
}

func (r *StubRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	if r.FindByEmailFunc == nil {
		return nil, errors.New("FindByEmail() not implemented by stub")
	}
	return r.FindByEmailFunc(ctx, email)
}
