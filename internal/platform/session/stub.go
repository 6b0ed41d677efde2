package session

import (
	"context"
	"errors"
	"time"
)

type StubStore struct {
	PutFunc    func(ctx context.Context, id string, data []byte, ttl time.Duration) error
	GetFunc    func(ctx context.Context, id string) ([]byte, error)
	DeleteFunc func(ctx context.Context, id string) error
}

var _ Store = (*StubStore)(nil)

func (s *StubStore) Put(ctx context.Context, id string, data []byte, ttl time.Duration) error {
	if s.PutFunc == nil {
		return errors.New("Put() not implemented by stub")
	}
	return s.PutFunc(ctx, id, data, ttl)
}

func (s *StubStore) Get(ctx context.Context, id string) ([]byte, error) {
	if s.GetFunc == nil {
		return nil, errors.New("Get() not implemented by stub")
	}
	return s.GetFunc(ctx, id)
}

func (s *StubStore) Delete(ctx context.Context, id string) error {
	if s.DeleteFunc == nil {
		return errors.New("Delete() not implemented by stub")
	}
	return s.DeleteFunc(ctx, id)
}
