package jwt

import (
	"errors"
	"net/http"
)

type StubSigner struct {
	SignFunc    func(payload Claims, rememberMe bool) (string, error)
	VerifyFunc  func(tokenString string) (Claims, error)
	DecodeFunc  func(tokenString string) (Claims, error)
	ExtractFunc func(r *http.Request) string
}

var _ Signer = (*StubSigner)(nil)

func (s *StubSigner) Sign(payload Claims, rememberMe bool) (string, error) {
	if s.SignFunc == nil {
		return "", errors.New("Sign() not implemented by stub")
	}
	return s.SignFunc(payload, rememberMe)
}

func (s *StubSigner) Verify(tokenString string) (Claims, error) {
	if s.VerifyFunc == nil {
		return nil, errors.New("Verify() not implemented by stub")
	}
	return s.VerifyFunc(tokenString)
}

func (s *StubSigner) Decode(tokenString string) (Claims, error) {
	if s.DecodeFunc == nil {
		return nil, errors.New("Decode() not implemented by stub")
	}
	return s.DecodeFunc(tokenString)
}

// Extract falls back to ExtractToken when ExtractFunc is not set.
func (s *StubSigner) Extract(r *http.Request) string {
	if s.ExtractFunc == nil {
		return ExtractToken(r)
	}
	return s.ExtractFunc(r)
}
