package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/ferdiebergado/tokenkit/internal/platform/hash"
	"github.com/ferdiebergado/tokenkit/internal/platform/jwt"
	"github.com/ferdiebergado/tokenkit/internal/user"
)

// UserFinder is the part of the user service used for logins.
type UserFinder interface {
	FindUserByEmail(ctx context.Context, email string) (*user.User, error)
}

type LoginUserParams struct {
	Email      string
	Password   string
	RememberMe bool
}

type Service struct {
	users  UserFinder
	hasher hash.Hasher
	signer jwt.Signer
}

func NewService(users UserFinder, hasher hash.Hasher, signer jwt.Signer) *Service {
	return &Service{
		users:  users,
		hasher: hasher,
		signer: signer,
	}
}

// LoginUser checks the credentials and returns a signed access token.
func (s *Service) LoginUser(ctx context.Context, params LoginUserParams) (string, error) {
	u, err := s.users.FindUserByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return "", fmt.Errorf("login %s: %w", params.Email, ErrInvalidLogin)
		}
		return "", fmt.Errorf("login %s: %w", params.Email, err)
	}

	if u.VerifiedAt == nil {
		return "", fmt.Errorf("login %s: %w", params.Email, ErrUserNotVerified)
	}

	ok, err := s.hasher.Verify(params.Password, u.PasswordHash)
	if err != nil {
		return "", fmt.Errorf("verify password: %w", err)
	}

	if !ok {
		return "", fmt.Errorf("login %s: %w", params.Email, ErrInvalidLogin)
	}

	claims := jwt.Claims{
		user.IDClaim: u.ID,
		"email":      u.Email,
	}

	token, err := s.signer.Sign(claims, params.RememberMe)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}

	return token, nil
}
