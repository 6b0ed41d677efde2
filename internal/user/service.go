package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ferdiebergado/tokenkit/internal/platform/jwt"
	"github.com/google/uuid"
)

// IDClaim is the token claim that carries the user id.
const IDClaim = "id"

// Repository is the interface for user lookups.
type Repository interface {
	Find(ctx context.Context, userID string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) FindUser(ctx context.Context, userID string) (*User, error) {
	u, err := s.repo.Find(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user %s: %w", userID, err)
	}
	return u, nil
}

func (s *Service) FindUserByEmail(ctx context.Context, email string) (*User, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return u, nil
}

// FetchUser resolves verified token claims to a user. A token whose id claim
// is missing or not a uuid, or that names a user that no longer exists,
// yields no user and no error.
func (s *Service) FetchUser(ctx context.Context, claims jwt.Claims) (any, error) {
	userID, ok := idFromClaims(claims)
	if !ok {
		slog.Warn("token has no usable id claim")
		return nil, nil
	}

	u, err := s.repo.Find(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			slog.Warn("token refers to an unknown user", "user_id", userID)
			return nil, nil
		}
		return nil, fmt.Errorf("fetch user %s: %w", userID, err)
	}

	return u, nil
}

// idFromClaims returns the id claim if it is a uuid, the type of users.id.
// Anything else could never match a row and must not reach the database.
func idFromClaims(claims jwt.Claims) (string, bool) {
	id, ok := claims[IDClaim].(string)
	if !ok {
		return "", false
	}

	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}
