package user_test

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/ferdiebergado/tokenkit/internal/model"
	"github.com/ferdiebergado/tokenkit/internal/platform/jwt"
	"github.com/ferdiebergado/tokenkit/internal/user"
)

func TestService_FetchUser(t *testing.T) {
	t.Parallel()

	const (
		aliceID   = "f47ac10b-58cc-4372-a567-0e02b2c3d479"
		brokenID  = "3d594650-3436-11e5-bf21-0800200c9a66"
		unknownID = "9b2e4a53-4b0f-4d7e-8f52-6a2f5d3c1e10"
	)

	alice := &user.User{Model: model.Model{ID: aliceID}, Email: "alice@example.com"}
	errDB := errors.New("connection reset")

	var queried []string
	repo := &user.StubRepo{
		FindFunc: func(_ context.Context, userID string) (*user.User, error) {
			queried = append(queried, userID)
			switch userID {
			case aliceID:
				return alice, nil
			case brokenID:
				return nil, errDB
			default:
				return nil, user.ErrNotFound
			}
		},
	}

	tests := []struct {
		name     string
		claims   jwt.Claims
		wantUser any
		wantErr  error
	}{
		{"uuid id", jwt.Claims{"id": aliceID}, alice, nil},
		{"unknown user", jwt.Claims{"id": unknownID}, nil, nil},
		{"numeric id", jwt.Claims{"id": float64(42)}, nil, nil},
		{"non-uuid string id", jwt.Claims{"id": "42"}, nil, nil},
		{"free-form id", jwt.Claims{"id": "alice' OR 1=1"}, nil, nil},
		{"missing id claim", jwt.Claims{"sub": aliceID}, nil, nil},
		{"empty id claim", jwt.Claims{"id": ""}, nil, nil},
		{"repository failure", jwt.Claims{"id": brokenID}, nil, errDB},
	}

	svc := user.NewService(repo)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.FetchUser(context.Background(), tt.claims)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("svc.FetchUser(%v) = %v, want: %v", tt.claims, err, tt.wantErr)
			}

			if tt.wantUser == nil {
				if got != nil {
					t.Errorf("svc.FetchUser(%v) = %v, want: nil", tt.claims, got)
				}
				return
			}

			if got != tt.wantUser {
				t.Errorf("svc.FetchUser(%v) = %v, want: %v", tt.claims, got, tt.wantUser)
			}
		})
	}

	// Only well-formed ids reach the repository.
	wantQueried := []string{aliceID, unknownID, brokenID}
	if !slices.Equal(queried, wantQueried) {
		t.Errorf("repository queried with %q, want: %q", queried, wantQueried)
	}
}

func TestService_FindUserByEmail(t *testing.T) {
	t.Parallel()

	repo := &user.StubRepo{
		FindByEmailFunc: func(_ context.Context, email string) (*user.User, error) {
			if email == "alice@example.com" {
				return &user.User{Email: email}, nil
			}
			return nil, user.ErrNotFound
		},
	}
	svc := user.NewService(repo)

	u, err := svc.FindUserByEmail(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if u.Email != "alice@example.com" {
		t.Errorf("u.Email = %q, want: %q", u.Email, "alice@example.com")
	}

	if _, err := svc.FindUserByEmail(context.Background(), "bob@example.com"); !errors.Is(err, user.ErrNotFound) {
		t.Errorf("svc.FindUserByEmail(bob) = %v, want: %v", err, user.ErrNotFound)
	}
}
