package user

import (
	"log/slog"
	"time"

	"github.com/ferdiebergado/tokenkit/internal/model"
)

type User struct {
	model.Model

	Email        string
	PasswordHash string
	VerifiedAt   *time.Time
}

func (u *User) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("id", u.ID),
		slog.String("email", u.Email),
	)
}
