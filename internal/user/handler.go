package user

import (
	"net/http"
	"time"

	contextx "github.com/ferdiebergado/tokenkit/internal/context"
	"github.com/ferdiebergado/tokenkit/internal/pkg/message"
	"github.com/ferdiebergado/tokenkit/internal/pkg/web"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

type UserData struct {
	ID         string     `json:"id,omitempty"`
	Email      string     `json:"email,omitempty"`
	VerifiedAt *time.Time `json:"verified_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at,omitempty"`
	UpdatedAt  time.Time  `json:"updated_at,omitempty"`
}

// Me responds with the user attached by the authenticate middleware.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	u, err := contextx.UserFromContext[*User](r.Context())
	if err != nil {
		web.Fail(w, http.StatusUnauthorized, err, message.Unauthenticated, nil)
		return
	}

	data := &UserData{
		ID:         u.ID,
		Email:      u.Email,
		VerifiedAt: u.VerifiedAt,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
	web.OK(w, http.StatusOK, nil, data)
}
