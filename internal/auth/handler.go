package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ferdiebergado/tokenkit/internal/pkg/message"
	"github.com/ferdiebergado/tokenkit/internal/pkg/web"
	"github.com/ferdiebergado/tokenkit/internal/platform/jwt"
)

// AuthService is the login use case consumed by the handler.
type AuthService interface {
	LoginUser(ctx context.Context, params LoginUserParams) (string, error)
}

type Handler struct {
	svc    AuthService
	signer jwt.Signer
	authn  *Authenticator
}

func NewHandler(svc AuthService, signer jwt.Signer, authn *Authenticator) *Handler {
	return &Handler{
		svc:    svc,
		signer: signer,
		authn:  authn,
	}
}

type LoginRequest struct {
	Email      string `json:"email,omitempty" validate:"required,email"`
	Password   string `json:"password,omitempty" validate:"required,max=72"`
	RememberMe bool   `json:"remember_me,omitempty"`
}

func (r LoginRequest) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("email", r.Email),
		slog.String("password", "*"),
		slog.Bool("remember_me", r.RememberMe),
	)
}

type LoginResponse struct {
	AccessToken string `json:"access_token,omitempty"`
	TokenType   string `json:"token_type,omitempty"`
}

// Login exchanges credentials for a bearer token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	params, err := web.ParamsFromContext[LoginRequest](r.Context())
	if err != nil {
		web.Fail(w, http.StatusBadRequest, err, message.InvalidInput, nil)
		return
	}

	token, err := h.svc.LoginUser(r.Context(), LoginUserParams{
		Email:      params.Email,
		Password:   params.Password,
		RememberMe: params.RememberMe,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidLogin), errors.Is(err, ErrUserNotVerified):
			web.Fail(w, http.StatusUnauthorized, err, message.InvalidUser, nil)
		default:
			web.Fail(w, http.StatusInternalServerError, err, "An unexpected error occurred.", nil)
		}
		return
	}

	msg := message.LoggedIn
	data := &LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
	}
	web.OK(w, http.StatusOK, &msg, data)
}

// Logout ends the session, if any. Tokens themselves stay valid until expiry.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.authn.Logout(w, r); err != nil {
		web.Fail(w, http.StatusInternalServerError, err, "An unexpected error occurred.", nil)
		return
	}

	msg := message.LoggedOut
	web.OK[any](w, http.StatusOK, &msg, nil)
}

type TokenResponse struct {
	Claims jwt.Claims `json:"claims,omitempty"`
}

// Token decodes the request's bearer token for inspection. The claims are not
// trusted; authorization decisions are made by the Authenticate middleware.
func (h *Handler) Token(w http.ResponseWriter, r *http.Request) {
	token := h.signer.Extract(r)
	if token == "" {
		web.Fail(w, http.StatusBadRequest, jwt.ErrMissingToken, message.InvalidInput, nil)
		return
	}

	claims, err := h.signer.Decode(token)
	if err != nil {
		web.Fail(w, http.StatusBadRequest, err, message.InvalidInput, nil)
		return
	}

	web.OK(w, http.StatusOK, nil, &TokenResponse{Claims: claims})
}
