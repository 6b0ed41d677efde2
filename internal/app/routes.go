package app

import (
	"github.com/ferdiebergado/tokenkit/internal/auth"
	"github.com/ferdiebergado/tokenkit/internal/config"
	"github.com/ferdiebergado/tokenkit/internal/middleware"
	"github.com/ferdiebergado/tokenkit/internal/platform/router"
	"github.com/ferdiebergado/tokenkit/internal/platform/validation"
	"github.com/ferdiebergado/tokenkit/internal/user"
)

func mountUserRoutes(r router.Router, handler *user.Handler, authn *auth.Authenticator, cfg *config.Auth) {
	r.Get("/users/me", handler.Me, authn.Authenticate(auth.AuthenticateOptions{Session: cfg.Session}))
}

func mountAuthRoutes(r router.Router, handler *auth.Handler, authn *auth.Authenticator, validator validation.Validator, maxBodySize int64) {
	r.Post("/auth/login", handler.Login,
		middleware.CheckContentType,
		middleware.DecodePayload[auth.LoginRequest](maxBodySize),
		middleware.ValidateInput[auth.LoginRequest](validator))
	r.Post("/auth/logout", handler.Logout)
	r.Get("/auth/token", handler.Token, authn.Authenticate(auth.AuthenticateOptions{}))
}
