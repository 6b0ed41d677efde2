package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/ferdiebergado/tokenkit/internal/config"
	contextx "github.com/ferdiebergado/tokenkit/internal/context"
	errorsx "github.com/ferdiebergado/tokenkit/internal/pkg/errors"
	"github.com/ferdiebergado/tokenkit/internal/pkg/message"
	"github.com/ferdiebergado/tokenkit/internal/pkg/web"
	"github.com/ferdiebergado/tokenkit/internal/platform/jwt"
	"github.com/ferdiebergado/tokenkit/internal/platform/session"
)

// AuthenticateOptions configures a single Authenticate middleware.
type AuthenticateOptions struct {
	// Session persists the authenticated claims and sets a session cookie.
	Session bool
}

// Authenticator exposes a Strategy to the request pipeline.
type Authenticator struct {
	strategy   Strategy
	sessions   session.Store
	cookieName string
	maxAge     time.Duration
}

type Option func(*Authenticator)

// WithSessions enables the Session middleware and session persistence.
func WithSessions(store session.Store, cfg *config.Session) Option {
	return func(a *Authenticator) {
		a.sessions = store
		a.cookieName = cfg.CookieName
		a.maxAge = cfg.MaxAge.Duration
	}
}

func NewAuthenticator(strategy Strategy, opts ...Option) *Authenticator {
	a := &Authenticator{strategy: strategy}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Initialize installs the per-request auth state. It must run before Session
// and Authenticate.
func (a *Authenticator) Initialize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, _ := contextx.NewContextWithAuthState(r.Context())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Session restores the user of a previously persisted session, if any.
// Without a session store it does nothing.
func (a *Authenticator) Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		restorer, ok := a.strategy.(SessionStrategy)
		if a.sessions == nil || !ok {
			next.ServeHTTP(w, r)
			return
		}

		cookie, err := r.Cookie(a.cookieName)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		data, err := a.sessions.Get(ctx, cookie.Value)
		if err != nil {
			if errors.Is(err, session.ErrNotFound) {
				http.SetCookie(w, web.NewSecureCookie(a.cookieName, "", -1))
				next.ServeHTTP(w, r)
				return
			}
			web.Fail(w, http.StatusInternalServerError, err, message.LookupFailed, nil)
			return
		}

		var claims jwt.Claims
		if err := json.Unmarshal(data, &claims); err != nil {
			web.Fail(w, http.StatusInternalServerError, fmt.Errorf("decode session %s: %w", cookie.Value, err), message.LookupFailed, nil)
			return
		}

		identity, err := restorer.Restore(ctx, claims)
		if err != nil {
			if errors.Is(err, ErrUserLookup) {
				a.failLookup(w, err)
				return
			}

			slog.Info("Discarding session without a user.", "reason", err)
			a.discard(w, r, cookie.Value)
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(contextx.NewContextWithUser(ctx, identity.User)))
	})
}

// Authenticate runs the strategy. Unauthenticated requests get a 401; a failed
// user lookup gets a 500 so clients can tell a bad token from a server fault.
// A request whose user was already restored by Session skips the strategy.
// Sessions are keyed by token, so clients that never send the cookie back
// keep refreshing a single session per token.
func (a *Authenticator) Authenticate(opts AuthenticateOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if state, ok := contextx.AuthStateFromContext(r.Context()); ok && state.IsAuthenticated() {
				next.ServeHTTP(w, r)
				return
			}

			identity, err := a.strategy.Authenticate(r)
			if err != nil {
				if errors.Is(err, ErrUserLookup) {
					a.failLookup(w, err)
					return
				}
				web.Fail(w, http.StatusUnauthorized, err, message.Unauthenticated, nil)
				return
			}

			if opts.Session && a.sessions != nil && identity.Token != "" {
				if err := a.persist(w, r, identity); err != nil {
					web.Fail(w, http.StatusInternalServerError, err, message.LookupFailed, nil)
					return
				}
			}

			ctx := contextx.NewContextWithUser(r.Context(), identity.User)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Logout deletes the request's session, if any, and expires its cookie.
func (a *Authenticator) Logout(w http.ResponseWriter, r *http.Request) error {
	if a.sessions == nil {
		return nil
	}

	cookie, err := r.Cookie(a.cookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	http.SetCookie(w, web.NewSecureCookie(a.cookieName, "", -1))
	if err := a.sessions.Delete(r.Context(), cookie.Value); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

func (a *Authenticator) persist(w http.ResponseWriter, r *http.Request, identity *Identity) error {
	data, err := json.Marshal(identity.Claims)
	if err != nil {
		return fmt.Errorf("encode session claims: %w", err)
	}

	id := session.IDFor(identity.Token)
	if err := a.sessions.Put(r.Context(), id, data, a.maxAge); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	http.SetCookie(w, web.NewSecureCookie(a.cookieName, id, a.maxAge))
	return nil
}

func (a *Authenticator) discard(w http.ResponseWriter, r *http.Request, id string) {
	http.SetCookie(w, web.NewSecureCookie(a.cookieName, "", -1))
	if err := a.sessions.Delete(r.Context(), id); err != nil {
		slog.Warn("Failed to delete session.", "reason", err)
	}
}

func (a *Authenticator) failLookup(w http.ResponseWriter, err error) {
	if errorsx.IsContextError(err) {
		web.Fail(w, http.StatusRequestTimeout, err, "Request cancelled or timeout", nil)
		return
	}
	web.Fail(w, http.StatusInternalServerError, err, message.LookupFailed, nil)
}
