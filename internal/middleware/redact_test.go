package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ferdiebergado/tokenkit/internal/middleware"
)

func TestRedactToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		target string
		want   string
	}{
		{"token in query", "/auth/token?token=eyJhbGciOi.payload.sig", "/auth/token?token=REDACTED"},
		{"token among other params", "/users/me?token=abc&b=c", "/users/me?b=c&token=REDACTED"},
		{"no token", "/users/me?page=2", "/users/me?page=2"},
		{"no query", "/auth/login", "/auth/login"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, tt.target, http.NoBody)
			rawQuery := req.URL.RawQuery

			if got := middleware.RedactToken(req); got != tt.want {
				t.Errorf("RedactToken() = %q, want: %q", got, tt.want)
			}

			if req.URL.RawQuery != rawQuery {
				t.Errorf("req.URL.RawQuery = %q, want it unchanged: %q", req.URL.RawQuery, rawQuery)
			}
		})
	}
}
