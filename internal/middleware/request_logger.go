package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	errorsx "github.com/ferdiebergado/tokenkit/internal/pkg/errors"
)

// LogRequest logs every request after it is served. It expects InjectWriter
// to run first; otherwise status and size are not reported.
func LogRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)

		attrs := []any{
			"user_agent", r.UserAgent(),
			"origin", r.Header.Get("Origin"),
			"ip", getIPAddress(r),
			"method", r.Method,
			"url", redactToken(r),
			"proto", r.Proto,
			"duration", time.Since(start),
		}

		if writer, ok := w.(*SafeResponseWriter); ok {
			attrs = append(attrs,
				slog.Int("status_code", writer.Status()),
				slog.Int("bytes", writer.BytesWritten()),
			)
		}

		if err := r.Context().Err(); errorsx.IsContextError(err) {
			slog.Warn("request ended early", append(attrs, "reason", err)...)
			return
		}

		slog.Info("incoming request", attrs...)
	})
}

// redactToken hides a bearer token passed in the query string.
func redactToken(r *http.Request) string {
	u := *r.URL
	q := u.Query()
	if q.Has("token") {
		q.Set("token", "REDACTED")
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// getIPAddress extracts the client's IP address from the request.
func getIPAddress(r *http.Request) string {
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}

	if forwardedFor := r.Header.Values("X-Forwarded-For"); len(forwardedFor) > 0 {
		ips := strings.Split(forwardedFor[0], ",")
		return strings.TrimSpace(ips[0])
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return ip
}
