package jwt

import (
	"net/http"
	"strings"
)

const (
	headerAuthorization = "Authorization"
	bearerScheme        = "bearer"
	tokenQueryParam     = "token"
)

// ExtractToken returns the bearer token from the Authorization header, falling
// back to the "token" query parameter. It returns "" when neither is present.
func ExtractToken(r *http.Request) string {
	scheme, value, ok := parseAuthHeader(r.Header.Get(headerAuthorization))
	if ok && strings.EqualFold(scheme, bearerScheme) {
		return value
	}

	return r.URL.Query().Get(tokenQueryParam)
}

// parseAuthHeader splits a "<scheme> <value>" header.
func parseAuthHeader(header string) (scheme, value string, ok bool) {
	fields := strings.Fields(header)
	if len(fields) < 2 {
		return "", "", false
	}
	return fields[0], fields[1], true
}
