package web

import (
	"errors"
	"net/http"
	"slices"
	"time"
)

// NewSecureCookie returns an HttpOnly, Secure, SameSite=Strict cookie.
// A negative maxAge expires the cookie immediately.
func NewSecureCookie(name, value string, maxAge time.Duration) *http.Cookie {
	age := int(maxAge.Seconds())
	if maxAge < 0 {
		age = -1
	}

	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   age,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
}

func FindCookie(cookies []*http.Cookie, name string) (*http.Cookie, error) {
	index := slices.IndexFunc(cookies, func(c *http.Cookie) bool {
		return c.Name == name
	})

	if index < 0 {
		return nil, errors.New("cookie not set")
	}

	return cookies[index], nil
}
