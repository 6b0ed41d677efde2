package middleware

import (
	"fmt"
	"net/http"

	"github.com/ferdiebergado/tokenkit/internal/pkg/message"
	"github.com/ferdiebergado/tokenkit/internal/pkg/web"
)

// CheckContentType rejects request bodies that are not plain application/json.
func CheckContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
		default:
			next.ServeHTTP(w, r)
			return
		}

		contentType := r.Header.Get(web.HeaderContentType)
		if contentType != web.MimeJSON {
			web.Fail(w, http.StatusUnsupportedMediaType, fmt.Errorf("invalid content-type: %q", contentType), message.InvalidInput, nil)
			return
		}

		next.ServeHTTP(w, r)
	})
}
