// Package middlewares contains middlewares
package middlewares

import (
	"net/http"
	"strings"

	"github.com/flitlabs/dispatch_tracker/internal/pkg/lib"
	"github.com/rs/zerolog/log"
)

// CheckContentIsJSON is a middleware that checks wether the application content is json
func CheckContentIsJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType := r.Header.Get("Content-Type")
		if !strings.HasPrefix(contentType, "application/json") {
			log.Error().Str("Content-Type", contentType).Msg("invalid content type provided")
			lib.JSONResponse(w, http.StatusUnsupportedMediaType, "only conent type of application/json is allowed")
			return
		}

		next.ServeHTTP(w, r)
	})
}
