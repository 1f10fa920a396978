package middlewares

import (
	"context"
	"net/http"
	"strings"

	"github.com/flitlabs/dispatch_tracker/internal/app/pkg/tokens"
	errs "github.com/flitlabs/dispatch_tracker/internal/pkg/errors"
	"github.com/flitlabs/dispatch_tracker/internal/pkg/lib"
	"github.com/rs/zerolog/log"
)

// AdminContext contains the admin context
type AdminContext string

// AdminContextKey is the context key that is used to identify the operator in the context
const AdminContextKey AdminContext = "operator_id"

// IsAdmin is a middleware that is used to check wether the request carries a valid admin token
func IsAdmin(at *tokens.AdminToken) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			str, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || str == "" {
				lib.JSONResponse(w, http.StatusUnauthorized, errs.ErrUnauthorized.Error())
				return
			}

			isValid, token := at.Validate(str)
			if !isValid {
				lib.JSONResponse(w, http.StatusUnauthorized, errs.ErrUnauthorized.Error())
				return
			}

			operator, err := at.Get(token)
			if err != nil {
				log.Error().Err(err).Msg("failed to get the operator from the admin token")
				lib.JSONResponse(w, http.StatusUnauthorized, errs.ErrUnauthorized.Error())
				return
			}

			ctx := context.WithValue(r.Context(), AdminContextKey, operator)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
