// Package tracking contains the routes of the position tracker
package tracking

import (
	"net/http"

	_lib "github.com/flitlabs/dispatch_tracker/internal/app/pkg/lib"
	"github.com/flitlabs/dispatch_tracker/internal/app/pkg/middlewares"
	"github.com/flitlabs/dispatch_tracker/internal/pkg/connections"
	"github.com/flitlabs/dispatch_tracker/internal/pkg/env"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

const maxRequestBodySize = 1 << 20

var v = validator.New()

// Router contains the tracker router
func Router(e *env.Env, c *connections.C, a *_lib.Engine) http.Handler {
	r := chi.NewRouter()

	r.Get("/positions", _lib.WrapHandler(positions, e, c, a))
	r.Post("/highlight/{confirmation}", _lib.WrapHandler(highlight, e, c, a))

	r.Group(func(r chi.Router) {
		r.Use(middlewares.IsAdmin(a.Admin))
		r.Use(middlewares.CheckContentIsJSON)
		r.Put("/mode", _lib.WrapHandler(mode, e, c, a))
	})

	return r
}
