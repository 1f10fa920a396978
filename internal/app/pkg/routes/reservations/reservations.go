// Package reservations contains the routes of the dispatch grid
package reservations

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

// Router contains the dispatch grid router
func Router(e *env.Env, c *connections.C, a *_lib.Engine) http.Handler {
	r := chi.NewRouter()

	r.Get("/", _lib.WrapHandler(view, e, c, a))
	r.Post("/sort/{column}", _lib.WrapHandler(sort, e, c, a))
	r.Post("/export", _lib.WrapHandler(export, e, c, a))

	r.Group(func(r chi.Router) {
		r.Use(middlewares.CheckContentIsJSON)
		r.Put("/filters", _lib.WrapHandler(filters, e, c, a))
		r.Put("/search", _lib.WrapHandler(search, e, c, a))
	})

	return r
}
