// Package routes contains all the routes
package routes

import (
	"net/http"

	_lib "github.com/flitlabs/dispatch_tracker/internal/app/pkg/lib"
	"github.com/flitlabs/dispatch_tracker/internal/app/pkg/routes/index"
	"github.com/flitlabs/dispatch_tracker/internal/app/pkg/routes/markers"
	"github.com/flitlabs/dispatch_tracker/internal/app/pkg/routes/reservations"
	"github.com/flitlabs/dispatch_tracker/internal/app/pkg/routes/tracking"
	"github.com/flitlabs/dispatch_tracker/internal/pkg/connections"
	"github.com/flitlabs/dispatch_tracker/internal/pkg/env"
	"github.com/go-chi/chi/v5"
)

// Route interface consits methods that should be implmented by a specific route
type Route interface {
	Method() string
	Path() string
	Handler(http.ResponseWriter, *http.Request)
}

// RouteType identifies a top level route
type RouteType uint8

const (
	// RouteTypeView is the marker log replay route
	RouteTypeView RouteType = iota
)

// NewConfig is a config contaning all the top level routes
func NewConfig(e *env.Env, c *connections.C) map[RouteType]Route {
	return map[RouteType]Route{
		RouteTypeView: &View{
			E: e,
			C: c,
		},
	}
}

// Router mounts every route of the dispatch engine
func Router(e *env.Env, c *connections.C, a *_lib.Engine) http.Handler {
	r := chi.NewRouter()

	for _, route := range NewConfig(e, c) {
		r.Method(route.Method(), route.Path(), http.HandlerFunc(route.Handler))
	}

	index.Index(r, e, c)
	r.Mount("/grid", reservations.Router(e, c, a))
	r.Mount("/tracker", tracking.Router(e, c, a))
	r.Mount("/ws/markers", markers.Router(e, c, a))

	return r
}
