// Package markers contains the websocket routes of the map surfaces
package markers

import (
	"net/http"

	_lib "github.com/flitlabs/dispatch_tracker/internal/app/pkg/lib"
	"github.com/flitlabs/dispatch_tracker/internal/pkg/connections"
	"github.com/flitlabs/dispatch_tracker/internal/pkg/enums"
	"github.com/flitlabs/dispatch_tracker/internal/pkg/env"
	errs "github.com/flitlabs/dispatch_tracker/internal/pkg/errors"
	"github.com/flitlabs/dispatch_tracker/internal/pkg/lib"
	"github.com/go-chi/chi/v5"
)

// Router contains the map surface router
func Router(e *env.Env, c *connections.C, a *_lib.Engine) http.Handler {
	r := chi.NewRouter()

	r.Get("/{surface}", _lib.WrapHandler(subscribe, e, c, a))
	r.Get("/{surface}/snapshot", _lib.WrapHandler(snapshot, e, c, a))

	return r
}

// subscribe upgrades the connection and streams the marker commands of the surface
func subscribe(w http.ResponseWriter, r *http.Request, _ *env.Env, _ *connections.C, a *_lib.Engine) {
	hub, ok := a.Hubs[enums.Surface(chi.URLParam(r, "surface"))]
	if !ok {
		lib.JSONResponse(w, http.StatusNotFound, errs.ErrUnknownSurface.Error())
		return
	}

	hub.Handler(w, r)
}

// snapshot returns the markers that are currently drawn on the surface
func snapshot(w http.ResponseWriter, r *http.Request, _ *env.Env, _ *connections.C, a *_lib.Engine) {
	hub, ok := a.Hubs[enums.Surface(chi.URLParam(r, "surface"))]
	if !ok {
		lib.JSONResponse(w, http.StatusNotFound, errs.ErrUnknownSurface.Error())
		return
	}

	lib.JSONResponseWInterface(w, http.StatusOK, map[string]any{
		"surface": hub.Surface(),
		"markers": hub.Markers(),
		"notice":  hub.Notice(),
	})
}
