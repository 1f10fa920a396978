package tracking

import (
	"fmt"
	"net/http"

	"github.com/bytedance/sonic"
	_lib "github.com/flitlabs/dispatch_tracker/internal/app/pkg/lib"
	"github.com/flitlabs/dispatch_tracker/internal/app/pkg/middlewares"
	"github.com/flitlabs/dispatch_tracker/internal/app/pkg/tracker"
	"github.com/flitlabs/dispatch_tracker/internal/pkg/connections"
	"github.com/flitlabs/dispatch_tracker/internal/pkg/env"
	errs "github.com/flitlabs/dispatch_tracker/internal/pkg/errors"
	"github.com/flitlabs/dispatch_tracker/internal/pkg/lib"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// positions returns the positions and the notice of the active mode
func positions(w http.ResponseWriter, _ *http.Request, _ *env.Env, _ *connections.C, a *_lib.Engine) {
	lib.JSONResponseWInterface(w, http.StatusOK, map[string]any{
		"mode":      a.Tracker.Mode(),
		"positions": a.Tracker.Positions(),
		"notice":    a.Tracker.Notice(),
	})
}

// highlight elevates the marker of the driver assigned to the reservation
func highlight(w http.ResponseWriter, r *http.Request, _ *env.Env, _ *connections.C, a *_lib.Engine) {
	confirmation := chi.URLParam(r, "confirmation")

	row, ok := a.Grid.Find(confirmation)
	if !ok {
		lib.JSONResponse(w, http.StatusNotFound, errs.ErrReservationNotFound.Error())
		return
	}

	highlighted := a.Tracker.Highlight(row.DriverID)
	lib.JSONResponseWInterface(w, http.StatusOK, map[string]any{
		"confirmation": row.Key(),
		"driver_id":    row.DriverID,
		"highlighted":  highlighted,
	})
}

// mode switches the source of the positions and persists it for the next start
func mode(w http.ResponseWriter, r *http.Request, _ *env.Env, _ *connections.C, a *_lib.Engine) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	defer r.Body.Close()

	var reqBody struct {
		Mode string `json:"mode" validate:"required,oneof=simulated live"`
	}
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		lib.JSONResponse(w, http.StatusBadRequest, errs.ErrBadRequest.Error())
		return
	}
	if err := v.Struct(reqBody); err != nil {
		lib.JSONResponse(w, http.StatusBadRequest, errs.ErrBadRequest.Error())
		return
	}

	next, _ := tracker.ParseMode(reqBody.Mode)
	previous := a.Tracker.Mode()
	a.Tracker.SetMode(next)

	if a.Preferences != nil {
		if err := a.Preferences.SaveMode(r.Context(), next); err != nil {
			log.Error().Err(err).Msg("failed to save the tracker mode preference")
		}
	}
	if previous != next {
		a.Drain(fmt.Sprintf("tracker mode switched from %s to %s by %v", previous, next, r.Context().Value(middlewares.AdminContextKey)))
	}

	lib.JSONResponseWInterface(w, http.StatusOK, map[string]any{
		"mode":   a.Tracker.Mode(),
		"notice": a.Tracker.Notice(),
	})
}
