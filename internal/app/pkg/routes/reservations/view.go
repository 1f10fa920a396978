package reservations

import (
	"fmt"
	"net/http"
	"time"

	"github.com/flitlabs/dispatch_tracker/internal/app/pkg/grid"
	_lib "github.com/flitlabs/dispatch_tracker/internal/app/pkg/lib"
	"github.com/flitlabs/dispatch_tracker/internal/pkg/connections"
	"github.com/flitlabs/dispatch_tracker/internal/pkg/env"
	errs "github.com/flitlabs/dispatch_tracker/internal/pkg/errors"
	"github.com/flitlabs/dispatch_tracker/internal/pkg/lib"
	"github.com/rs/zerolog/log"
)

const dateLayout = "2006-01-02"

// query reads the pickup date range, a request without one asks for the most recent reservations
func query(r *http.Request) (grid.Query, error) {
	from, to := r.URL.Query().Get("from"), r.URL.Query().Get("to")
	if from == "" && to == "" {
		return grid.Query{}, nil
	}
	if from == "" || to == "" {
		return grid.Query{}, fmt.Errorf("both from and to are required")
	}

	start, err := time.Parse(dateLayout, from)
	if err != nil {
		return grid.Query{}, err
	}
	end, err := time.Parse(dateLayout, to)
	if err != nil {
		return grid.Query{}, err
	}
	if end.Before(start) {
		return grid.Query{}, fmt.Errorf("the range ends before it starts")
	}

	return grid.Query{From: start, To: end}, nil
}

// view loads the reservations when the range changes and returns the visible grid
func view(w http.ResponseWriter, r *http.Request, _ *env.Env, _ *connections.C, a *_lib.Engine) {
	q, err := query(r)
	if err != nil {
		log.Error().Err(err).Str("query", r.URL.RawQuery).Msg("invalid reservation range")
		lib.JSONResponse(w, http.StatusBadRequest, errs.ErrBadRequest.Error())
		return
	}

	loaded := false
	if r.URL.Query().Get("refresh") == "true" || !a.Grid.Loaded(q) {
		err := a.Grid.Load(r.Context(), a.Store, q)
		if err != nil {
			log.Error().Err(err).Msg("failed to reload the reservations")
			a.Drain(fmt.Sprintf("failed to reload the reservations : %v", err))
			w.Header().Set("Warning", `199 - "showing the previously loaded reservations"`)
		}
		loaded = err == nil
	}

	res := a.Grid.View()
	// only the load that fell back reports it
	if loaded && res.Degraded {
		a.Drain(res.Reason)
	}

	lib.JSONResponseWInterface(w, http.StatusOK, res)
}
