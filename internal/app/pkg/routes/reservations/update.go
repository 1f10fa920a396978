package reservations

import (
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/flitlabs/dispatch_tracker/internal/app/pkg/grid"
	_lib "github.com/flitlabs/dispatch_tracker/internal/app/pkg/lib"
	"github.com/flitlabs/dispatch_tracker/internal/pkg/connections"
	"github.com/flitlabs/dispatch_tracker/internal/pkg/env"
	errs "github.com/flitlabs/dispatch_tracker/internal/pkg/errors"
	"github.com/flitlabs/dispatch_tracker/internal/pkg/lib"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// filters replaces the filter toggles and persists them for the next start
func filters(w http.ResponseWriter, r *http.Request, _ *env.Env, _ *connections.C, a *_lib.Engine) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	defer r.Body.Close()

	var reqBody grid.FilterState
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		lib.JSONResponse(w, http.StatusBadRequest, errs.ErrBadRequest.Error())
		return
	}

	a.Grid.SetFilters(reqBody)
	if a.Preferences != nil {
		if err := a.Preferences.SaveFilters(r.Context(), reqBody); err != nil {
			log.Error().Err(err).Msg("failed to save the filter preferences")
		}
	}

	lib.JSONResponseWInterface(w, http.StatusOK, a.Grid.View())
}

// search replaces the search term, an empty term clears it
func search(w http.ResponseWriter, r *http.Request, _ *env.Env, _ *connections.C, a *_lib.Engine) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	defer r.Body.Close()

	var reqBody struct {
		Term string `json:"term" validate:"max=256"`
	}
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		lib.JSONResponse(w, http.StatusBadRequest, errs.ErrBadRequest.Error())
		return
	}
	if err := v.Struct(reqBody); err != nil {
		lib.JSONResponse(w, http.StatusBadRequest, errs.ErrBadRequest.Error())
		return
	}

	a.Grid.SetSearch(reqBody.Term)
	lib.JSONResponseWInterface(w, http.StatusOK, a.Grid.View())
}

// sort applies a click on a column header
func sort(w http.ResponseWriter, r *http.Request, _ *env.Env, _ *connections.C, a *_lib.Engine) {
	column := grid.Column(chi.URLParam(r, "column"))

	if _, err := a.Grid.SelectColumn(column); err != nil {
		lib.JSONResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	lib.JSONResponseWInterface(w, http.StatusOK, a.Grid.View())
}

// export saves the visible grid to the bucket
func export(w http.ResponseWriter, r *http.Request, _ *env.Env, _ *connections.C, a *_lib.Engine) {
	if a.Export == nil {
		lib.JSONResponse(w, http.StatusServiceUnavailable, errs.ErrServer.Error())
		return
	}

	name, err := a.Export(r.Context(), a.Grid.View())
	if err != nil {
		lib.JSONResponse(w, http.StatusInternalServerError, errs.ErrServer.Error())
		return
	}

	a.Drain("exported the dispatch grid to " + name)
	lib.JSONResponseWInterface(w, http.StatusCreated, map[string]any{
		"object": name,
	})
}
