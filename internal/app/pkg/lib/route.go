package lib

import (
	"context"
	"net/http"

	"github.com/flitlabs/dispatch_tracker/internal/app/pkg/grid"
	"github.com/flitlabs/dispatch_tracker/internal/app/pkg/sinks"
	"github.com/flitlabs/dispatch_tracker/internal/app/pkg/tokens"
	"github.com/flitlabs/dispatch_tracker/internal/app/pkg/tracker"
	"github.com/flitlabs/dispatch_tracker/internal/pkg/connections"
	"github.com/flitlabs/dispatch_tracker/internal/pkg/enums"
	"github.com/flitlabs/dispatch_tracker/internal/pkg/env"
)

// PreferenceStore persists the operator preferences
type PreferenceStore interface {
	SaveMode(ctx context.Context, mode tracker.Mode) error
	SaveFilters(ctx context.Context, filters grid.FilterState) error
}

// Engine contains the dispatch engine the routes drive
type Engine struct {
	Grid        *grid.Grid
	Store       grid.ReservationStore
	Tracker     *tracker.Tracker
	Hubs        map[enums.Surface]*sinks.Hub
	Preferences PreferenceStore
	Admin       *tokens.AdminToken

	// Export saves the visible grid and returns the name of the stored object
	Export func(ctx context.Context, view grid.View) (string, error)
	// Log mirrors operator relevant events to the log drain
	Log func(data interface{})
}

// Drain sends the event to the log drain in the background
func (a *Engine) Drain(data interface{}) {
	if a.Log == nil {
		return
	}
	go a.Log(data)
}

// WrapHandler is used to simplify route handlers
func WrapHandler(
	h func(http.ResponseWriter, *http.Request, *env.Env, *connections.C, *Engine),
	e *env.Env,
	c *connections.C,
	a *Engine,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h(w, r, e, c, a)
	}
}
