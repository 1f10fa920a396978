// Package index contains routes that does not belong to a collection
package index

import (
	"github.com/flitlabs/dispatch_tracker/internal/pkg/connections"
	"github.com/flitlabs/dispatch_tracker/internal/pkg/env"
	"github.com/go-chi/chi/v5"
)

// Index is a route group that contains all the routes that do not have a collection
func Index(r chi.Router, _ *env.Env, _ *connections.C) {
	r.Get("/health", health)
}
