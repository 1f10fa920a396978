// Package services is a package that is used to manage various services
package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/bytedance/sonic"
	"github.com/flitlabs/dispatch_tracker/internal/app/pkg/grid"
	"github.com/flitlabs/dispatch_tracker/internal/pkg/connections"
	"github.com/flitlabs/dispatch_tracker/internal/pkg/env"
	"github.com/rs/zerolog/log"
)

// Snapshot is the exported state of the dispatch grid
type Snapshot struct {
	ExportedAt time.Time `json:"exported_at"`
	grid.View
}

// ObjectName is the name of the object a snapshot taken at the given time is stored under
func ObjectName(now time.Time) string {
	return fmt.Sprintf("grid/%s.json", now.UTC().Format("20060102T150405Z"))
}

// WriteSnapshot writes the view as JSON and closes the writer
func WriteSnapshot(w io.WriteCloser, view grid.View, now time.Time) error {
	data, err := sonic.Marshal(Snapshot{
		ExportedAt: now.UTC(),
		View:       view,
	})
	if err != nil {
		w.Close()
		return err
	}

	if _, err := w.Write(data); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// ExportGrid is a function that is used to save the visible grid to the google cloud storage
func ExportGrid(ctx context.Context, e *env.Env, c *connections.C, view grid.View) (string, error) {
	err := c.InitStorage(ctx, e)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize the storage client")
		return "", err
	}

	now := time.Now()
	name := ObjectName(now)
	w := c.S.Bucket(e.BucketName).Object(name).NewWriter(ctx)
	w.ContentType = "application/json"

	if err := WriteSnapshot(w, view, now); err != nil {
		log.Error().
			Err(err).
			Str("object", name).
			Msg("failed to write the grid to the google cloud storage")
		return "", err
	}

	return name, nil
}
