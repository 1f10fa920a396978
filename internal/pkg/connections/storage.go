package connections

import (
	"context"

	"cloud.google.com/go/storage"
	"github.com/flitlabs/dispatch_tracker/internal/pkg/env"
	"github.com/flitlabs/dispatch_tracker/internal/pkg/lib"
	"google.golang.org/api/option"
)

// InitStorage is a function that is used to initialize the Google cloud storage, concurrent
// callers share a single client
func (c *C) InitStorage(ctx context.Context, e *env.Env) error {
	c.storageMu.Lock()
	defer c.storageMu.Unlock()

	if c.S != nil {
		return nil
	}

	key, err := lib.Base64URLDecode(e.GcloudAPIKey)
	if err != nil {
		return err
	}

	client, err := storage.NewClient(ctx, option.WithCredentialsJSON(key))
	if err != nil {
		return err
	}

	c.S = client
	return nil
}
