// Package dataset binds a folder of the workspace default datastore as a named job input.
package dataset

import (
	"context"
	"errors"
	"fmt"

	"amlsubmit/models"
)

type API interface {
	DefaultDatastore(ctx context.Context, ws *models.Workspace) (*models.Datastore, error)
}

// Bind references path on the default datastore as input name. Nothing is transferred;
// the folder is mounted by the remote executor when the run starts.
func Bind(ctx context.Context, api API, ws *models.Workspace, name, path, mode string) (*models.DatasetRef, *models.Datastore, error) {
	if name == "" || path == "" {
		return nil, nil, errors.New("dataset input name and path must be set")
	}

	ds, err := api.DefaultDatastore(ctx, ws)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get default datastore: %w", err)
	}

	if mode == "" {
		mode = models.MountModeReadOnly
	}

	return &models.DatasetRef{
		InputName: name,
		Datastore: ds.Name,
		Path:      path,
		Mode:      mode,
	}, ds, nil
}
