// Package submit uploads the code snapshot and submits the training run.
package submit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"amlsubmit/models"
	"amlsubmit/pkg/app/pretty_log"
	"amlsubmit/utils"
)

type API interface {
	GetCode(ctx context.Context, ws *models.Workspace, name string) (string, error)
	UploadCode(ctx context.Context, ws *models.Workspace, ds *models.Datastore, staging *models.StagingResult, parallelism int) (string, error)
	SubmitJob(ctx context.Context, ws *models.Workspace, name string, sub *models.Submission) (*models.RunHandle, error)
	GetJob(ctx context.Context, ws *models.Workspace, name string) (*models.RunHandle, error)
}

type Submitter struct {
	API API
	// Datastore receives the code snapshot
	Datastore         *models.Datastore
	UploadParallelism int
}

// Snapshot returns the id of the code asset holding the staging directory.
// Snapshots are named by their digest, so an unchanged staging directory is not uploaded again.
func (s *Submitter) Snapshot(ctx context.Context, ws *models.Workspace, staging *models.StagingResult) (string, error) {
	id, err := s.API.GetCode(ctx, ws, staging.Digest)
	if err == nil {
		pretty_log.TaskResult("Reusing snapshot %s", staging.Digest)
		return id, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return "", err
	}

	if s.Datastore == nil {
		return "", errors.New("no datastore to upload the snapshot to")
	}

	id, err = s.API.UploadCode(ctx, ws, s.Datastore, staging, s.UploadParallelism)
	if err != nil {
		return "", fmt.Errorf("failed to upload snapshot of %s: %w", staging.Dir, err)
	}

	return id, nil
}

// Submit submits the run exactly once under the submission's experiment
func (s *Submitter) Submit(ctx context.Context, ws *models.Workspace, sub *models.Submission, staging *models.StagingResult) (*models.RunHandle, error) {
	err := sub.Validate()
	if err != nil {
		return nil, err
	}

	if sub.CodeID == "" {
		sub.CodeID, err = s.Snapshot(ctx, ws, staging)
		if err != nil {
			return nil, err
		}
	}

	run, err := s.API.SubmitJob(ctx, ws, utils.RandomName(sub.Experiment), sub)
	if err != nil {
		return nil, fmt.Errorf("failed to submit run to experiment %s: %w", sub.Experiment, err)
	}
	if run.Experiment == "" {
		run.Experiment = sub.Experiment
	}

	return run, nil
}

// WaitForCompletion polls the run until it reaches a terminal status, timeout passes or ctx ends.
// The last observed handle is returned together with the timeout error.
func WaitForCompletion(ctx context.Context, api API, ws *models.Workspace, run *models.RunHandle, interval, timeout time.Duration) (*models.RunHandle, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if interval <= 0 {
		interval = 30 * time.Second
	}

	status := run.Status
	for !run.Done() {
		select {
		case <-ctx.Done():
			return run, fmt.Errorf("run %s still %s: %w", run.Name, run.Status, ctx.Err())
		case <-time.After(interval):
		}

		current, err := api.GetJob(ctx, ws, run.Name)
		if err != nil {
			return run, err
		}
		run = current

		if run.Status != status {
			pretty_log.TaskResult("Run %s: %s", run.Name, run.Status)
			status = run.Status
		}
	}

	return run, nil
}
