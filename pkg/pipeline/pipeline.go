// Package pipeline runs the provisioning and submission stages in order.
package pipeline

import (
	"context"

	"amlsubmit/models"
	"amlsubmit/pkg/app"
	"amlsubmit/pkg/app/pretty_log"
	"amlsubmit/pkg/compute"
	"amlsubmit/pkg/dataset"
	"amlsubmit/pkg/environment"
	"amlsubmit/pkg/staging"
	"amlsubmit/pkg/submit"
	"amlsubmit/pkg/workspace"
)

// Platform is everything the pipeline needs from the cloud. *azure.Client implements it.
type Platform interface {
	workspace.API
	environment.API
	compute.API
	dataset.API
	submit.API
}

// Run provisions the workspace, environment and cluster for identity, stages the
// sources under root and submits the training run. It returns the submitted run.
func Run(ctx context.Context, identity *models.Identity, cfg *app.ConfigType, root string, platform Platform) (*models.RunHandle, error) {
	pretty_log.TaskGroup("Workspace")
	resolution, err := workspace.Resolve(ctx, platform, identity, models.WorkspaceDependencies{
		StorageAccountID: cfg.Azure.StorageAccountID,
		KeyVaultID:       cfg.Azure.KeyVaultID,
		TenantID:         cfg.Azure.TenantID,
	})
	if err != nil {
		return nil, err
	}
	ws := resolution.Workspace
	if ws.SubscriptionID == "" {
		ws.SubscriptionID = identity.SubscriptionID
	}
	pretty_log.TaskResultList([]string{ws.Name, ws.ResourceGroup, ws.Location, ws.SubscriptionID})

	pretty_log.TaskGroup("Staging")
	id := pretty_log.BeginTask("Assembling %s", cfg.Staging.Dir)
	staged, err := staging.Assemble(root, &staging.Opts{
		Dir:     cfg.Staging.Dir,
		Globs:   cfg.Staging.Globs,
		Subdirs: cfg.Staging.Subdirs,
	})
	if err != nil {
		pretty_log.FailTask(id)
		return nil, err
	}
	pretty_log.CompleteTask(id)
	pretty_log.TaskResult("Staged %d files, digest %s", len(staged.Files), staged.Digest)

	pretty_log.TaskGroup("Environment")
	env, err := environment.Build(&environment.Opts{
		Name:          cfg.Environment.Name,
		Version:       cfg.Environment.Version,
		PythonVersion: cfg.Environment.PythonVersion,
		PipPackages:   cfg.Environment.PipPackages,
		Channels:      cfg.Environment.Channels,
		DockerEnabled: cfg.Environment.DockerEnabled,
		BaseImage:     cfg.Environment.BaseImage,
	})
	if err != nil {
		return nil, err
	}

	id = pretty_log.BeginTask("Registering environment %s:%s", env.Name, env.Version)
	envID, err := environment.Register(ctx, platform, ws, env)
	if err != nil {
		pretty_log.FailTask(id)
		return nil, err
	}
	pretty_log.CompleteTask(id)

	pretty_log.TaskGroup("Compute")
	resolver := &compute.Resolver{
		API: platform,
		Network: models.NetworkSpec{
			VirtualNetwork: cfg.Cluster.Network.VirtualNetwork,
			AddressSpace:   cfg.Cluster.Network.AddressSpace,
			Subnet:         cfg.Cluster.Network.Subnet,
			AddressPrefix:  cfg.Cluster.Network.AddressPrefix,
		},
		Timeout:      cfg.Cluster.ReadyTimeout,
		PollInterval: cfg.Cluster.PollInterval,
	}
	cluster, err := resolver.Resolve(ctx, ws, cfg.Cluster.Name, models.ComputeSpec{
		VMSize:              cfg.Cluster.VMSize,
		VMPriority:          cfg.Cluster.VMPriority,
		MinNodes:            cfg.Cluster.MinNodes,
		MaxNodes:            cfg.Cluster.MaxNodes,
		IdleBeforeScaleDown: cfg.Cluster.IdleBeforeScaleDown,
	})
	if err != nil {
		return nil, err
	}
	pretty_log.TaskResult("Cluster %s %s", cluster.Target.Name, cluster.Kind)

	pretty_log.TaskGroup("Dataset")
	ref, ds, err := dataset.Bind(ctx, platform, ws, cfg.Dataset.InputName, cfg.Dataset.Path, cfg.Dataset.Mode)
	if err != nil {
		return nil, err
	}
	pretty_log.TaskResult("Input %s -> %s", ref.InputName, ref.URI())

	pretty_log.TaskGroup("Run")
	arguments := append([]string{}, cfg.Job.Arguments...)
	if cfg.Job.DatasetFlag != "" {
		arguments = append(arguments, cfg.Job.DatasetFlag)
	}
	arguments = append(arguments, ref.Placeholder())

	submitter := &submit.Submitter{
		API:               platform,
		Datastore:         ds,
		UploadParallelism: cfg.Job.UploadParallelism,
	}

	id = pretty_log.BeginTask("Submitting %s to experiment %s", cfg.Job.Script, cfg.Job.Experiment)
	run, err := submitter.Submit(ctx, ws, &models.Submission{
		SourceDirectory: staged.Dir,
		Script:          cfg.Job.Script,
		Arguments:       arguments,
		ComputeTarget:   cluster.Target,
		Environment:     &env,
		Experiment:      cfg.Job.Experiment,
		Inputs:          []models.DatasetRef{*ref},
		EnvironmentID:   envID,
	}, staged)
	if err != nil {
		pretty_log.FailTask(id)
		return nil, err
	}
	pretty_log.CompleteTask(id)

	pretty_log.TaskResult("Run %s %s", run.Name, run.Status)
	if run.StudioURL != "" {
		pretty_log.TaskResult("%s", run.StudioURL)
	}

	if cfg.Job.Wait {
		run, err = submit.WaitForCompletion(ctx, platform, ws, run, cfg.Cluster.PollInterval, cfg.Job.Timeout)
		if err != nil {
			return run, err
		}
		pretty_log.TaskResult("Run %s finished: %s", run.Name, run.Status)
	}

	return run, nil
}
