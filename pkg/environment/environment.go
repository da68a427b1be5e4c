// Package environment builds and registers the runtime environment of the training job.
package environment

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"amlsubmit/models"
)

type Opts struct {
	Name          string
	Version       string
	PythonVersion string
	PipPackages   []string
	Channels      []string
	DockerEnabled bool
	BaseImage     string
}

type API interface {
	GetEnvironment(ctx context.Context, ws *models.Workspace, name, version string) (string, error)
	CreateEnvironment(ctx context.Context, ws *models.Workspace, env models.EnvironmentDescriptor) (string, error)
}

// Build returns the environment descriptor for opts. The pip list keeps the configured
// order and pins; only exact duplicates are dropped. Without an explicit version the
// descriptor is versioned by a digest of its contents.
func Build(opts *Opts) (models.EnvironmentDescriptor, error) {
	env := models.EnvironmentDescriptor{
		Name:          opts.Name,
		Version:       opts.Version,
		PythonVersion: opts.PythonVersion,
		PipPackages:   unique(opts.PipPackages),
		Channels:      unique(opts.Channels),
		DockerEnabled: opts.DockerEnabled,
		BaseImage:     opts.BaseImage,
	}

	if env.Name == "" {
		return env, errors.New("environment name must be set")
	}
	if env.PythonVersion != "" {
		env.CondaPackages = []string{"python=" + env.PythonVersion}
	}

	if env.Version == "" {
		digest, err := contentDigest(env)
		if err != nil {
			return env, err
		}
		env.Version = digest
	}

	return env, nil
}

func contentDigest(env models.EnvironmentDescriptor) (string, error) {
	conda, err := env.CondaFile()
	if err != nil {
		return "", err
	}

	h := sha256.New()
	h.Write([]byte(conda))
	h.Write([]byte{0})
	h.Write([]byte(env.BaseImage))
	return hex.EncodeToString(h.Sum(nil))[:16], nil
}

func unique(list []string) []string {
	seen := make(map[string]bool, len(list))
	out := make([]string, 0, len(list))
	for _, item := range list {
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}

// Register makes the environment version available in the workspace and returns its id.
// An existing version with the same name and version is reused.
func Register(ctx context.Context, api API, ws *models.Workspace, env models.EnvironmentDescriptor) (string, error) {
	id, err := api.GetEnvironment(ctx, ws, env.Name, env.Version)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return "", err
	}

	id, err = api.CreateEnvironment(ctx, ws, env)
	if err != nil {
		return "", fmt.Errorf("failed to register environment %s:%s: %w", env.Name, env.Version, err)
	}

	return id, nil
}
