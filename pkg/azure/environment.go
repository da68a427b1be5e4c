package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/machinelearning/armmachinelearning/v4"

	"amlsubmit/models"
)

// GetEnvironment returns the ARM id of the environment version
func (c *Client) GetEnvironment(ctx context.Context, ws *models.Workspace, name, version string) (string, error) {
	resp, err := c.EnvironmentVersionsClient.Get(ctx, ws.ResourceGroup, ws.Name, name, version, nil)
	if err != nil {
		return "", notFound(err, "environment", name+":"+version)
	}

	return deref(resp.ID), nil
}

// CreateEnvironment registers the descriptor as a new environment version and returns its ARM id
func (c *Client) CreateEnvironment(ctx context.Context, ws *models.Workspace, env models.EnvironmentDescriptor) (string, error) {
	condaFile, err := env.CondaFile()
	if err != nil {
		return "", err
	}

	if !env.DockerEnabled || env.BaseImage == "" {
		return "", fmt.Errorf("environment %s: a container base image is required", env.Name)
	}

	resp, err := c.EnvironmentVersionsClient.CreateOrUpdate(ctx, ws.ResourceGroup, ws.Name, env.Name, env.Version, armmachinelearning.EnvironmentVersion{
		Properties: &armmachinelearning.EnvironmentVersionProperties{
			Image:     to.Ptr(env.BaseImage),
			CondaFile: to.Ptr(condaFile),
			OSType:    to.Ptr(armmachinelearning.OperatingSystemTypeLinux),
			Tags: map[string]*string{
				"python": to.Ptr(env.PythonVersion),
			},
		},
	}, nil)
	if err != nil {
		return "", err
	}

	id := deref(resp.ID)
	if id == "" {
		id = fmt.Sprintf("%s/environments/%s/versions/%s", ws.ID, env.Name, env.Version)
	}

	return id, nil
}
