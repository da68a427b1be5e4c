package azure

import (
	"context"
	"errors"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/machinelearning/armmachinelearning/v4"

	"amlsubmit/models"
)

// SubmitJob creates a command job from the submission. Job names are unique, so
// calling it twice for the same name fails instead of resubmitting.
func (c *Client) SubmitJob(ctx context.Context, ws *models.Workspace, name string, sub *models.Submission) (*models.RunHandle, error) {
	if sub.CodeID == "" || sub.EnvironmentID == "" {
		return nil, errors.New("submission needs a registered code snapshot and environment")
	}

	inputs := make(map[string]armmachinelearning.JobInputClassification, len(sub.Inputs))
	for _, in := range sub.Inputs {
		inputs[in.InputName] = &armmachinelearning.URIFolderJobInput{
			JobInputType: to.Ptr(armmachinelearning.JobInputTypeURIFolder),
			URI:          to.Ptr(in.URI()),
			Mode:         to.Ptr(armmachinelearning.InputDeliveryMode(in.Mode)),
		}
	}

	displayName := sub.DisplayName
	if displayName == "" {
		displayName = name
	}

	resp, err := c.JobsClient.CreateOrUpdate(ctx, ws.ResourceGroup, ws.Name, name, armmachinelearning.JobBase{
		Properties: &armmachinelearning.CommandJob{
			JobType:        to.Ptr(armmachinelearning.JobTypeCommand),
			Command:        to.Ptr(sub.Command()),
			CodeID:         to.Ptr(sub.CodeID),
			EnvironmentID:  to.Ptr(sub.EnvironmentID),
			ComputeID:      to.Ptr(sub.ComputeTarget.ID),
			ExperimentName: to.Ptr(sub.Experiment),
			DisplayName:    to.Ptr(displayName),
			Inputs:         inputs,
		},
	}, nil)
	if err != nil {
		return nil, err
	}

	return toRunHandle(&resp.JobBase, name), nil
}

func (c *Client) GetJob(ctx context.Context, ws *models.Workspace, name string) (*models.RunHandle, error) {
	resp, err := c.JobsClient.Get(ctx, ws.ResourceGroup, ws.Name, name, nil)
	if err != nil {
		return nil, notFound(err, "job", name)
	}

	return toRunHandle(&resp.JobBase, name), nil
}

func toRunHandle(job *armmachinelearning.JobBase, name string) *models.RunHandle {
	run := &models.RunHandle{
		Name: name,
		ID:   deref(job.ID),
	}

	if job.Properties == nil {
		return run
	}

	props := job.Properties.GetJobBaseProperties()
	run.Experiment = deref(props.ExperimentName)
	run.Status = string(deref(props.Status))
	if studio, ok := props.Services["Studio"]; ok && studio != nil {
		run.StudioURL = deref(studio.Endpoint)
	}

	return run
}
