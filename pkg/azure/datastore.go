package azure

import (
	"context"
	"errors"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/machinelearning/armmachinelearning/v4"

	"amlsubmit/models"
)

// DefaultDatastore returns the blob datastore flagged as the workspace default
func (c *Client) DefaultDatastore(ctx context.Context, ws *models.Workspace) (*models.Datastore, error) {
	pager := c.DatastoresClient.NewListPager(ws.ResourceGroup, ws.Name, &armmachinelearning.DatastoresClientListOptions{
		IsDefault: to.Ptr(true),
	})

	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}

		for _, ds := range page.Value {
			if ds == nil {
				continue
			}

			blob, ok := ds.Properties.(*armmachinelearning.AzureBlobDatastore)
			if !ok {
				continue
			}

			return &models.Datastore{
				Name:          deref(ds.Name),
				AccountName:   deref(blob.AccountName),
				ContainerName: deref(blob.ContainerName),
				Endpoint:      deref(blob.Endpoint),
			}, nil
		}
	}

	return nil, errors.New("workspace " + ws.Name + " has no default blob datastore")
}
