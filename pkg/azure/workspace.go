package azure

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/machinelearning/armmachinelearning/v4"

	"amlsubmit/models"
)

func (c *Client) GetWorkspace(ctx context.Context, name, resourceGroup string) (*models.Workspace, error) {
	resp, err := c.WorkspacesClient.Get(ctx, resourceGroup, name, nil)
	if err != nil {
		return nil, notFound(err, "workspace", name)
	}

	return c.toWorkspace(&resp.Workspace, resourceGroup), nil
}

func (c *Client) CreateWorkspace(ctx context.Context, name, resourceGroup, location string, deps models.WorkspaceDependencies) (*models.Workspace, error) {
	pResp, err := c.WorkspacesClient.BeginCreateOrUpdate(ctx, resourceGroup, name, armmachinelearning.Workspace{
		Location: to.Ptr(location),
		Identity: &armmachinelearning.ManagedServiceIdentity{
			Type: to.Ptr(armmachinelearning.ManagedServiceIdentityTypeSystemAssigned),
		},
		SKU: &armmachinelearning.SKU{
			Name: to.Ptr("Basic"),
			Tier: to.Ptr(armmachinelearning.SKUTierBasic),
		},
		Properties: &armmachinelearning.WorkspaceProperties{
			FriendlyName:   to.Ptr(name),
			StorageAccount: to.Ptr(deps.StorageAccountID),
			KeyVault:       to.Ptr(deps.KeyVaultID),
		},
	}, nil)
	if err != nil {
		return nil, err
	}

	resp, err := pResp.PollUntilDone(ctx, nil)
	if err != nil {
		return nil, err
	}

	return c.toWorkspace(&resp.Workspace, resourceGroup), nil
}

func (c *Client) toWorkspace(w *armmachinelearning.Workspace, resourceGroup string) *models.Workspace {
	ws := &models.Workspace{
		Name:           deref(w.Name),
		ID:             deref(w.ID),
		SubscriptionID: c.SubscriptionID,
		ResourceGroup:  resourceGroup,
		Location:       deref(w.Location),
	}

	if w.Properties != nil {
		ws.DiscoveryURL = deref(w.Properties.DiscoveryURL)
		ws.StorageAccountID = deref(w.Properties.StorageAccount)
		ws.KeyVaultID = deref(w.Properties.KeyVault)
	}

	return ws
}
