// Package workspace resolves the Azure Machine Learning workspace a job is submitted to.
package workspace

import (
	"context"
	"errors"
	"fmt"

	"amlsubmit/models"
	"amlsubmit/pkg/app/pretty_log"
	"amlsubmit/utils"
)

type API interface {
	GetWorkspace(ctx context.Context, name, resourceGroup string) (*models.Workspace, error)
	CreateWorkspace(ctx context.Context, name, resourceGroup, location string, deps models.WorkspaceDependencies) (*models.Workspace, error)

	EnsureResourceGroup(ctx context.Context, name, location string) error
	EnsureStorageAccount(ctx context.Context, name, resourceGroup, location string) (string, error)
	EnsureKeyVault(ctx context.Context, name, resourceGroup, location, tenantID string) (string, error)
	SubscriptionTenantID(ctx context.Context, subscriptionID string) (string, error)
}

// Resolve returns the workspace named by the identity, creating it together with
// its resource group and dependent resources when it does not exist yet.
func Resolve(ctx context.Context, api API, identity *models.Identity, deps models.WorkspaceDependencies) (*models.WorkspaceResolution, error) {
	ws, err := api.GetWorkspace(ctx, identity.WorkspaceName, identity.ResourceGroup)
	if err == nil {
		return &models.WorkspaceResolution{Kind: models.Found, Workspace: ws}, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("failed to get workspace %s: %w", identity.WorkspaceName, err)
	}

	id := pretty_log.BeginTask("Creating resource group %s", identity.ResourceGroup)
	err = api.EnsureResourceGroup(ctx, identity.ResourceGroup, identity.Location)
	if err != nil {
		pretty_log.FailTask(id)
		return nil, err
	}
	pretty_log.CompleteTask(id)

	scope := identity.SubscriptionID + "/" + identity.ResourceGroup + "/" + identity.WorkspaceName

	if deps.StorageAccountID == "" {
		name := utils.ResourceName(identity.WorkspaceName, scope, "st", 24)
		id = pretty_log.BeginTask("Creating storage account %s", name)
		deps.StorageAccountID, err = api.EnsureStorageAccount(ctx, name, identity.ResourceGroup, identity.Location)
		if err != nil {
			pretty_log.FailTask(id)
			return nil, err
		}
		pretty_log.CompleteTask(id)
	}

	if deps.KeyVaultID == "" {
		if deps.TenantID == "" {
			deps.TenantID, err = api.SubscriptionTenantID(ctx, identity.SubscriptionID)
			if err != nil {
				return nil, fmt.Errorf("failed to look up tenant of subscription %s: %w", identity.SubscriptionID, err)
			}
		}

		name := utils.ResourceName(identity.WorkspaceName, scope, "kv", 24)
		id = pretty_log.BeginTask("Creating key vault %s", name)
		deps.KeyVaultID, err = api.EnsureKeyVault(ctx, name, identity.ResourceGroup, identity.Location, deps.TenantID)
		if err != nil {
			pretty_log.FailTask(id)
			return nil, err
		}
		pretty_log.CompleteTask(id)
	}

	id = pretty_log.BeginTask("Creating workspace %s", identity.WorkspaceName)
	ws, err = api.CreateWorkspace(ctx, identity.WorkspaceName, identity.ResourceGroup, identity.Location, deps)
	if err != nil {
		pretty_log.FailTask(id)
		return nil, err
	}
	pretty_log.CompleteTask(id)

	return &models.WorkspaceResolution{Kind: models.Created, Workspace: ws}, nil
}
