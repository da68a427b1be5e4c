package azure

import (
	"context"
	"errors"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/keyvault/armkeyvault"

	"amlsubmit/models"
)

func (c *Client) GetKeyVault(ctx context.Context, name, resourceGroup string) (*armkeyvault.Vault, error) {
	resp, err := c.VaultsClient.Get(ctx, resourceGroup, name, nil)
	if err != nil {
		return nil, notFound(err, "key vault", name)
	}

	return &resp.Vault, nil
}

func (c *Client) CreateKeyVault(ctx context.Context, name, resourceGroup, location, tenantID string) (*armkeyvault.Vault, error) {
	pResp, err := c.VaultsClient.BeginCreateOrUpdate(ctx, resourceGroup, name, armkeyvault.VaultCreateOrUpdateParameters{
		Location: to.Ptr(location),
		Properties: &armkeyvault.VaultProperties{
			TenantID: to.Ptr(tenantID),
			SKU: &armkeyvault.SKU{
				Family: to.Ptr(armkeyvault.SKUFamilyA),
				Name:   to.Ptr(armkeyvault.SKUNameStandard),
			},
			EnableRbacAuthorization: to.Ptr(true),
			AccessPolicies:          []*armkeyvault.AccessPolicyEntry{},
		},
	}, nil)
	if err != nil {
		return nil, err
	}

	resp, err := pResp.PollUntilDone(ctx, nil)
	if err != nil {
		return nil, err
	}

	return &resp.Vault, nil
}

// EnsureKeyVault returns the resource id of the named key vault, creating it if needed
func (c *Client) EnsureKeyVault(ctx context.Context, name, resourceGroup, location, tenantID string) (string, error) {
	vault, err := c.GetKeyVault(ctx, name, resourceGroup)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			return "", err
		}
		if tenantID == "" {
			return "", errors.New("a tenant id is required to create key vault " + name)
		}

		vault, err = c.CreateKeyVault(ctx, name, resourceGroup, location, tenantID)
		if err != nil {
			return "", err
		}
	}

	return deref(vault.ID), nil
}
