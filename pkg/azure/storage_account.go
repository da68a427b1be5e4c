package azure

import (
	"context"
	"errors"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/storage/armstorage"

	"amlsubmit/models"
)

func (c *Client) GetStorageAccount(ctx context.Context, name, resourceGroup string) (*armstorage.Account, error) {
	resp, err := c.StorageAccountsClient.GetProperties(ctx, resourceGroup, name, nil)
	if err != nil {
		return nil, notFound(err, "storage account", name)
	}

	return &resp.Account, nil
}

func (c *Client) CreateStorageAccount(ctx context.Context, name, resourceGroup, location string) (*armstorage.Account, error) {
	pResp, err := c.StorageAccountsClient.BeginCreate(ctx, resourceGroup, name, armstorage.AccountCreateParameters{
		Kind:     to.Ptr(armstorage.KindStorageV2),
		Location: to.Ptr(location),
		SKU: &armstorage.SKU{
			Name: to.Ptr(armstorage.SKUNameStandardLRS),
		},
		Properties: &armstorage.AccountPropertiesCreateParameters{
			AllowBlobPublicAccess:  to.Ptr(false),
			EnableHTTPSTrafficOnly: to.Ptr(true),
			MinimumTLSVersion:      to.Ptr(armstorage.MinimumTLSVersionTLS12),
		},
	}, nil)
	if err != nil {
		return nil, err
	}

	resp, err := pResp.PollUntilDone(ctx, nil)
	if err != nil {
		return nil, err
	}

	return &resp.Account, nil
}

// EnsureStorageAccount returns the resource id of the named storage account, creating it if needed
func (c *Client) EnsureStorageAccount(ctx context.Context, name, resourceGroup, location string) (string, error) {
	account, err := c.GetStorageAccount(ctx, name, resourceGroup)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			return "", err
		}

		account, err = c.CreateStorageAccount(ctx, name, resourceGroup, location)
		if err != nil {
			return "", err
		}
	}

	return deref(account.ID), nil
}
