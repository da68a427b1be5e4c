package azure

import (
	"context"
	"errors"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"

	"amlsubmit/models"
)

func (c *Client) GetResourceGroup(ctx context.Context, name string) (*armresources.ResourceGroup, error) {
	resp, err := c.ResourceGroupsClient.Get(ctx, name, nil)
	if err != nil {
		return nil, notFound(err, "resource group", name)
	}

	return &resp.ResourceGroup, nil
}

func (c *Client) CreateResourceGroup(ctx context.Context, name, location string) (*armresources.ResourceGroup, error) {
	resp, err := c.ResourceGroupsClient.CreateOrUpdate(ctx, name, armresources.ResourceGroup{
		Location: to.Ptr(location),
	}, nil)

	if err != nil {
		return nil, err
	}

	return &resp.ResourceGroup, nil
}

// EnsureResourceGroup creates the resource group unless it already exists
func (c *Client) EnsureResourceGroup(ctx context.Context, name, location string) error {
	_, err := c.GetResourceGroup(ctx, name)
	if err == nil {
		return nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return err
	}

	_, err = c.CreateResourceGroup(ctx, name, location)
	return err
}
