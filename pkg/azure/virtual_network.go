package azure

import (
	"context"
	"errors"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork/v2"

	"amlsubmit/models"
)

func (c *Client) GetVirtualNetwork(ctx context.Context, name, resourceGroup string) (*armnetwork.VirtualNetwork, error) {
	resp, err := c.VirtualNetworksClient.Get(ctx, resourceGroup, name, nil)
	if err != nil {
		return nil, notFound(err, "virtual network", name)
	}

	return &resp.VirtualNetwork, nil
}

func (c *Client) CreateVirtualNetwork(ctx context.Context, name, resourceGroup, location, addressSpace string) (*armnetwork.VirtualNetwork, error) {
	pResp, err := c.VirtualNetworksClient.BeginCreateOrUpdate(ctx, resourceGroup, name, armnetwork.VirtualNetwork{
		Location: to.Ptr(location),
		Properties: &armnetwork.VirtualNetworkPropertiesFormat{
			AddressSpace: &armnetwork.AddressSpace{
				AddressPrefixes: []*string{
					to.Ptr(addressSpace),
				},
			},
		},
	}, nil)
	if err != nil {
		return nil, err
	}

	resp, err := pResp.PollUntilDone(ctx, nil)
	if err != nil {
		return nil, err
	}

	return &resp.VirtualNetwork, nil
}

// EnsureVirtualNetwork creates the virtual network unless it already exists
func (c *Client) EnsureVirtualNetwork(ctx context.Context, name, resourceGroup, location, addressSpace string) (*armnetwork.VirtualNetwork, error) {
	vnet, err := c.GetVirtualNetwork(ctx, name, resourceGroup)
	if err == nil {
		return vnet, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	return c.CreateVirtualNetwork(ctx, name, resourceGroup, location, addressSpace)
}
