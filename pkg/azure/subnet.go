package azure

import (
	"context"
	"errors"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork/v2"

	"amlsubmit/models"
)

func (c *Client) GetSubnet(ctx context.Context, name string, resourceGroupName string, vnetName string) (*armnetwork.Subnet, error) {
	resp, err := c.SubnetsClient.Get(ctx, resourceGroupName, vnetName, name, nil)
	if err != nil {
		return nil, notFound(err, "subnet", name)
	}

	return &resp.Subnet, nil
}

func (c *Client) CreateSubnet(ctx context.Context, name string, resourceGroupName string, vnetName string, addressPrefix string) (*armnetwork.Subnet, error) {
	pResp, err := c.SubnetsClient.BeginCreateOrUpdate(ctx, resourceGroupName, vnetName, name, armnetwork.Subnet{
		Properties: &armnetwork.SubnetPropertiesFormat{
			AddressPrefix: to.Ptr(addressPrefix),
		},
	}, nil)
	if err != nil {
		return nil, err
	}

	resp, err := pResp.PollUntilDone(ctx, nil)
	if err != nil {
		return nil, err
	}

	return &resp.Subnet, nil
}

// EnsureSubnet get-or-creates the virtual network and subnet the cluster nodes join and returns the subnet id
func (c *Client) EnsureSubnet(ctx context.Context, ws *models.Workspace, network models.NetworkSpec) (string, error) {
	_, err := c.EnsureVirtualNetwork(ctx, network.VirtualNetwork, ws.ResourceGroup, ws.Location, network.AddressSpace)
	if err != nil {
		return "", err
	}

	subnet, err := c.GetSubnet(ctx, network.Subnet, ws.ResourceGroup, network.VirtualNetwork)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			return "", err
		}

		subnet, err = c.CreateSubnet(ctx, network.Subnet, ws.ResourceGroup, network.VirtualNetwork, network.AddressPrefix)
		if err != nil {
			return "", err
		}
	}

	return deref(subnet.ID), nil
}
