package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/machinelearning/armmachinelearning/v4"

	"amlsubmit/models"
)

func (c *Client) GetCompute(ctx context.Context, ws *models.Workspace, name string) (*models.ComputeTarget, error) {
	resp, err := c.ComputeClient.Get(ctx, ws.ResourceGroup, ws.Name, name, nil)
	if err != nil {
		return nil, notFound(err, "compute", name)
	}

	return toComputeTarget(&resp.ComputeResource), nil
}

// CreateCompute issues the provisioning request for an AmlCompute cluster.
// It does not wait for the cluster to become ready.
func (c *Client) CreateCompute(ctx context.Context, ws *models.Workspace, name string, spec models.ComputeSpec) (*models.ComputeTarget, error) {
	properties := &armmachinelearning.AmlComputeProperties{
		VMSize:     to.Ptr(spec.VMSize),
		VMPriority: to.Ptr(armmachinelearning.VMPriority(spec.VMPriority)),
		OSType:     to.Ptr(armmachinelearning.OsTypeLinux),
		ScaleSettings: &armmachinelearning.ScaleSettings{
			MinNodeCount: to.Ptr(spec.MinNodes),
			MaxNodeCount: to.Ptr(spec.MaxNodes),
		},
	}
	if spec.IdleBeforeScaleDown != "" {
		properties.ScaleSettings.NodeIdleTimeBeforeScaleDown = to.Ptr(spec.IdleBeforeScaleDown)
	}
	if spec.SubnetID != "" {
		properties.Subnet = &armmachinelearning.ResourceID{ID: to.Ptr(spec.SubnetID)}
	}

	_, err := c.ComputeClient.BeginCreateOrUpdate(ctx, ws.ResourceGroup, ws.Name, name, armmachinelearning.ComputeResource{
		Location: to.Ptr(ws.Location),
		Properties: &armmachinelearning.AmlCompute{
			ComputeType: to.Ptr(armmachinelearning.ComputeTypeAmlCompute),
			Properties:  properties,
		},
	}, nil)
	if err != nil {
		return nil, err
	}

	return &models.ComputeTarget{
		Name:              name,
		ID:                fmt.Sprintf("%s/computes/%s", ws.ID, name),
		VMSize:            spec.VMSize,
		ProvisioningState: string(armmachinelearning.ProvisioningStateCreating),
	}, nil
}

// ListVMSizes returns the names of the VM sizes offered in the given location
func (c *Client) ListVMSizes(ctx context.Context, location string) ([]string, error) {
	var sizes []string

	pager := c.VirtualMachineSizesClient.NewListPager(location, nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}

		for _, size := range page.Value {
			if size != nil && size.Name != nil {
				sizes = append(sizes, *size.Name)
			}
		}
	}

	return sizes, nil
}

func toComputeTarget(r *armmachinelearning.ComputeResource) *models.ComputeTarget {
	target := &models.ComputeTarget{
		Name: deref(r.Name),
		ID:   deref(r.ID),
	}

	if r.Properties == nil {
		return target
	}

	compute := r.Properties.GetCompute()
	target.ProvisioningState = string(deref(compute.ProvisioningState))
	for _, e := range compute.ProvisioningErrors {
		if e == nil || e.Error == nil {
			continue
		}
		target.Errors = append(target.Errors, fmt.Sprintf("%s: %s", deref(e.Error.Code), deref(e.Error.Message)))
	}

	if aml, ok := r.Properties.(*armmachinelearning.AmlCompute); ok && aml.Properties != nil {
		target.VMSize = deref(aml.Properties.VMSize)
	}

	return target
}
