package models

import "strings"

type ComputeSpec struct {
	VMSize     string
	VMPriority string
	MinNodes   int32
	MaxNodes   int32
	// IdleBeforeScaleDown is an ISO 8601 duration, e.g. PT120S
	IdleBeforeScaleDown string
	// SubnetID places the cluster nodes in a virtual network when set
	SubnetID string
}

type ComputeTarget struct {
	Name              string
	ID                string
	VMSize            string
	ProvisioningState string
	Errors            []string
}

func (t *ComputeTarget) Ready() bool {
	return strings.EqualFold(t.ProvisioningState, "Succeeded")
}

func (t *ComputeTarget) Failed() bool {
	return strings.EqualFold(t.ProvisioningState, "Failed") || strings.EqualFold(t.ProvisioningState, "Canceled")
}

type ComputeResolution struct {
	Kind   ResolutionKind
	Target *ComputeTarget
}

// NetworkSpec names the virtual network and subnet the cluster joins
type NetworkSpec struct {
	VirtualNetwork string
	AddressSpace   string
	Subnet         string
	AddressPrefix  string
}

func (n NetworkSpec) Enabled() bool {
	return n.VirtualNetwork != "" && n.Subnet != ""
}
