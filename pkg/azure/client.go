package azure

import (
	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/compute/armcompute/v4"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/keyvault/armkeyvault"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/machinelearning/armmachinelearning/v4"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork/v2"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/storage/armstorage"
)

type Opts struct {
	SubscriptionID string
}

type Client struct {
	SubscriptionID string

	credential azcore.TokenCredential

	SubscriptionsClient       *armsubscriptions.Client
	ResourceGroupsClient      *armresources.ResourceGroupsClient
	VirtualNetworksClient     *armnetwork.VirtualNetworksClient
	SubnetsClient             *armnetwork.SubnetsClient
	VirtualMachineSizesClient *armcompute.VirtualMachineSizesClient
	StorageAccountsClient     *armstorage.AccountsClient
	VaultsClient              *armkeyvault.VaultsClient

	WorkspacesClient          *armmachinelearning.WorkspacesClient
	ComputeClient             *armmachinelearning.ComputeClient
	EnvironmentVersionsClient *armmachinelearning.EnvironmentVersionsClient
	DatastoresClient          *armmachinelearning.DatastoresClient
	CodeVersionsClient        *armmachinelearning.CodeVersionsClient
	JobsClient                *armmachinelearning.JobsClient
}

func New(opts *Opts) (*Client, error) {
	client := &Client{
		SubscriptionID: opts.SubscriptionID,
	}

	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, err
	}
	client.credential = cred

	// Create factories
	clientFactory, err := armresources.NewClientFactory(opts.SubscriptionID, cred, nil)
	if err != nil {
		return nil, err
	}

	subscriptionsClientFactory, err := armsubscriptions.NewClientFactory(cred, nil)
	if err != nil {
		return nil, err
	}

	networkClientFactory, err := armnetwork.NewClientFactory(opts.SubscriptionID, cred, nil)
	if err != nil {
		return nil, err
	}

	computeClientFactory, err := armcompute.NewClientFactory(opts.SubscriptionID, cred, nil)
	if err != nil {
		return nil, err
	}

	storageClientFactory, err := armstorage.NewClientFactory(opts.SubscriptionID, cred, nil)
	if err != nil {
		return nil, err
	}

	keyVaultClientFactory, err := armkeyvault.NewClientFactory(opts.SubscriptionID, cred, nil)
	if err != nil {
		return nil, err
	}

	mlClientFactory, err := armmachinelearning.NewClientFactory(opts.SubscriptionID, cred, nil)
	if err != nil {
		return nil, err
	}

	// Assign clients
	client.SubscriptionsClient = subscriptionsClientFactory.NewClient()
	client.ResourceGroupsClient = clientFactory.NewResourceGroupsClient()
	client.VirtualNetworksClient = networkClientFactory.NewVirtualNetworksClient()
	client.SubnetsClient = networkClientFactory.NewSubnetsClient()
	client.VirtualMachineSizesClient = computeClientFactory.NewVirtualMachineSizesClient()
	client.StorageAccountsClient = storageClientFactory.NewAccountsClient()
	client.VaultsClient = keyVaultClientFactory.NewVaultsClient()

	client.WorkspacesClient = mlClientFactory.NewWorkspacesClient()
	client.ComputeClient = mlClientFactory.NewComputeClient()
	client.EnvironmentVersionsClient = mlClientFactory.NewEnvironmentVersionsClient()
	client.DatastoresClient = mlClientFactory.NewDatastoresClient()
	client.CodeVersionsClient = mlClientFactory.NewCodeVersionsClient()
	client.JobsClient = mlClientFactory.NewJobsClient()

	return client, nil
}
