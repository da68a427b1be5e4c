package models

import "fmt"

// Identity is the workspace identity tuple read from the identity file
type Identity struct {
	WorkspaceName  string `json:"workspace_name"`
	SubscriptionID string `json:"subscription_id"`
	ResourceGroup  string `json:"resource_group"`
	Location       string `json:"location"`
}

type Workspace struct {
	Name           string
	ID             string
	SubscriptionID string
	ResourceGroup  string
	Location       string
	DiscoveryURL   string

	StorageAccountID string
	KeyVaultID       string
}

// WorkspaceDependencies are the resources a new workspace is attached to.
// Empty IDs are created next to the workspace.
type WorkspaceDependencies struct {
	StorageAccountID string
	KeyVaultID       string
	TenantID         string
}

type ResolutionKind int

const (
	Found ResolutionKind = iota
	Created
	Provisioned
)

func (k ResolutionKind) String() string {
	switch k {
	case Found:
		return "found"
	case Created:
		return "created"
	case Provisioned:
		return "provisioned"
	default:
		return fmt.Sprintf("ResolutionKind(%d)", int(k))
	}
}

type WorkspaceResolution struct {
	Kind      ResolutionKind
	Workspace *Workspace
}
