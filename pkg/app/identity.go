package app

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"amlsubmit/models"
)

// LoadIdentity reads the workspace identity file. Every key is required.
func LoadIdentity(path string) (*models.Identity, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var identity models.Identity
	err = json.Unmarshal(data, &identity)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	var missing []string
	for key, value := range map[string]string{
		"workspace_name":  identity.WorkspaceName,
		"subscription_id": identity.SubscriptionID,
		"resource_group":  identity.ResourceGroup,
		"location":        identity.Location,
	} {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, key)
		}
	}

	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("%s is missing required keys: %s", path, strings.Join(missing, ", "))
	}

	return &identity, nil
}
