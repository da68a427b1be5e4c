package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"amlsubmit/models"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadIdentity(t *testing.T) {
	path := writeTemp(t, "config.json", `{
		"workspace_name": "demo",
		"subscription_id": "s1",
		"resource_group": "rg1",
		"location": "eastus"
	}`)

	identity, err := LoadIdentity(path)
	require.NoError(t, err)
	assert.Equal(t, &models.Identity{WorkspaceName: "demo", SubscriptionID: "s1", ResourceGroup: "rg1", Location: "eastus"}, identity)
}

func TestLoadIdentityMissingKeys(t *testing.T) {
	path := writeTemp(t, "config.json", `{"workspace_name": "demo", "location": " "}`)

	_, err := LoadIdentity(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required keys: location, resource_group, subscription_id")
}

func TestLoadIdentityMalformed(t *testing.T) {
	_, err := LoadIdentity(writeTemp(t, "config.json", `{"workspace_name":`))
	assert.Error(t, err)

	_, err = LoadIdentity(filepath.Join(t.TempDir(), "absent.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
