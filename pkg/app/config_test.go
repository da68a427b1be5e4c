package app

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaultsWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")

	require.NoError(t, LoadConfig(&path))
	assert.Equal(t, DefaultConfig(), Config)
	assert.Equal(t, "gpu-cluster", Config.Cluster.Name)
	assert.Equal(t, int32(8), Config.Cluster.MaxNodes)
	assert.Equal(t, "train.py", Config.Job.Script)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeTemp(t, "config.yml", `
cluster:
  name: big-gpus
  vmSize: Standard_NC24
  maxNodes: 2
  readyTimeout: 5m
job:
  experiment: yolo-tuning
  wait: true
`)

	require.NoError(t, LoadConfig(&path))
	assert.Equal(t, "big-gpus", Config.Cluster.Name)
	assert.Equal(t, "Standard_NC24", Config.Cluster.VMSize)
	assert.Equal(t, int32(2), Config.Cluster.MaxNodes)
	assert.Equal(t, 5*time.Minute, Config.Cluster.ReadyTimeout)
	assert.Equal(t, "yolo-tuning", Config.Job.Experiment)
	assert.True(t, Config.Job.Wait)

	// untouched keys keep their defaults
	assert.Equal(t, "LowPriority", Config.Cluster.VMPriority)
	assert.Equal(t, []string{"model_data", "yolo3"}, Config.Staging.Subdirs)
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	t.Cleanup(func() { Config = DefaultConfig() })
	path := writeTemp(t, "config.yml", "cluster:\n  maxNodes: 0\n")

	err := LoadConfig(&path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maxNodes")
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("AML_IDENTITY", "/etc/aml/config.json")
	t.Setenv("AML_TENANT_ID", "t1")

	env, err := LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, "/etc/aml/config.json", env.IdentityPath)
	assert.Equal(t, "t1", env.TenantID)
	assert.Equal(t, "./config.yml", env.ConfigPath)
}
