package app

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// EnvType holds the process settings read from AML_* environment variables
type EnvType struct {
	ConfigPath   string `envconfig:"CONFIG" default:"./config.yml"`
	IdentityPath string `envconfig:"IDENTITY" default:"aml/config.json"`
	TenantID     string `envconfig:"TENANT_ID"`
}

// LoadEnv reads the AML_* environment variables
func LoadEnv() (*EnvType, error) {
	var env EnvType

	err := envconfig.Process("AML", &env)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration from environment variables: %w", err)
	}

	return &env, nil
}
