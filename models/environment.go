package models

import (
	"gopkg.in/yaml.v3"
)

type EnvironmentDescriptor struct {
	Name          string
	Version       string
	PythonVersion string
	CondaPackages []string
	PipPackages   []string
	Channels      []string
	DockerEnabled bool
	BaseImage     string
}

type condaFile struct {
	Name         string        `yaml:"name"`
	Channels     []string      `yaml:"channels"`
	Dependencies []interface{} `yaml:"dependencies"`
}

type pipSection struct {
	Pip []string `yaml:"pip"`
}

// CondaFile renders the descriptor as a conda environment file.
// The output only depends on the descriptor fields.
func (e EnvironmentDescriptor) CondaFile() (string, error) {
	deps := make([]interface{}, 0, len(e.CondaPackages)+2)
	deps = append(deps, "pip")
	for _, pkg := range e.CondaPackages {
		deps = append(deps, pkg)
	}
	if len(e.PipPackages) > 0 {
		deps = append(deps, pipSection{Pip: e.PipPackages})
	}

	out, err := yaml.Marshal(condaFile{
		Name:         e.Name,
		Channels:     e.Channels,
		Dependencies: deps,
	})
	if err != nil {
		return "", err
	}

	return string(out), nil
}
