package models

import (
	"fmt"
	"regexp"
	"strings"
)

type Datastore struct {
	Name          string
	AccountName   string
	ContainerName string
	// Endpoint is the storage DNS suffix, e.g. core.windows.net
	Endpoint string
}

// BlobServiceURL returns the blob endpoint of the storage account behind the datastore
func (d *Datastore) BlobServiceURL() string {
	endpoint := d.Endpoint
	if endpoint == "" {
		endpoint = "core.windows.net"
	}
	return fmt.Sprintf("https://%s.blob.%s/", d.AccountName, endpoint)
}

const (
	MountModeReadOnly = "ReadOnlyMount"
	MountModeDownload = "Download"
)

// DatasetRef points at a folder in a datastore. It is mounted by the remote
// executor at run time and never materialized locally.
type DatasetRef struct {
	InputName string
	Datastore string
	Path      string
	Mode      string
}

func (d DatasetRef) URI() string {
	return fmt.Sprintf("azureml://datastores/%s/paths/%s", d.Datastore, strings.TrimPrefix(d.Path, "/"))
}

// Placeholder is the command line token the platform replaces with the mount point
func (d DatasetRef) Placeholder() string {
	return "${{inputs." + d.InputName + "}}"
}

type Submission struct {
	SourceDirectory string
	Script          string
	Arguments       []string
	ComputeTarget   *ComputeTarget
	Environment     *EnvironmentDescriptor

	Experiment    string
	DisplayName   string
	Inputs        []DatasetRef
	CodeID        string
	EnvironmentID string
}

var (
	safeArg        = regexp.MustCompile(`^[A-Za-z0-9_@%+=:,./-]+$`)
	inputReference = regexp.MustCompile(`^\$\{\{inputs\.[A-Za-z0-9_]+\}\}$`)
)

// quoteArg single-quotes arg for a POSIX shell. Input references are left bare
// because the platform substitutes them in the command text before the shell runs.
func quoteArg(arg string) string {
	if safeArg.MatchString(arg) || inputReference.MatchString(arg) {
		return arg
	}
	return "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
}

// Command is the shell command the job runs inside the code snapshot
func (s *Submission) Command() string {
	parts := []string{"python", quoteArg(s.Script)}
	for _, arg := range s.Arguments {
		parts = append(parts, quoteArg(arg))
	}
	return strings.Join(parts, " ")
}

// Validate checks that every aggregate field is populated
func (s *Submission) Validate() error {
	var missing []string
	if s.SourceDirectory == "" {
		missing = append(missing, "source directory")
	}
	if s.Script == "" {
		missing = append(missing, "script")
	}
	if len(s.Arguments) == 0 {
		missing = append(missing, "arguments")
	}
	if s.ComputeTarget == nil {
		missing = append(missing, "compute target")
	}
	if s.Environment == nil {
		missing = append(missing, "environment")
	}
	if len(missing) > 0 {
		return fmt.Errorf("submission is missing %s", strings.Join(missing, ", "))
	}
	return nil
}

type RunHandle struct {
	Name       string
	ID         string
	Experiment string
	Status     string
	StudioURL  string
}

var terminalStatuses = []string{"Completed", "Failed", "Canceled", "NotResponding"}

func (r *RunHandle) Done() bool {
	for _, s := range terminalStatuses {
		if strings.EqualFold(r.Status, s) {
			return true
		}
	}
	return false
}
