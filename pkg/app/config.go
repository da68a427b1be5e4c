package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type ConfigType struct {
	Azure struct {
		// TenantID is needed only when a key vault has to be created for a new workspace
		TenantID string `yaml:"tenantId"`
		// StorageAccountID and KeyVaultID attach a new workspace to existing resources
		StorageAccountID string `yaml:"storageAccountId"`
		KeyVaultID       string `yaml:"keyVaultId"`
	} `yaml:"azure"`

	Staging struct {
		Dir     string   `yaml:"dir"`
		Globs   []string `yaml:"globs"`
		Subdirs []string `yaml:"subdirs"`
	} `yaml:"staging"`

	Environment struct {
		Name          string   `yaml:"name"`
		Version       string   `yaml:"version"`
		PythonVersion string   `yaml:"pythonVersion"`
		PipPackages   []string `yaml:"pipPackages"`
		Channels      []string `yaml:"channels"`
		DockerEnabled bool     `yaml:"dockerEnabled"`
		BaseImage     string   `yaml:"baseImage"`
	} `yaml:"environment"`

	Cluster struct {
		Name                string        `yaml:"name"`
		VMSize              string        `yaml:"vmSize"`
		VMPriority          string        `yaml:"vmPriority"`
		MinNodes            int32         `yaml:"minNodes"`
		MaxNodes            int32         `yaml:"maxNodes"`
		IdleBeforeScaleDown string        `yaml:"idleBeforeScaleDown"`
		ReadyTimeout        time.Duration `yaml:"readyTimeout"`
		PollInterval        time.Duration `yaml:"pollInterval"`

		Network struct {
			VirtualNetwork string `yaml:"virtualNetwork"`
			AddressSpace   string `yaml:"addressSpace"`
			Subnet         string `yaml:"subnet"`
			AddressPrefix  string `yaml:"addressPrefix"`
		} `yaml:"network"`
	} `yaml:"cluster"`

	Dataset struct {
		InputName string `yaml:"inputName"`
		Path      string `yaml:"path"`
		Mode      string `yaml:"mode"`
	} `yaml:"dataset"`

	Job struct {
		Experiment  string        `yaml:"experiment"`
		Script      string        `yaml:"script"`
		DatasetFlag string        `yaml:"datasetFlag"`
		Arguments   []string      `yaml:"arguments"`
		Wait        bool          `yaml:"wait"`
		Timeout     time.Duration `yaml:"timeout"`
		// UploadParallelism bounds the number of concurrent blob uploads of the snapshot
		UploadParallelism int `yaml:"uploadParallelism"`
	} `yaml:"job"`
}

var Config = DefaultConfig()

// DefaultConfig returns the settings used to train keras-yolo3 on a low priority GPU cluster
func DefaultConfig() ConfigType {
	var c ConfigType

	c.Staging.Dir = "./aml/staging"
	c.Staging.Globs = []string{"*.py", "*.cfg", "*.txt"}
	c.Staging.Subdirs = []string{"model_data", "yolo3"}

	c.Environment.Name = "yolov3"
	c.Environment.PythonVersion = "3.6.11"
	c.Environment.PipPackages = []string{
		"keras==2.1.5",
		"tensorflow==1.6.0",
		"pillow",
		"matplotlib",
		"h5py",
		"tensorboard",
		"azureml-sdk",
	}
	c.Environment.Channels = []string{"anaconda", "conda-forge"}
	c.Environment.DockerEnabled = true
	c.Environment.BaseImage = "mcr.microsoft.com/azureml/openmpi3.1.2-cuda10.1-cudnn7-ubuntu18.04"

	c.Cluster.Name = "gpu-cluster"
	c.Cluster.VMSize = "STANDARD_NC6"
	c.Cluster.VMPriority = "LowPriority"
	c.Cluster.MinNodes = 0
	c.Cluster.MaxNodes = 8
	c.Cluster.IdleBeforeScaleDown = "PT1800S"
	c.Cluster.ReadyTimeout = 30 * time.Minute
	c.Cluster.PollInterval = 15 * time.Second

	c.Dataset.InputName = "input"
	c.Dataset.Path = "/data/VOCdevkit"
	c.Dataset.Mode = "ReadOnlyMount"

	c.Job.Experiment = "keras-yolo3"
	c.Job.Script = "train.py"
	c.Job.DatasetFlag = "--data"
	c.Job.Timeout = 12 * time.Hour
	c.Job.UploadParallelism = 8

	return c
}

// LoadConfig loads the configuration from the given path on top of DefaultConfig.
// If the path is empty, it will load the configuration from ./config.yml.
// A missing file leaves the defaults untouched.
func LoadConfig(path *string) error {
	if path == nil || *path == "" {
		p := "./config.yml"
		path = &p
	}

	cfg := DefaultConfig()

	yamlFile, err := os.ReadFile(*path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			Config = cfg
			return nil
		}
		return err
	}

	err = yaml.Unmarshal(yamlFile, &cfg)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", *path, err)
	}

	err = cfg.Validate()
	if err != nil {
		return fmt.Errorf("invalid config %s: %w", *path, err)
	}

	Config = cfg
	return nil
}

func (c *ConfigType) Validate() error {
	if c.Cluster.Name == "" {
		return errors.New("cluster.name must be set")
	}
	if c.Cluster.MaxNodes < 1 {
		return errors.New("cluster.maxNodes must be at least 1")
	}
	if c.Cluster.MinNodes < 0 || c.Cluster.MinNodes > c.Cluster.MaxNodes {
		return fmt.Errorf("cluster.minNodes must be between 0 and %d", c.Cluster.MaxNodes)
	}
	if c.Staging.Dir == "" {
		return errors.New("staging.dir must be set")
	}
	if c.Job.Script == "" {
		return errors.New("job.script must be set")
	}
	if c.Job.Experiment == "" {
		return errors.New("job.experiment must be set")
	}
	if c.Dataset.InputName == "" {
		return errors.New("dataset.inputName must be set")
	}
	return nil
}
