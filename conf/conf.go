// Package conf loads the server configuration from an optional YAML file and
// SUBMARINE_* environment variables. Environment variables win.
package conf

import (
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

type Config struct {
	ListenAddr string `yaml:"listenAddr"`

	// Root of the artifact tree: environments, templates, experiment specs
	// and the model registry all live under here.
	ArtifactRoot string `yaml:"artifactRoot"`

	ExperimentNamespace string `yaml:"experimentNamespace"`
	NotebookNamespace   string `yaml:"notebookNamespace"`
	ServeNamespace      string `yaml:"serveNamespace"`
	IngressName         string `yaml:"ingressName"`
	StorageClassName    string `yaml:"storageClassName"`

	GitHubToken string `yaml:"githubToken"`

	// Metric tracking endpoint handed to every training task.
	TrackingURI string `yaml:"trackingUri"`

	AutoStopEnabled     bool `yaml:"autoStopEnabled"`
	AutoStopIdleMinutes int  `yaml:"autoStopIdleMinutes"`
}

func (c *Config) AutoStopIdle() time.Duration {
	return time.Duration(c.AutoStopIdleMinutes) * time.Minute
}

var (
	once sync.Once
	conf *Config
)

// Get returns the process-wide configuration, loading it on first use.
func Get() *Config {
	once.Do(func() {
		conf = load(afero.NewOsFs())
	})
	return conf
}

func load(fs afero.Fs) *Config {
	c := &Config{
		ListenAddr:          ":8080",
		ArtifactRoot:        "/app/artifact",
		ExperimentNamespace: "submarine",
		NotebookNamespace:   "submarine",
		ServeNamespace:      "submarine",
		IngressName:         "submarine",
		StorageClassName:    "nfs-csi-model",
		TrackingURI:         "http://submarine-mlflow-service:5000",
		AutoStopIdleMinutes: 60,
	}

	if path := os.Getenv("SUBMARINE_CONF"); path != "" {
		data, err := afero.ReadFile(fs, path)
		if err != nil {
			logrus.Warnf("cannot read config file %s: %v", path, err)
		} else if err := yaml.Unmarshal(data, c); err != nil {
			logrus.Warnf("cannot parse config file %s: %v", path, err)
		}
	}

	overrideString(&c.ListenAddr, "SUBMARINE_LISTEN_ADDR")
	overrideString(&c.ArtifactRoot, "SUBMARINE_ARTIFACT_ROOT")
	overrideString(&c.ExperimentNamespace, "SUBMARINE_EXPERIMENT_NAMESPACE")
	overrideString(&c.NotebookNamespace, "SUBMARINE_NOTEBOOK_NAMESPACE")
	overrideString(&c.ServeNamespace, "SUBMARINE_SERVE_NAMESPACE")
	overrideString(&c.IngressName, "SUBMARINE_INGRESS_NAME")
	overrideString(&c.StorageClassName, "SUBMARINE_STORAGE_CLASS")
	overrideString(&c.GitHubToken, "SUBMARINE_GITHUB_TOKEN")
	overrideString(&c.TrackingURI, "SUBMARINE_TRACKING_URI")
	overrideBool(&c.AutoStopEnabled, "SUBMARINE_AUTOSTOP_ENABLE")
	overrideInt(&c.AutoStopIdleMinutes, "SUBMARINE_AUTOSTOP_IDLE_MINUTES")

	return c
}

func overrideString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func overrideBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func overrideInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
