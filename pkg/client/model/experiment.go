package model

// ExperimentSpec is the full description of a training experiment: metadata,
// the environment it runs in, one task spec per role (e.g. Ps/Worker for
// TensorFlow, Master/Worker for PyTorch) and an optional code sync source.
type ExperimentSpec struct {
	Meta        *ExperimentMeta                `json:"meta,omitempty" yaml:"meta,omitempty"`
	Environment *EnvironmentSpec               `json:"environment,omitempty" yaml:"environment,omitempty"`
	Spec        map[string]*ExperimentTaskSpec `json:"spec,omitempty" yaml:"spec,omitempty"`
	Code        *CodeSpec                      `json:"code,omitempty" yaml:"code,omitempty"`
}

// ExperimentMeta carries the experiment identity and the launch command shared
// by all tasks.
type ExperimentMeta struct {
	ExperimentID string            `json:"experimentId,omitempty" yaml:"experimentId,omitempty"`
	Name         string            `json:"name,omitempty" yaml:"name,omitempty"`
	Namespace    string            `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	Framework    string            `json:"framework,omitempty" yaml:"framework,omitempty"`
	Cmd          string            `json:"cmd,omitempty" yaml:"cmd,omitempty"`
	EnvVars      map[string]string `json:"envVars,omitempty" yaml:"envVars,omitempty"`
	Tags         []string          `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// ExperimentTaskSpec configures one replica group of an experiment. Resources
// uses the compact "cpu=4,memory=2048M,nvidia.com/gpu=1" form.
type ExperimentTaskSpec struct {
	Replicas  int32             `json:"replicas,omitempty" yaml:"replicas,omitempty"`
	Resources string            `json:"resources,omitempty" yaml:"resources,omitempty"`
	Name      string            `json:"name,omitempty" yaml:"name,omitempty"`
	Image     string            `json:"image,omitempty" yaml:"image,omitempty"`
	Cmd       string            `json:"cmd,omitempty" yaml:"cmd,omitempty"`
	EnvVars   map[string]string `json:"envVars,omitempty" yaml:"envVars,omitempty"`
}

// CodeSpec tells the server how to localize training code before launch.
// The only supported sync mode is "git".
type CodeSpec struct {
	SyncMode string       `json:"syncMode,omitempty" yaml:"syncMode,omitempty"`
	Git      *GitCodeSpec `json:"git,omitempty" yaml:"git,omitempty"`
}

// GitCodeSpec points at the repository holding the experiment code.
type GitCodeSpec struct {
	URL    string `json:"url,omitempty" yaml:"url,omitempty"`
	Branch string `json:"branch,omitempty" yaml:"branch,omitempty"`
}
