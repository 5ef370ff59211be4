package model

// EnvironmentSpec describes a runtime environment that experiments and
// notebooks run inside: a base docker image plus an optional conda kernel.
type EnvironmentSpec struct {
	Name        string      `json:"name,omitempty" yaml:"name,omitempty"`
	DockerImage string      `json:"dockerImage,omitempty" yaml:"dockerImage,omitempty"`
	KernelSpec  *KernelSpec `json:"kernelSpec,omitempty" yaml:"kernelSpec,omitempty"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
}

// KernelSpec lists the conda channels and dependencies of an environment
// kernel.
type KernelSpec struct {
	Name              string   `json:"name,omitempty" yaml:"name,omitempty"`
	Channels          []string `json:"channels,omitempty" yaml:"channels,omitempty"`
	CondaDependencies []string `json:"condaDependencies,omitempty" yaml:"condaDependencies,omitempty"`
	PipDependencies   []string `json:"pipDependencies,omitempty" yaml:"pipDependencies,omitempty"`
}
