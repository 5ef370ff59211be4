package model

// NotebookSpec describes an interactive notebook server: identity, the
// environment image it boots and the pod resources it claims.
type NotebookSpec struct {
	Meta        *NotebookMeta    `json:"meta,omitempty" yaml:"meta,omitempty"`
	Environment *EnvironmentSpec `json:"environment,omitempty" yaml:"environment,omitempty"`
	Spec        *NotebookPodSpec `json:"spec,omitempty" yaml:"spec,omitempty"`
}

// NotebookMeta identifies a notebook and its owner.
type NotebookMeta struct {
	Name      string            `json:"name,omitempty" yaml:"name,omitempty"`
	Namespace string            `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	OwnerID   string            `json:"ownerId,omitempty" yaml:"ownerId,omitempty"`
	Labels    map[string]string `json:"labels,omitempty" yaml:"labels,omitempty"`
}

// NotebookPodSpec configures the notebook pod. Resources uses the compact
// "cpu=1,memory=1Gi,nvidia.com/gpu=0" form.
type NotebookPodSpec struct {
	EnvVars   map[string]string `json:"envVars,omitempty" yaml:"envVars,omitempty"`
	Resources string            `json:"resources,omitempty" yaml:"resources,omitempty"`
}
