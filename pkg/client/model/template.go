package model

// ExperimentTemplateSpec is a reusable, parameterized experiment definition.
// Placeholders of the form {{name}} inside ExperimentSpec are replaced with
// parameter values at submit time.
type ExperimentTemplateSpec struct {
	Name           string                         `json:"name,omitempty" yaml:"name,omitempty"`
	Author         string                         `json:"author,omitempty" yaml:"author,omitempty"`
	Description    string                         `json:"description,omitempty" yaml:"description,omitempty"`
	Parameters     []*ExperimentTemplateParamSpec `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	ExperimentSpec *ExperimentSpec                `json:"experimentSpec,omitempty" yaml:"experimentSpec,omitempty"`
}

// ExperimentTemplateParamSpec declares one template parameter. Required is the
// string "true" or "false" on the wire.
type ExperimentTemplateParamSpec struct {
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
	Required    string `json:"required,omitempty" yaml:"required,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Value       string `json:"value,omitempty" yaml:"value,omitempty"`
}

// ExperimentTemplateSubmit carries the parameter values used to instantiate a
// template into an experiment.
type ExperimentTemplateSubmit struct {
	Name   string            `json:"name,omitempty" yaml:"name,omitempty"`
	Params map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
}
