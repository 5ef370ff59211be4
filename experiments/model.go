package experiments

import (
	"time"

	"submarine-api/pkg/client/model"
)

// Experiment is the server-side record of a submitted experiment.
type Experiment struct {
	ExperimentID string                `json:"experimentId" yaml:"experimentId"`
	Name         string                `json:"name" yaml:"name"`
	Status       string                `json:"status" yaml:"status"`
	AcceptedTime time.Time             `json:"acceptedTime" yaml:"acceptedTime"`
	Spec         *model.ExperimentSpec `json:"spec" yaml:"spec"`
}

// ExperimentLog pairs an experiment with the log content of its pods.
type ExperimentLog struct {
	ExperimentID string   `json:"experimentId"`
	LogContent   []PodLog `json:"logContent"`
}

type PodLog struct {
	PodName string `json:"podName"`
	Log     string `json:"podLog,omitempty"`
}
