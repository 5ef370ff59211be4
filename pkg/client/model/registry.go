package model

import "time"

// RegisteredModelEntity is a named model in the registry. Versions hang off
// the name.
type RegisteredModelEntity struct {
	Name            string    `json:"name,omitempty" yaml:"name,omitempty"`
	CreationTime    time.Time `json:"creationTime,omitempty" yaml:"creationTime,omitempty"`
	LastUpdatedTime time.Time `json:"lastUpdatedTime,omitempty" yaml:"lastUpdatedTime,omitempty"`
	Description     string    `json:"description,omitempty" yaml:"description,omitempty"`
	Tags            []string  `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// ModelVersionEntity is one immutable version of a registered model, usually
// produced by an experiment.
type ModelVersionEntity struct {
	Name            string    `json:"name,omitempty" yaml:"name,omitempty"`
	Version         int32     `json:"version,omitempty" yaml:"version,omitempty"`
	ID              string    `json:"id,omitempty" yaml:"id,omitempty"`
	UserID          string    `json:"userId,omitempty" yaml:"userId,omitempty"`
	ExperimentID    string    `json:"experimentId,omitempty" yaml:"experimentId,omitempty"`
	ModelType       string    `json:"modelType,omitempty" yaml:"modelType,omitempty"`
	CurrentStage    string    `json:"currentStage,omitempty" yaml:"currentStage,omitempty"`
	CreationTime    time.Time `json:"creationTime,omitempty" yaml:"creationTime,omitempty"`
	LastUpdatedTime time.Time `json:"lastUpdatedTime,omitempty" yaml:"lastUpdatedTime,omitempty"`
	Dataset         string    `json:"dataset,omitempty" yaml:"dataset,omitempty"`
	Description     string    `json:"description,omitempty" yaml:"description,omitempty"`
	Tags            []string  `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Model version stages.
const (
	StageNone       = "None"
	StageStaging    = "Staging"
	StageProduction = "Production"
	StageArchived   = "Archived"
)
