package experiments

import (
	"fmt"

	"submarine-api/kubeutils"
	"submarine-api/pkg/client/model"
)

// ValidateSpec checks an experiment spec before anything touches the
// cluster: metadata, a supported framework, at least one task and parsable
// resource strings.
func ValidateSpec(spec *model.ExperimentSpec) error {
	if spec == nil || spec.Meta == nil {
		return fmt.Errorf("experiment meta is required")
	}
	if spec.Meta.Name == "" {
		return fmt.Errorf("experiment name is required")
	}
	if _, _, err := kubeutils.TrainingJobResource(spec.Meta.Framework); err != nil {
		return err
	}
	if len(spec.Spec) == 0 {
		return fmt.Errorf("experiment needs at least one task spec")
	}

	for role, task := range spec.Spec {
		if task == nil {
			return fmt.Errorf("task spec %s is empty", role)
		}
		if task.Replicas <= 0 {
			return fmt.Errorf("task %s: replicas must be positive", role)
		}
		if task.Image == "" && (spec.Environment == nil || spec.Environment.DockerImage == "") {
			return fmt.Errorf("task %s: no image and no environment image", role)
		}
		if task.Resources != "" {
			if _, err := kubeutils.ParseResources(task.Resources); err != nil {
				return fmt.Errorf("task %s: %w", role, err)
			}
		}
	}

	if spec.Code != nil {
		if spec.Code.SyncMode != CodeSyncModeGit {
			return fmt.Errorf("unsupported code sync mode %q", spec.Code.SyncMode)
		}
		if spec.Code.Git == nil || spec.Code.Git.URL == "" {
			return fmt.Errorf("git code sync needs a repository url")
		}
	}
	return nil
}
