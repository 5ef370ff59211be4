package experiments

import (
	"fmt"
	"sort"
	"strings"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"submarine-api/kubeutils"
	"submarine-api/pkg/client/model"
)

// Per-framework field names inside the custom resource spec.
var replicaSpecKeys = map[string]string{
	"tensorflow": "tfReplicaSpecs",
	"pytorch":    "pytorchReplicaSpecs",
	"xgboost":    "xgbReplicaSpecs",
}

// The training operator requires the main container to be named after the
// framework.
var containerNames = map[string]string{
	"tensorflow": "tensorflow",
	"pytorch":    "pytorch",
	"xgboost":    "xgboost",
}

// BuildTrainingJob renders an experiment spec into the training operator's
// custom resource. Task env vars are merged over the shared meta env vars,
// plus the platform-injected ones.
func BuildTrainingJob(spec *model.ExperimentSpec, id, namespace, trackingURI string) (*unstructured.Unstructured, error) {
	framework := strings.ToLower(spec.Meta.Framework)
	_, kind, err := kubeutils.TrainingJobResource(framework)
	if err != nil {
		return nil, err
	}

	replicaSpecs := map[string]any{}
	for role, task := range spec.Spec {
		container, err := taskContainer(spec, task, framework, id, trackingURI)
		if err != nil {
			return nil, fmt.Errorf("task %s: %w", role, err)
		}
		replicaSpecs[role] = map[string]any{
			"replicas":      int64(task.Replicas),
			"restartPolicy": "OnFailure",
			"template": map[string]any{
				"metadata": map[string]any{
					"labels": map[string]any{"app": id},
				},
				"spec": map[string]any{
					"containers": []any{container},
				},
			},
		}
	}

	job := &unstructured.Unstructured{
		Object: map[string]any{
			"apiVersion": "kubeflow.org/v1",
			"kind":       kind,
			"metadata": map[string]any{
				"name":      id,
				"namespace": namespace,
				"labels": map[string]any{
					"app":             id,
					"experiment-name": spec.Meta.Name,
				},
			},
			"spec": map[string]any{
				replicaSpecKeys[framework]: replicaSpecs,
			},
		},
	}
	return job, nil
}

func taskContainer(spec *model.ExperimentSpec, task *model.ExperimentTaskSpec, framework, id, trackingURI string) (map[string]any, error) {
	image := task.Image
	if image == "" {
		image = spec.Environment.DockerImage
	}
	cmd := task.Cmd
	if cmd == "" {
		cmd = spec.Meta.Cmd
	}
	if cmd == "" {
		return nil, fmt.Errorf("no command to run")
	}

	container := map[string]any{
		"name":    containerNames[framework],
		"image":   image,
		"command": []any{"/bin/sh", "-c", cmd},
		"env":     containerEnv(spec, task, id, trackingURI),
	}

	if task.Resources != "" {
		reqs, err := kubeutils.ParseResources(task.Resources)
		if err != nil {
			return nil, err
		}
		requests := map[string]any{}
		for name, q := range reqs.Requests {
			requests[string(name)] = q.String()
		}
		limits := map[string]any{}
		for name, q := range reqs.Limits {
			limits[string(name)] = q.String()
		}
		container["resources"] = map[string]any{
			"requests": requests,
			"limits":   limits,
		}
	}
	return container, nil
}

// containerEnv merges meta env vars, task env vars (task wins) and the
// platform-injected ones, in stable order.
func containerEnv(spec *model.ExperimentSpec, task *model.ExperimentTaskSpec, id, trackingURI string) []any {
	merged := map[string]string{}
	for k, v := range spec.Meta.EnvVars {
		merged[k] = v
	}
	for k, v := range task.EnvVars {
		merged[k] = v
	}
	merged[EnvJobID] = id
	merged[EnvLogDir] = "/logs/" + id
	if trackingURI != "" {
		merged[EnvTrackingURI] = trackingURI
	}

	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	env := make([]any, 0, len(keys))
	for _, k := range keys {
		env = append(env, map[string]any{"name": k, "value": merged[k]})
	}
	return env
}
