package kubeutils

import (
	"context"
	"fmt"
	"strings"

	"k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

// Training operator custom resources, all served under kubeflow.org/v1.
var trainingJobResources = map[string]schema.GroupVersionResource{
	"tensorflow": {Group: "kubeflow.org", Version: "v1", Resource: "tfjobs"},
	"pytorch":    {Group: "kubeflow.org", Version: "v1", Resource: "pytorchjobs"},
	"xgboost":    {Group: "kubeflow.org", Version: "v1", Resource: "xgboostjobs"},
}

var trainingJobKinds = map[string]string{
	"tensorflow": "TFJob",
	"pytorch":    "PyTorchJob",
	"xgboost":    "XGBoostJob",
}

// TrainingJobResource maps a framework name to its custom resource. The
// lookup is case insensitive.
func TrainingJobResource(framework string) (schema.GroupVersionResource, string, error) {
	key := strings.ToLower(framework)
	gvr, ok := trainingJobResources[key]
	if !ok {
		return schema.GroupVersionResource{}, "", fmt.Errorf("unsupported training framework %q", framework)
	}
	return gvr, trainingJobKinds[key], nil
}

func (kc *KubernetesConfig) CreateTrainingJob(ctx context.Context, namespace, framework string, job *unstructured.Unstructured) error {
	gvr, _, err := TrainingJobResource(framework)
	if err != nil {
		return err
	}
	_, err = kc.DynamicClient.Resource(gvr).Namespace(namespace).Create(ctx, job, metav1.CreateOptions{})
	if err != nil {
		return fmt.Errorf("failed to create %s job: %w", framework, err)
	}
	return nil
}

func (kc *KubernetesConfig) GetTrainingJob(ctx context.Context, namespace, framework, name string) (*unstructured.Unstructured, error) {
	gvr, _, err := TrainingJobResource(framework)
	if err != nil {
		return nil, err
	}
	job, err := kc.DynamicClient.Resource(gvr).Namespace(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s job %s: %w", framework, name, err)
	}
	return job, nil
}

// DeleteTrainingJob removes the job custom resource. A missing job is not
// an error.
func (kc *KubernetesConfig) DeleteTrainingJob(ctx context.Context, namespace, framework, name string) error {
	gvr, _, err := TrainingJobResource(framework)
	if err != nil {
		return err
	}
	deletePolicy := metav1.DeletePropagationForeground
	err = kc.DynamicClient.Resource(gvr).Namespace(namespace).Delete(ctx, name, metav1.DeleteOptions{
		PropagationPolicy: &deletePolicy,
	})
	if err != nil && !errors.IsNotFound(err) {
		return fmt.Errorf("failed to delete %s job %s: %w", framework, name, err)
	}
	return nil
}
