package kubeutils

import (
	"context"
	"fmt"

	appsv1 "k8s.io/api/apps/v1"
	apiv1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// DeploymentOptions describes a single-replica stateless workload.
type DeploymentOptions struct {
	Name      string
	Image     string
	Port      int
	Labels    map[string]string
	Env       []apiv1.EnvVar
	Resources apiv1.ResourceRequirements
	Volumes   []apiv1.Volume
	Mounts    []apiv1.VolumeMount
}

func (kc *KubernetesConfig) CreateDeployment(ctx context.Context, namespace string, opts DeploymentOptions) error {
	labels := map[string]string{"app": opts.Name}
	for k, v := range opts.Labels {
		labels[k] = v
	}

	container := buildContainer(opts.Name, opts.Image, opts.Port, opts.Mounts, opts.Env)
	container.Resources = opts.Resources

	deployment := &appsv1.Deployment{
		ObjectMeta: metav1.ObjectMeta{
			Name:      opts.Name,
			Namespace: namespace,
			Labels:    labels,
		},
		Spec: appsv1.DeploymentSpec{
			Replicas: int32Ptr(1),
			Selector: &metav1.LabelSelector{
				MatchLabels: map[string]string{"app": opts.Name},
			},
			Template: apiv1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{
					Labels: labels,
				},
				Spec: apiv1.PodSpec{
					Volumes:    opts.Volumes,
					Containers: []apiv1.Container{container},
				},
			},
		},
	}

	_, err := kc.Clientset.AppsV1().Deployments(namespace).Create(ctx, deployment, metav1.CreateOptions{})
	if err != nil {
		return fmt.Errorf("failed to create deployment %s: %w", opts.Name, err)
	}
	return nil
}

func (kc *KubernetesConfig) DeleteDeployment(ctx context.Context, namespace, name string) error {
	deletePolicy := metav1.DeletePropagationForeground
	err := kc.Clientset.AppsV1().Deployments(namespace).Delete(ctx, name, metav1.DeleteOptions{
		PropagationPolicy: &deletePolicy,
	})
	if err != nil {
		return fmt.Errorf("failed to delete deployment %s: %w", name, err)
	}
	return nil
}

func (kc *KubernetesConfig) DeploymentExists(ctx context.Context, namespace, name string) (bool, error) {
	_, err := kc.Clientset.AppsV1().Deployments(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		if errors.IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get deployment %s: %w", name, err)
	}
	return true, nil
}
