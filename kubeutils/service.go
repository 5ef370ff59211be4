package kubeutils

import (
	"context"
	"fmt"

	apiv1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"
)

// CreateService exposes pods labeled app=<selector> on port 80, targeting
// the given container port.
func (kc *KubernetesConfig) CreateService(ctx context.Context, namespace, name, selector string, targetPort int, serviceType apiv1.ServiceType) error {
	service := &apiv1.Service{
		ObjectMeta: metav1.ObjectMeta{
			Name:   name,
			Labels: map[string]string{"app": selector},
		},
		Spec: apiv1.ServiceSpec{
			Type: serviceType,
			Ports: []apiv1.ServicePort{
				{
					Port:       80,
					TargetPort: intstr.FromInt(targetPort),
				},
			},
			Selector: map[string]string{"app": selector},
		},
	}

	_, err := kc.Clientset.CoreV1().Services(namespace).Create(ctx, service, metav1.CreateOptions{})
	if err != nil {
		return fmt.Errorf("failed to create service %s: %w", name, err)
	}
	return nil
}

func (kc *KubernetesConfig) DeleteService(ctx context.Context, namespace, name string) error {
	deletePolicy := metav1.DeletePropagationForeground
	err := kc.Clientset.CoreV1().Services(namespace).Delete(ctx, name, metav1.DeleteOptions{
		PropagationPolicy: &deletePolicy,
	})
	if err != nil {
		return fmt.Errorf("failed to delete service %s: %w", name, err)
	}
	return nil
}

func (kc *KubernetesConfig) ServiceExists(ctx context.Context, namespace, name string) (bool, error) {
	_, err := kc.Clientset.CoreV1().Services(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		if errors.IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get service %s: %w", name, err)
	}
	return true, nil
}
