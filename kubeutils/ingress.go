package kubeutils

import (
	"context"
	"strings"

	networkingv1 "k8s.io/api/networking/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// AppendRuleToIngress adds a prefix path rule routing to the given service
// on port 80. Adding an already present path is a no-op.
func (kc *KubernetesConfig) AppendRuleToIngress(ctx context.Context, namespace, ingressName, serviceName, path string) error {
	ingressClient := kc.Clientset.NetworkingV1().Ingresses(namespace)

	ingress, err := ingressClient.Get(ctx, ingressName, metav1.GetOptions{})
	if err != nil {
		return err
	}

	pathType := networkingv1.PathTypePrefix
	newPath := networkingv1.HTTPIngressPath{
		Path:     path,
		PathType: &pathType,
		Backend: networkingv1.IngressBackend{
			Service: &networkingv1.IngressServiceBackend{
				Name: serviceName,
				Port: networkingv1.ServiceBackendPort{Number: 80},
			},
		},
	}

	for i := range ingress.Spec.Rules {
		if ingress.Spec.Rules[i].HTTP == nil {
			continue
		}
		for _, p := range ingress.Spec.Rules[i].HTTP.Paths {
			if p.Path == newPath.Path {
				return nil
			}
		}
		ingress.Spec.Rules[i].HTTP.Paths = append(ingress.Spec.Rules[i].HTTP.Paths, newPath)
	}

	_, err = ingressClient.Update(ctx, ingress, metav1.UpdateOptions{})
	return err
}

// DeleteRuleFromIngress removes a path rule. Missing paths are ignored.
func (kc *KubernetesConfig) DeleteRuleFromIngress(ctx context.Context, namespace, ingressName, path string) error {
	ingressClient := kc.Clientset.NetworkingV1().Ingresses(namespace)

	ingress, err := ingressClient.Get(ctx, ingressName, metav1.GetOptions{})
	if err != nil {
		return err
	}

	targetPath := path
	if !strings.HasPrefix(targetPath, "/") {
		targetPath = "/" + targetPath
	}

	updated := false
	for i := range ingress.Spec.Rules {
		if ingress.Spec.Rules[i].HTTP == nil {
			continue
		}
		paths := ingress.Spec.Rules[i].HTTP.Paths
		filtered := make([]networkingv1.HTTPIngressPath, 0, len(paths))
		for _, p := range paths {
			if p.Path == targetPath {
				updated = true
				continue
			}
			filtered = append(filtered, p)
		}
		ingress.Spec.Rules[i].HTTP.Paths = filtered
	}

	if !updated {
		return nil
	}

	_, err = ingressClient.Update(ctx, ingress, metav1.UpdateOptions{})
	return err
}
