package kubeutils

import (
	"context"
	"fmt"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// PodMetrics is the per-container resource usage of one pod.
type PodMetrics struct {
	PodName     string `json:"podName"`
	Container   string `json:"container"`
	CPUMilli    int64  `json:"cpuMilli"`
	MemoryBytes int64  `json:"memoryBytes"`
	GPU         int64  `json:"gpu"`
}

// GetPodMetrics reads current usage from the metrics server for pods
// matching the label selector.
func (kc *KubernetesConfig) GetPodMetrics(ctx context.Context, namespace, selector string) ([]PodMetrics, error) {
	list, err := kc.MetricsClient.MetricsV1beta1().PodMetricses(namespace).List(ctx, metav1.ListOptions{
		LabelSelector: selector,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get pod metrics: %w", err)
	}

	var out []PodMetrics
	for _, pm := range list.Items {
		for _, container := range pm.Containers {
			gpu := int64(0)
			if q, ok := container.Usage[gpuResourceName]; ok {
				gpu = q.Value()
			}
			out = append(out, PodMetrics{
				PodName:     pm.Name,
				Container:   container.Name,
				CPUMilli:    container.Usage.Cpu().MilliValue(),
				MemoryBytes: container.Usage.Memory().Value(),
				GPU:         gpu,
			})
		}
	}
	return out, nil
}
