package kubeutils

import (
	"context"
	"fmt"
	"time"

	apiv1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// PodInfo is the condensed pod view returned by list endpoints.
type PodInfo struct {
	Name     string `json:"name"`
	Ready    string `json:"ready"`
	Status   string `json:"status"`
	Restarts int32  `json:"restarts"`
	Age      string `json:"age"`
}

// PodEvent is one cluster event attached to a pod.
type PodEvent struct {
	PodName string `json:"podName"`
	Type    string `json:"type"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

func podStatus(pod *apiv1.Pod) string {
	if pod.DeletionTimestamp != nil {
		return "Terminating"
	}
	for _, cs := range pod.Status.ContainerStatuses {
		if cs.State.Terminated != nil {
			if cs.State.Terminated.Reason != "" {
				return cs.State.Terminated.Reason
			}
			return fmt.Sprintf("ExitCode:%d", cs.State.Terminated.ExitCode)
		}
		if cs.State.Waiting != nil && cs.State.Waiting.Reason != "" {
			return cs.State.Waiting.Reason
		}
	}
	return string(pod.Status.Phase)
}

func podInfo(pod *apiv1.Pod) PodInfo {
	var restarts int32
	var ready int
	for _, cs := range pod.Status.ContainerStatuses {
		restarts += cs.RestartCount
		if cs.Ready {
			ready++
		}
	}
	age := time.Since(pod.GetCreationTimestamp().Time).Round(time.Second)
	return PodInfo{
		Name:     pod.GetName(),
		Ready:    fmt.Sprintf("%d/%d", ready, len(pod.Spec.Containers)),
		Status:   podStatus(pod),
		Restarts: restarts,
		Age:      age.String(),
	}
}

// ListPods returns the condensed view of every pod matching the label
// selector. An empty selector matches the whole namespace.
func (kc *KubernetesConfig) ListPods(ctx context.Context, namespace, selector string) ([]PodInfo, error) {
	pods, err := kc.Clientset.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{
		LabelSelector: selector,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list pods: %w", err)
	}

	out := make([]PodInfo, 0, len(pods.Items))
	for i := range pods.Items {
		out = append(out, podInfo(&pods.Items[i]))
	}
	return out, nil
}

// GetPodDetail returns the first pod labeled app=<name>.
func (kc *KubernetesConfig) GetPodDetail(ctx context.Context, namespace, name string) (*PodInfo, error) {
	pods, err := kc.ListPods(ctx, namespace, "app="+name)
	if err != nil {
		return nil, err
	}
	if len(pods) == 0 {
		return nil, fmt.Errorf("no pods found for %s", name)
	}
	return &pods[0], nil
}

// GetPodEvents lists the cluster events of every pod matching the selector.
func (kc *KubernetesConfig) GetPodEvents(ctx context.Context, namespace, selector string) ([]PodEvent, error) {
	pods, err := kc.Clientset.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{
		LabelSelector: selector,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list pods: %w", err)
	}

	var out []PodEvent
	for _, pod := range pods.Items {
		events, err := kc.Clientset.CoreV1().Events(namespace).List(ctx, metav1.ListOptions{
			FieldSelector: "involvedObject.name=" + pod.Name,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list events for pod %s: %w", pod.Name, err)
		}
		for _, event := range events.Items {
			out = append(out, PodEvent{
				PodName: pod.Name,
				Type:    event.Type,
				Reason:  event.Reason,
				Message: event.Message,
			})
		}
	}
	return out, nil
}
