package kubeutils

import (
	"context"
	"fmt"
	"strings"

	apiv1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// NodeResources is the allocatable (or remaining) capacity of one node.
type NodeResources struct {
	Name   string `json:"name"`
	CPU    int64  `json:"cpu"`
	Memory int64  `json:"memoryGi"`
	GPU    int64  `json:"gpu"`
}

// ParseResources parses the platform's compact resource string, e.g.
// "cpu=4,memory=2048M,nvidia.com/gpu=1", into pod resource requirements.
// Requests and limits are set to the same values.
func ParseResources(spec string) (apiv1.ResourceRequirements, error) {
	requests := apiv1.ResourceList{}
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			return apiv1.ResourceRequirements{}, fmt.Errorf("invalid resource entry %q", part)
		}
		q, err := resource.ParseQuantity(kv[1])
		if err != nil {
			return apiv1.ResourceRequirements{}, fmt.Errorf("invalid quantity for %s: %w", kv[0], err)
		}
		switch kv[0] {
		case "cpu":
			requests[apiv1.ResourceCPU] = q
		case "memory":
			requests[apiv1.ResourceMemory] = q
		default:
			requests[apiv1.ResourceName(kv[0])] = q
		}
	}
	limits := apiv1.ResourceList{}
	for k, v := range requests {
		limits[k] = v.DeepCopy()
	}
	return apiv1.ResourceRequirements{Requests: requests, Limits: limits}, nil
}

// nodeRemaining keeps the remaining capacity of one node at full
// precision. NodeResources floors it for reporting only.
type nodeRemaining struct {
	name        string
	cpuMilli    int64
	memoryBytes int64
	gpu         int64
}

func (kc *KubernetesConfig) remainingByNode(ctx context.Context) ([]nodeRemaining, error) {
	nodes, err := kc.Clientset.CoreV1().Nodes().List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list nodes: %w", err)
	}

	var out []nodeRemaining
	for _, node := range nodes.Items {
		pods, err := kc.Clientset.CoreV1().Pods("").List(ctx, metav1.ListOptions{
			FieldSelector: "spec.nodeName=" + node.Name,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list pods on %s: %w", node.Name, err)
		}

		usedCPU := resource.Quantity{}
		usedMemory := resource.Quantity{}
		usedGPU := resource.Quantity{}
		for _, pod := range pods.Items {
			for _, container := range pod.Spec.Containers {
				usedCPU.Add(container.Resources.Requests[apiv1.ResourceCPU])
				usedMemory.Add(container.Resources.Requests[apiv1.ResourceMemory])
				if val, ok := container.Resources.Requests[gpuResourceName]; ok {
					usedGPU.Add(val)
				}
			}
		}

		remainingCPU := node.Status.Allocatable[apiv1.ResourceCPU]
		remainingCPU.Sub(usedCPU)
		remainingMemory := node.Status.Allocatable[apiv1.ResourceMemory]
		remainingMemory.Sub(usedMemory)
		remainingGPU := node.Status.Allocatable[gpuResourceName]
		remainingGPU.Sub(usedGPU)

		out = append(out, nodeRemaining{
			name:        node.Name,
			cpuMilli:    remainingCPU.MilliValue(),
			memoryBytes: remainingMemory.Value(),
			gpu:         remainingGPU.Value(),
		})
	}
	return out, nil
}

// GetRemainingNodeResources computes per-node capacity minus the requests of
// every scheduled pod, floored to whole cores and GiB for reporting.
func (kc *KubernetesConfig) GetRemainingNodeResources(ctx context.Context) ([]NodeResources, error) {
	remaining, err := kc.remainingByNode(ctx)
	if err != nil {
		return nil, err
	}

	var out []NodeResources
	for _, node := range remaining {
		out = append(out, NodeResources{
			Name:   node.name,
			CPU:    node.cpuMilli / 1000,
			Memory: node.memoryBytes / (1024 * 1024 * 1024),
			GPU:    node.gpu,
		})
	}
	return out, nil
}

// GetTotalNodeResources reports the allocatable capacity of every node.
func (kc *KubernetesConfig) GetTotalNodeResources(ctx context.Context) ([]NodeResources, error) {
	nodes, err := kc.Clientset.CoreV1().Nodes().List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list nodes: %w", err)
	}

	var out []NodeResources
	for _, node := range nodes.Items {
		cpu := node.Status.Allocatable[apiv1.ResourceCPU]
		memory := node.Status.Allocatable[apiv1.ResourceMemory]
		gpu := node.Status.Allocatable[gpuResourceName]
		out = append(out, NodeResources{
			Name:   node.Name,
			CPU:    cpu.MilliValue() / 1000,
			Memory: memory.Value() / (1024 * 1024 * 1024),
			GPU:    gpu.Value(),
		})
	}
	return out, nil
}

// CheckAvailability reports whether any single node can satisfy the given
// requests. Comparison happens in milli-CPU and bytes so fractional
// capacity still counts.
func (kc *KubernetesConfig) CheckAvailability(ctx context.Context, reqs apiv1.ResourceRequirements) (bool, error) {
	nodes, err := kc.remainingByNode(ctx)
	if err != nil {
		return false, err
	}

	wantCPU := reqs.Requests[apiv1.ResourceCPU]
	wantMemory := reqs.Requests[apiv1.ResourceMemory]
	wantGPU := reqs.Requests[gpuResourceName]

	for _, node := range nodes {
		if node.cpuMilli < wantCPU.MilliValue() {
			continue
		}
		if node.memoryBytes < wantMemory.Value() {
			continue
		}
		if node.gpu < wantGPU.Value() {
			continue
		}
		return true, nil
	}
	return false, fmt.Errorf("no node can satisfy the requested resources")
}

var gpuResourceName = apiv1.ResourceName("nvidia.com/gpu")
