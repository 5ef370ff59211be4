package kubeutils

import (
	"context"
	"testing"

	apiv1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"
)

func testNode(name, cpu, memory, gpu string) *apiv1.Node {
	return &apiv1.Node{
		ObjectMeta: metav1.ObjectMeta{Name: name},
		Status: apiv1.NodeStatus{
			Allocatable: apiv1.ResourceList{
				apiv1.ResourceCPU:    resource.MustParse(cpu),
				apiv1.ResourceMemory: resource.MustParse(memory),
				gpuResourceName:      resource.MustParse(gpu),
			},
		},
	}
}

func TestParseResources(t *testing.T) {
	reqs, err := ParseResources("cpu=4,memory=2048M,nvidia.com/gpu=1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	cpu := reqs.Requests[apiv1.ResourceCPU]
	if cpu.MilliValue() != 4000 {
		t.Errorf("expected 4000m cpu, got %s", cpu.String())
	}
	memory := reqs.Requests[apiv1.ResourceMemory]
	if memory.String() != "2048M" {
		t.Errorf("expected 2048M memory, got %s", memory.String())
	}
	gpu := reqs.Requests[gpuResourceName]
	if gpu.Value() != 1 {
		t.Errorf("expected 1 gpu, got %s", gpu.String())
	}

	limitCPU := reqs.Limits[apiv1.ResourceCPU]
	if limitCPU.MilliValue() != 4000 {
		t.Errorf("expected limits to mirror requests, got %s", limitCPU.String())
	}
}

func TestParseResourcesRejectsMalformedEntries(t *testing.T) {
	if _, err := ParseResources("cpu"); err == nil {
		t.Error("expected error for entry without value")
	}
	if _, err := ParseResources("cpu=abc"); err == nil {
		t.Error("expected error for unparsable quantity")
	}
}

func TestGetTotalNodeResources(t *testing.T) {
	kc := &KubernetesConfig{
		Clientset: fake.NewSimpleClientset(testNode("node1", "8", "16Gi", "2")),
	}

	nodes, err := kc.GetTotalNodeResources(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(nodes) != 1 {
		t.Fatalf("expected one node, got %d", len(nodes))
	}
	if nodes[0].CPU != 8 {
		t.Errorf("expected 8 cpu, got %d", nodes[0].CPU)
	}
	if nodes[0].Memory != 16 {
		t.Errorf("expected 16Gi memory, got %d", nodes[0].Memory)
	}
	if nodes[0].GPU != 2 {
		t.Errorf("expected 2 gpu, got %d", nodes[0].GPU)
	}
}

func TestCheckAvailability(t *testing.T) {
	kc := &KubernetesConfig{
		Clientset: fake.NewSimpleClientset(testNode("node1", "4", "8Gi", "0")),
	}

	fits, err := ParseResources("cpu=2,memory=4Gi")
	if err != nil {
		t.Fatal(err)
	}
	ok, err := kc.CheckAvailability(context.Background(), fits)
	if err != nil || !ok {
		t.Errorf("expected request to fit, got ok=%v err=%v", ok, err)
	}

	tooBig, err := ParseResources("cpu=16,memory=4Gi")
	if err != nil {
		t.Fatal(err)
	}
	ok, err = kc.CheckAvailability(context.Background(), tooBig)
	if ok || err == nil {
		t.Errorf("expected request not to fit, got ok=%v err=%v", ok, err)
	}
}

func TestCheckAvailabilityFractionalCapacity(t *testing.T) {
	kc := &KubernetesConfig{
		Clientset: fake.NewSimpleClientset(testNode("node1", "900m", "1500Mi", "0")),
	}

	fits, err := ParseResources("cpu=500m,memory=1Gi")
	if err != nil {
		t.Fatal(err)
	}
	ok, err := kc.CheckAvailability(context.Background(), fits)
	if err != nil || !ok {
		t.Errorf("sub-core capacity should satisfy a sub-core request, got ok=%v err=%v", ok, err)
	}

	tooBig, err := ParseResources("cpu=1")
	if err != nil {
		t.Fatal(err)
	}
	ok, err = kc.CheckAvailability(context.Background(), tooBig)
	if ok || err == nil {
		t.Errorf("expected 1 cpu not to fit on 900m, got ok=%v err=%v", ok, err)
	}
}

func TestListPodsCondensesStatus(t *testing.T) {
	pod := &apiv1.Pod{
		ObjectMeta: metav1.ObjectMeta{
			Name:      "notebook-abc-0",
			Namespace: "submarine",
			Labels:    map[string]string{"app": "notebook-abc"},
		},
		Spec: apiv1.PodSpec{
			Containers: []apiv1.Container{{Name: "notebook"}},
		},
		Status: apiv1.PodStatus{
			Phase: apiv1.PodRunning,
			ContainerStatuses: []apiv1.ContainerStatus{
				{Name: "notebook", Ready: true, RestartCount: 2},
			},
		},
	}
	kc := &KubernetesConfig{Clientset: fake.NewSimpleClientset(pod)}

	pods, err := kc.ListPods(context.Background(), "submarine", "app=notebook-abc")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(pods) != 1 {
		t.Fatalf("expected one pod, got %d", len(pods))
	}
	if pods[0].Status != "Running" {
		t.Errorf("expected Running, got %s", pods[0].Status)
	}
	if pods[0].Ready != "1/1" {
		t.Errorf("expected 1/1 ready, got %s", pods[0].Ready)
	}
	if pods[0].Restarts != 2 {
		t.Errorf("expected 2 restarts, got %d", pods[0].Restarts)
	}
}

func TestEnsureNamespaceIsIdempotent(t *testing.T) {
	kc := &KubernetesConfig{Clientset: fake.NewSimpleClientset()}
	ctx := context.Background()

	if err := kc.EnsureNamespace(ctx, "submarine"); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if err := kc.EnsureNamespace(ctx, "submarine"); err != nil {
		t.Fatalf("second create should be a no-op, got %v", err)
	}
}

func TestServiceLifecycle(t *testing.T) {
	kc := &KubernetesConfig{Clientset: fake.NewSimpleClientset()}
	ctx := context.Background()

	if err := kc.CreateService(ctx, "submarine", "notebook-abc", "notebook-abc", 8888, apiv1.ServiceTypeClusterIP); err != nil {
		t.Fatalf("create service failed: %v", err)
	}

	ok, err := kc.ServiceExists(ctx, "submarine", "notebook-abc")
	if err != nil || !ok {
		t.Fatalf("expected service to exist, got ok=%v err=%v", ok, err)
	}

	if err := kc.DeleteService(ctx, "submarine", "notebook-abc"); err != nil {
		t.Fatalf("delete service failed: %v", err)
	}

	ok, err = kc.ServiceExists(ctx, "submarine", "notebook-abc")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("expected service to be gone")
	}
}

func TestTrainingJobResource(t *testing.T) {
	gvr, kind, err := TrainingJobResource("TensorFlow")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if gvr.Group != "kubeflow.org" || gvr.Resource != "tfjobs" {
		t.Errorf("unexpected resource %v", gvr)
	}
	if kind != "TFJob" {
		t.Errorf("expected TFJob, got %s", kind)
	}

	if _, _, err := TrainingJobResource("mxnet"); err == nil {
		t.Error("expected error for unsupported framework")
	}
}
