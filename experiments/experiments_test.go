package experiments

import (
	"context"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"submarine-api/pkg/client/model"
)

func validSpec() *model.ExperimentSpec {
	return &model.ExperimentSpec{
		Meta: &model.ExperimentMeta{
			Name:      "mnist",
			Framework: "TensorFlow",
			Cmd:       "python /var/tf_mnist/mnist_with_summaries.py",
			EnvVars:   map[string]string{"ENV_1": "ENV1"},
		},
		Environment: &model.EnvironmentSpec{
			DockerImage: "apache/submarine:tf-mnist-with-summaries-1.0",
		},
		Spec: map[string]*model.ExperimentTaskSpec{
			"Worker": {
				Replicas:  2,
				Resources: "cpu=1,memory=1024M",
			},
		},
	}
}

func TestNewIDFormat(t *testing.T) {
	id := newID()
	if !strings.HasPrefix(id, IDPrefix) {
		t.Errorf("expected %s prefix, got %s", IDPrefix, id)
	}
	if len(id) != len(IDPrefix)+8 {
		t.Errorf("expected 8 char suffix, got %s", id)
	}
	if id == newID() {
		t.Error("ids should be unique")
	}
}

func TestValidateSpec(t *testing.T) {
	if err := ValidateSpec(validSpec()); err != nil {
		t.Fatalf("expected valid spec, got %v", err)
	}

	missingMeta := validSpec()
	missingMeta.Meta = nil
	if err := ValidateSpec(missingMeta); err == nil {
		t.Error("expected error for missing meta")
	}

	badFramework := validSpec()
	badFramework.Meta.Framework = "mxnet"
	if err := ValidateSpec(badFramework); err == nil {
		t.Error("expected error for unsupported framework")
	}

	noTasks := validSpec()
	noTasks.Spec = nil
	if err := ValidateSpec(noTasks); err == nil {
		t.Error("expected error for missing task specs")
	}

	zeroReplicas := validSpec()
	zeroReplicas.Spec["Worker"].Replicas = 0
	if err := ValidateSpec(zeroReplicas); err == nil {
		t.Error("expected error for zero replicas")
	}

	badResources := validSpec()
	badResources.Spec["Worker"].Resources = "cpu"
	if err := ValidateSpec(badResources); err == nil {
		t.Error("expected error for malformed resources")
	}

	noImage := validSpec()
	noImage.Environment = nil
	if err := ValidateSpec(noImage); err == nil {
		t.Error("expected error when neither task nor environment has an image")
	}

	badSync := validSpec()
	badSync.Code = &model.CodeSpec{SyncMode: "svn"}
	if err := ValidateSpec(badSync); err == nil {
		t.Error("expected error for unsupported sync mode")
	}
}

func TestBuildTrainingJob(t *testing.T) {
	spec := validSpec()
	job, err := BuildTrainingJob(spec, "experiment-abcd1234", "submarine", "http://tracking:5000")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if job.GetKind() != "TFJob" {
		t.Errorf("expected TFJob, got %s", job.GetKind())
	}
	if job.GetName() != "experiment-abcd1234" {
		t.Errorf("unexpected name %s", job.GetName())
	}
	if job.GetNamespace() != "submarine" {
		t.Errorf("unexpected namespace %s", job.GetNamespace())
	}

	replicas, found, err := unstructured.NestedInt64(job.Object, "spec", "tfReplicaSpecs", "Worker", "replicas")
	if err != nil || !found {
		t.Fatalf("worker replicas missing: found=%v err=%v", found, err)
	}
	if replicas != 2 {
		t.Errorf("expected 2 replicas, got %d", replicas)
	}

	containers, found, err := unstructured.NestedSlice(job.Object, "spec", "tfReplicaSpecs", "Worker", "template", "spec", "containers")
	if err != nil || !found || len(containers) != 1 {
		t.Fatalf("expected one container, found=%v err=%v", found, err)
	}
	container := containers[0].(map[string]any)
	if container["name"] != "tensorflow" {
		t.Errorf("container must be named after the framework, got %v", container["name"])
	}
	if container["image"] != spec.Environment.DockerImage {
		t.Errorf("container should fall back to the environment image, got %v", container["image"])
	}

	env := container["env"].([]any)
	names := map[string]string{}
	for _, e := range env {
		kv := e.(map[string]any)
		names[kv["name"].(string)] = kv["value"].(string)
	}
	if names[EnvJobID] != "experiment-abcd1234" {
		t.Errorf("expected injected %s, got %q", EnvJobID, names[EnvJobID])
	}
	if names[EnvTrackingURI] != "http://tracking:5000" {
		t.Errorf("expected injected %s, got %q", EnvTrackingURI, names[EnvTrackingURI])
	}
	if names["ENV_1"] != "ENV1" {
		t.Errorf("user env vars should be preserved, got %q", names["ENV_1"])
	}
}

func TestBuildTrainingJobRequiresCommand(t *testing.T) {
	spec := validSpec()
	spec.Meta.Cmd = ""
	if _, err := BuildTrainingJob(spec, "experiment-x", "submarine", ""); err == nil {
		t.Error("expected error when no task or meta command is set")
	}
}

func TestCreateWithoutClusterConfig(t *testing.T) {
	fs := afero.NewMemMapFs()
	m := NewManager(fs, "/artifact", nil, "submarine", "")

	_, err := m.Create(context.Background(), validSpec())
	if err == nil {
		t.Fatal("expected an error when no cluster config is available")
	}

	// Nothing must be persisted for a submission that never reached the
	// cluster.
	list, err := m.store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 0 {
		t.Errorf("expected no stored experiments, got %d", len(list))
	}
}

func TestStoreRoundTrip(t *testing.T) {
	s := NewStore(afero.NewMemMapFs(), "/artifact")

	exp := &Experiment{
		ExperimentID: "experiment-abcd1234",
		Name:         "mnist",
		Status:       StatusAccepted,
		AcceptedTime: now(),
		Spec:         validSpec(),
	}
	if err := s.Save(exp); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := s.Get("experiment-abcd1234")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Name != "mnist" || got.Status != StatusAccepted {
		t.Errorf("record did not round-trip: %+v", got)
	}
	if got.Spec.Meta.Framework != "TensorFlow" {
		t.Errorf("spec did not round-trip: %+v", got.Spec.Meta)
	}

	list, err := s.List()
	if err != nil || len(list) != 1 {
		t.Fatalf("expected one experiment, got %d err=%v", len(list), err)
	}

	if err := s.Delete("experiment-abcd1234"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := s.Delete("experiment-abcd1234"); err == nil {
		t.Error("expected error deleting a missing experiment")
	}
}
