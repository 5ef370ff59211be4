package serves

import (
	"context"
	"testing"

	"submarine-api/pkg/client/model"
)

func TestServeName(t *testing.T) {
	if got := ServeName("Mnist", 3); got != "serve-mnist-3" {
		t.Errorf("expected serve-mnist-3, got %s", got)
	}
}

func TestServeImageByModelType(t *testing.T) {
	if got := serveImage("TensorFlow"); got != "tensorflow/serving:2.8.0" {
		t.Errorf("unexpected tensorflow image %s", got)
	}
	if got := serveImage("pytorch"); got != "pytorch/torchserve:0.8.2-cpu" {
		t.Errorf("unexpected pytorch image %s", got)
	}
	if got := serveImage("sklearn"); got != defaultServeImage {
		t.Errorf("unknown types should fall back to the generic server, got %s", got)
	}
}

func TestValidateSpec(t *testing.T) {
	if err := validateSpec(&model.ServeSpec{ModelName: "mnist", ModelVersion: 1}); err != nil {
		t.Errorf("expected valid spec, got %v", err)
	}
	if err := validateSpec(&model.ServeSpec{ModelVersion: 1}); err == nil {
		t.Error("expected error for missing model name")
	}
	if err := validateSpec(&model.ServeSpec{ModelName: "mnist"}); err == nil {
		t.Error("expected error for missing version")
	}
	if err := validateSpec(nil); err == nil {
		t.Error("expected error for nil spec")
	}
}

func TestCreateWithoutClusterConfig(t *testing.T) {
	m := NewManager(nil, "submarine")

	spec := &model.ServeSpec{ModelName: "mnist", ModelVersion: 1}
	if _, err := m.Create(context.Background(), spec); err == nil {
		t.Fatal("expected an error when no cluster config is available")
	}
	if err := m.Delete(context.Background(), spec); err == nil {
		t.Fatal("expected an error when no cluster config is available")
	}
}
