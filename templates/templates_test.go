package templates

import (
	"errors"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"submarine-api/pkg/client/model"
)

func testTemplate() *model.ExperimentTemplateSpec {
	return &model.ExperimentTemplateSpec{
		Name:   "tf-mnist",
		Author: "submarine",
		Parameters: []*model.ExperimentTemplateParamSpec{
			{Name: "experiment_name", Required: "true"},
			{Name: "learning_rate", Required: "false", Value: "0.01"},
			{Name: "training.replicas", Required: "false", Value: "2"},
		},
		ExperimentSpec: &model.ExperimentSpec{
			Meta: &model.ExperimentMeta{
				Name:      "{{experiment_name}}",
				Framework: "TensorFlow",
				Cmd:       "python train.py --lr={{learning_rate}}",
			},
			Environment: &model.EnvironmentSpec{
				DockerImage: "apache/submarine:tf-mnist-with-summaries-1.0",
			},
			Spec: map[string]*model.ExperimentTaskSpec{
				"Worker": {Replicas: 1, Resources: "cpu=1,memory=512M"},
			},
		},
	}
}

func TestRenderSubstitutesParameters(t *testing.T) {
	spec, err := Render(testTemplate(), map[string]string{
		"experiment_name": "mnist-run",
		"learning_rate":   "0.1",
	})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	if spec.Meta.Name != "mnist-run" {
		t.Errorf("expected mnist-run, got %s", spec.Meta.Name)
	}
	if !strings.Contains(spec.Meta.Cmd, "--lr=0.1") {
		t.Errorf("expected substituted command, got %s", spec.Meta.Cmd)
	}
}

func TestRenderUsesParameterDefaults(t *testing.T) {
	spec, err := Render(testTemplate(), map[string]string{
		"experiment_name": "mnist-run",
	})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(spec.Meta.Cmd, "--lr=0.01") {
		t.Errorf("expected default learning rate, got %s", spec.Meta.Cmd)
	}
}

func TestRenderMissingRequiredParameter(t *testing.T) {
	_, err := Render(testTemplate(), nil)
	if err == nil {
		t.Fatal("expected error for missing required parameter")
	}
	if !strings.Contains(err.Error(), "experiment_name") {
		t.Errorf("error should name the missing parameter: %v", err)
	}
}

func TestRenderRejectsUndeclaredParameters(t *testing.T) {
	_, err := Render(testTemplate(), map[string]string{
		"experiment_name": "x",
		"bogus":           "1",
	})
	if err == nil {
		t.Fatal("expected error for undeclared parameter")
	}
	if !strings.Contains(err.Error(), "bogus") {
		t.Errorf("error should name the unknown parameter: %v", err)
	}
}

func TestStoreLifecycle(t *testing.T) {
	s := NewStore(afero.NewMemMapFs(), "/artifact")

	tpl := testTemplate()
	if err := s.Create(tpl); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := s.Create(tpl); !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}

	got, err := s.Get("tf-mnist")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(got.Parameters) != 3 {
		t.Errorf("parameters did not round-trip: %d", len(got.Parameters))
	}

	list, err := s.List()
	if err != nil || len(list) != 1 {
		t.Fatalf("expected one template, got %d err=%v", len(list), err)
	}

	if _, err := s.Delete("tf-mnist"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := s.Get("tf-mnist"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreRejectsInvalidTemplates(t *testing.T) {
	s := NewStore(afero.NewMemMapFs(), "/artifact")

	if err := s.Create(&model.ExperimentTemplateSpec{}); err == nil {
		t.Error("expected error for missing name")
	}
	if err := s.Create(&model.ExperimentTemplateSpec{Name: "no-spec"}); err == nil {
		t.Error("expected error for missing experiment spec")
	}

	dup := testTemplate()
	dup.Parameters = append(dup.Parameters, &model.ExperimentTemplateParamSpec{Name: "learning_rate"})
	if err := s.Create(dup); err == nil {
		t.Error("expected error for duplicate parameter")
	}
}
