package environments

import (
	"errors"
	"testing"

	"github.com/spf13/afero"

	"submarine-api/pkg/client/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(afero.NewMemMapFs(), "/artifact")
}

func TestStoreSeedsDefaultEnvironment(t *testing.T) {
	s := newTestStore(t)

	def, err := s.Get("notebook-env")
	if err != nil {
		t.Fatalf("expected seeded default environment, got %v", err)
	}
	if def.DockerImage == "" {
		t.Error("default environment has no docker image")
	}
	if def.KernelSpec == nil {
		t.Error("default environment has no kernel spec")
	}
}

func TestStoreCreateGetDelete(t *testing.T) {
	s := newTestStore(t)

	spec := &model.EnvironmentSpec{
		Name:        "pytorch-env",
		DockerImage: "pytorch/pytorch:2.1",
		KernelSpec: &model.KernelSpec{
			Name:              "team_default_python_3",
			Channels:          []string{"defaults"},
			CondaDependencies: []string{"numpy=1.24"},
		},
	}
	if err := s.Create(spec); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	got, err := s.Get("pytorch-env")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.DockerImage != spec.DockerImage {
		t.Errorf("expected image %s, got %s", spec.DockerImage, got.DockerImage)
	}
	if got.KernelSpec == nil || got.KernelSpec.Name != "team_default_python_3" {
		t.Errorf("kernel spec did not round-trip: %+v", got.KernelSpec)
	}

	deleted, err := s.Delete("pytorch-env")
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if deleted.Name != "pytorch-env" {
		t.Errorf("delete returned wrong spec: %s", deleted.Name)
	}

	if _, err := s.Get("pytorch-env"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestStoreCreateConflicts(t *testing.T) {
	s := newTestStore(t)

	spec := &model.EnvironmentSpec{Name: "dup", DockerImage: "img"}
	if err := s.Create(spec); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if err := s.Create(spec); !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestStoreRejectsInvalidSpecs(t *testing.T) {
	s := newTestStore(t)

	if err := s.Create(&model.EnvironmentSpec{DockerImage: "img"}); err == nil {
		t.Error("expected error for missing name")
	}
	if err := s.Create(&model.EnvironmentSpec{Name: "no-image"}); err == nil {
		t.Error("expected error for missing image")
	}
	if err := s.Create(&model.EnvironmentSpec{Name: "../escape", DockerImage: "img"}); err == nil {
		t.Error("expected error for path separator in name")
	}
}

func TestStoreUpdate(t *testing.T) {
	s := newTestStore(t)

	spec := &model.EnvironmentSpec{Name: "env", DockerImage: "img:v1"}
	if err := s.Create(spec); err != nil {
		t.Fatal(err)
	}

	updated, err := s.Update("env", &model.EnvironmentSpec{Name: "env", DockerImage: "img:v2"})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.DockerImage != "img:v2" {
		t.Errorf("expected img:v2, got %s", updated.DockerImage)
	}

	if _, err := s.Update("missing", &model.EnvironmentSpec{Name: "missing", DockerImage: "img"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing env, got %v", err)
	}
}

func TestStoreListSorted(t *testing.T) {
	s := newTestStore(t)

	for _, name := range []string{"zeta", "alpha"} {
		if err := s.Create(&model.EnvironmentSpec{Name: name, DockerImage: "img"}); err != nil {
			t.Fatal(err)
		}
	}

	specs, err := s.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	// seeded default + two created
	if len(specs) != 3 {
		t.Fatalf("expected 3 environments, got %d", len(specs))
	}
	if specs[0].Name != "alpha" || specs[2].Name != "zeta" {
		t.Errorf("list not sorted by name: %s..%s", specs[0].Name, specs[2].Name)
	}
}
