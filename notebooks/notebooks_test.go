package notebooks

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"

	"submarine-api/conf"
	"submarine-api/pkg/client/model"
)

func testSpec() *model.NotebookSpec {
	return &model.NotebookSpec{
		Meta: &model.NotebookMeta{
			Name:    "test-nb",
			OwnerID: "user-1",
		},
		Environment: &model.EnvironmentSpec{
			DockerImage: "apache/submarine:jupyter-notebook-0.7.0",
		},
		Spec: &model.NotebookPodSpec{
			Resources: "cpu=1,memory=1Gi",
		},
	}
}

func TestValidateSpecResolvesInlineImage(t *testing.T) {
	image, err := ValidateSpec(testSpec())
	if err != nil {
		t.Fatalf("expected valid spec, got %v", err)
	}
	if image != "apache/submarine:jupyter-notebook-0.7.0" {
		t.Errorf("unexpected image %s", image)
	}
}

func TestValidateSpecRejectsIncompleteSpecs(t *testing.T) {
	noMeta := testSpec()
	noMeta.Meta = nil
	if _, err := ValidateSpec(noMeta); err == nil {
		t.Error("expected error for missing meta")
	}

	noOwner := testSpec()
	noOwner.Meta.OwnerID = ""
	if _, err := ValidateSpec(noOwner); err == nil {
		t.Error("expected error for missing owner")
	}

	noEnv := testSpec()
	noEnv.Environment = nil
	if _, err := ValidateSpec(noEnv); err == nil {
		t.Error("expected error for missing environment")
	}

	badResources := testSpec()
	badResources.Spec.Resources = "cpu=abc"
	if _, err := ValidateSpec(badResources); err == nil {
		t.Error("expected error for malformed resources")
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
}

func TestStoreFiltersByOwner(t *testing.T) {
	s := NewStore(afero.NewMemMapFs(), "/artifact")

	for i, owner := range []string{"user-1", "user-1", "user-2"} {
		nb := &Notebook{
			NotebookID:  newID(),
			Name:        "nb",
			OwnerID:     owner,
			Status:      StatusCreating,
			CreatedTime: time.Now().Add(time.Duration(i) * time.Second),
			Spec:        testSpec(),
		}
		if err := s.Save(nb); err != nil {
			t.Fatal(err)
		}
	}

	all, err := s.List("")
	if err != nil || len(all) != 3 {
		t.Fatalf("expected 3 notebooks, got %d err=%v", len(all), err)
	}

	mine, err := s.List("user-1")
	if err != nil || len(mine) != 2 {
		t.Fatalf("expected 2 notebooks for user-1, got %d err=%v", len(mine), err)
	}
	for _, nb := range mine {
		if nb.OwnerID != "user-1" {
			t.Errorf("filter leaked notebook of %s", nb.OwnerID)
		}
	}
}

func TestCreateWithoutClusterConfig(t *testing.T) {
	c := &conf.Config{
		NotebookNamespace: "submarine",
		IngressName:       "submarine",
		StorageClassName:  "standard",
	}
	m := NewManager(afero.NewMemMapFs(), "/artifact", nil, c)

	_, err := m.Create(context.Background(), testSpec())
	if err == nil {
		t.Fatal("expected an error when no cluster config is available")
	}

	list, err := m.store.List("")
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 0 {
		t.Errorf("expected no stored notebooks, got %d", len(list))
	}
}

func TestStoreGetMissing(t *testing.T) {
	s := NewStore(afero.NewMemMapFs(), "/artifact")
	if _, err := s.Get("notebook-missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
