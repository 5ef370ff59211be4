package models

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	"submarine-api/pkg/client/model"
)

// Every re-exported name must be the same type as in its defining package,
// not a copy.
func TestAliasesAreIdentical(t *testing.T) {
	cases := []struct {
		name     string
		exported any
		defining any
	}{
		{"CodeSpec", CodeSpec{}, model.CodeSpec{}},
		{"EnvironmentSpec", EnvironmentSpec{}, model.EnvironmentSpec{}},
		{"ExperimentMeta", ExperimentMeta{}, model.ExperimentMeta{}},
		{"ExperimentSpec", ExperimentSpec{}, model.ExperimentSpec{}},
		{"ExperimentTaskSpec", ExperimentTaskSpec{}, model.ExperimentTaskSpec{}},
		{"ExperimentTemplateParamSpec", ExperimentTemplateParamSpec{}, model.ExperimentTemplateParamSpec{}},
		{"ExperimentTemplateSpec", ExperimentTemplateSpec{}, model.ExperimentTemplateSpec{}},
		{"ExperimentTemplateSubmit", ExperimentTemplateSubmit{}, model.ExperimentTemplateSubmit{}},
		{"GitCodeSpec", GitCodeSpec{}, model.GitCodeSpec{}},
		{"JsonResponse", JsonResponse{}, model.JsonResponse{}},
		{"KernelSpec", KernelSpec{}, model.KernelSpec{}},
		{"ModelVersionEntity", ModelVersionEntity{}, model.ModelVersionEntity{}},
		{"NotebookMeta", NotebookMeta{}, model.NotebookMeta{}},
		{"NotebookPodSpec", NotebookPodSpec{}, model.NotebookPodSpec{}},
		{"NotebookSpec", NotebookSpec{}, model.NotebookSpec{}},
		{"RegisteredModelEntity", RegisteredModelEntity{}, model.RegisteredModelEntity{}},
		{"ServeSpec", ServeSpec{}, model.ServeSpec{}},
	}
	if len(cases) != 17 {
		t.Fatalf("expected 17 model types, have %d", len(cases))
	}
	for _, tc := range cases {
		assert.Equal(t, reflect.TypeOf(tc.defining), reflect.TypeOf(tc.exported), tc.name)
	}
}

// An alias must be assignable both ways without conversion; this compiles or
// it doesn't.
func TestAliasAssignability(t *testing.T) {
	var spec ExperimentSpec
	var underlying model.ExperimentSpec = spec
	spec = underlying
	_ = spec
}
