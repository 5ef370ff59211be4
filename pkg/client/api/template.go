package api

import (
	"context"
	"net/http"
	"net/url"

	"submarine-api/pkg/client"
	"submarine-api/pkg/client/model"
)

// ExperimentTemplateApi manages stored experiment templates.
type ExperimentTemplateApi struct {
	c *client.APIClient
}

func NewExperimentTemplateApi(c *client.APIClient) *ExperimentTemplateApi {
	return &ExperimentTemplateApi{c: c}
}

func (a *ExperimentTemplateApi) Create(ctx context.Context, spec *model.ExperimentTemplateSpec) (*model.ExperimentTemplateSpec, error) {
	var out model.ExperimentTemplateSpec
	if err := a.c.DoResult(ctx, http.MethodPost, "/template", spec, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *ExperimentTemplateApi) Get(ctx context.Context, name string) (*model.ExperimentTemplateSpec, error) {
	var out model.ExperimentTemplateSpec
	if err := a.c.DoResult(ctx, http.MethodGet, "/template/"+url.PathEscape(name), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *ExperimentTemplateApi) List(ctx context.Context) ([]*model.ExperimentTemplateSpec, error) {
	var out []*model.ExperimentTemplateSpec
	if err := a.c.DoResult(ctx, http.MethodGet, "/template", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *ExperimentTemplateApi) Update(ctx context.Context, name string, spec *model.ExperimentTemplateSpec) (*model.ExperimentTemplateSpec, error) {
	var out model.ExperimentTemplateSpec
	if err := a.c.DoResult(ctx, http.MethodPatch, "/template/"+url.PathEscape(name), spec, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *ExperimentTemplateApi) Delete(ctx context.Context, name string) (*model.JsonResponse, error) {
	return a.c.Do(ctx, http.MethodDelete, "/template/"+url.PathEscape(name), nil)
}

// ExperimentTemplatesApi instantiates stored templates into experiments.
// Kept separate from ExperimentTemplateApi because submission is a different
// resource on the wire (/template/submit).
type ExperimentTemplatesApi struct {
	c *client.APIClient
}

func NewExperimentTemplatesApi(c *client.APIClient) *ExperimentTemplatesApi {
	return &ExperimentTemplatesApi{c: c}
}

func (a *ExperimentTemplatesApi) Submit(ctx context.Context, name string, submit *model.ExperimentTemplateSubmit) (*model.JsonResponse, error) {
	return a.c.Do(ctx, http.MethodPost, "/template/submit/"+url.PathEscape(name), submit)
}
