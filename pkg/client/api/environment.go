package api

import (
	"context"
	"net/http"
	"net/url"

	"submarine-api/pkg/client"
	"submarine-api/pkg/client/model"
)

// EnvironmentApi manages runtime environments.
type EnvironmentApi struct {
	c *client.APIClient
}

func NewEnvironmentApi(c *client.APIClient) *EnvironmentApi {
	return &EnvironmentApi{c: c}
}

func (a *EnvironmentApi) Create(ctx context.Context, spec *model.EnvironmentSpec) (*model.EnvironmentSpec, error) {
	var out model.EnvironmentSpec
	if err := a.c.DoResult(ctx, http.MethodPost, "/environment", spec, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *EnvironmentApi) Get(ctx context.Context, name string) (*model.EnvironmentSpec, error) {
	var out model.EnvironmentSpec
	if err := a.c.DoResult(ctx, http.MethodGet, "/environment/"+url.PathEscape(name), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *EnvironmentApi) List(ctx context.Context) ([]*model.EnvironmentSpec, error) {
	var out []*model.EnvironmentSpec
	if err := a.c.DoResult(ctx, http.MethodGet, "/environment", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *EnvironmentApi) Update(ctx context.Context, name string, spec *model.EnvironmentSpec) (*model.EnvironmentSpec, error) {
	var out model.EnvironmentSpec
	if err := a.c.DoResult(ctx, http.MethodPatch, "/environment/"+url.PathEscape(name), spec, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *EnvironmentApi) Delete(ctx context.Context, name string) (*model.JsonResponse, error) {
	return a.c.Do(ctx, http.MethodDelete, "/environment/"+url.PathEscape(name), nil)
}
