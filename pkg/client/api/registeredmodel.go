package api

import (
	"context"
	"net/http"
	"net/url"

	"submarine-api/pkg/client"
	"submarine-api/pkg/client/model"
)

// RegisteredModelApi manages named models in the registry.
type RegisteredModelApi struct {
	c *client.APIClient
}

func NewRegisteredModelApi(c *client.APIClient) *RegisteredModelApi {
	return &RegisteredModelApi{c: c}
}

func (a *RegisteredModelApi) Create(ctx context.Context, entity *model.RegisteredModelEntity) (*model.RegisteredModelEntity, error) {
	var out model.RegisteredModelEntity
	if err := a.c.DoResult(ctx, http.MethodPost, "/registered-model", entity, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *RegisteredModelApi) Get(ctx context.Context, name string) (*model.RegisteredModelEntity, error) {
	var out model.RegisteredModelEntity
	if err := a.c.DoResult(ctx, http.MethodGet, "/registered-model/"+url.PathEscape(name), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *RegisteredModelApi) List(ctx context.Context) ([]*model.RegisteredModelEntity, error) {
	var out []*model.RegisteredModelEntity
	if err := a.c.DoResult(ctx, http.MethodGet, "/registered-model", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *RegisteredModelApi) Update(ctx context.Context, name string, entity *model.RegisteredModelEntity) (*model.RegisteredModelEntity, error) {
	var out model.RegisteredModelEntity
	if err := a.c.DoResult(ctx, http.MethodPatch, "/registered-model/"+url.PathEscape(name), entity, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *RegisteredModelApi) Delete(ctx context.Context, name string) (*model.JsonResponse, error) {
	return a.c.Do(ctx, http.MethodDelete, "/registered-model/"+url.PathEscape(name), nil)
}

func (a *RegisteredModelApi) CreateTag(ctx context.Context, name, tag string) (*model.JsonResponse, error) {
	path := "/registered-model/tag?name=" + url.QueryEscape(name) + "&tag=" + url.QueryEscape(tag)
	return a.c.Do(ctx, http.MethodPost, path, nil)
}

func (a *RegisteredModelApi) DeleteTag(ctx context.Context, name, tag string) (*model.JsonResponse, error) {
	path := "/registered-model/tag?name=" + url.QueryEscape(name) + "&tag=" + url.QueryEscape(tag)
	return a.c.Do(ctx, http.MethodDelete, path, nil)
}
