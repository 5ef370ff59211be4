package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"submarine-api/pkg/client"
	"submarine-api/pkg/client/model"
)

// ModelVersionApi manages the versions under a registered model.
type ModelVersionApi struct {
	c *client.APIClient
}

func NewModelVersionApi(c *client.APIClient) *ModelVersionApi {
	return &ModelVersionApi{c: c}
}

func versionPath(name string, version int32) string {
	return "/model-version/" + url.PathEscape(name) + "/" + strconv.Itoa(int(version))
}

func (a *ModelVersionApi) Create(ctx context.Context, entity *model.ModelVersionEntity) (*model.ModelVersionEntity, error) {
	var out model.ModelVersionEntity
	if err := a.c.DoResult(ctx, http.MethodPost, "/model-version", entity, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *ModelVersionApi) Get(ctx context.Context, name string, version int32) (*model.ModelVersionEntity, error) {
	var out model.ModelVersionEntity
	if err := a.c.DoResult(ctx, http.MethodGet, versionPath(name, version), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// List returns every version of one registered model.
func (a *ModelVersionApi) List(ctx context.Context, name string) ([]*model.ModelVersionEntity, error) {
	var out []*model.ModelVersionEntity
	if err := a.c.DoResult(ctx, http.MethodGet, "/model-version/"+url.PathEscape(name), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Patch updates the mutable fields of a version: stage, dataset, description.
func (a *ModelVersionApi) Patch(ctx context.Context, entity *model.ModelVersionEntity) (*model.ModelVersionEntity, error) {
	var out model.ModelVersionEntity
	if err := a.c.DoResult(ctx, http.MethodPatch, "/model-version", entity, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *ModelVersionApi) Delete(ctx context.Context, name string, version int32) (*model.JsonResponse, error) {
	return a.c.Do(ctx, http.MethodDelete, versionPath(name, version), nil)
}

func (a *ModelVersionApi) CreateTag(ctx context.Context, name string, version int32, tag string) (*model.JsonResponse, error) {
	path := "/model-version/tag?name=" + url.QueryEscape(name) +
		"&version=" + strconv.Itoa(int(version)) + "&tag=" + url.QueryEscape(tag)
	return a.c.Do(ctx, http.MethodPost, path, nil)
}

func (a *ModelVersionApi) DeleteTag(ctx context.Context, name string, version int32, tag string) (*model.JsonResponse, error) {
	path := "/model-version/tag?name=" + url.QueryEscape(name) +
		"&version=" + strconv.Itoa(int(version)) + "&tag=" + url.QueryEscape(tag)
	return a.c.Do(ctx, http.MethodDelete, path, nil)
}
