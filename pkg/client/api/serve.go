package api

import (
	"context"
	"net/http"

	"submarine-api/pkg/client"
	"submarine-api/pkg/client/model"
)

// ServeApi manages serving endpoints for registered model versions.
type ServeApi struct {
	c *client.APIClient
}

func NewServeApi(c *client.APIClient) *ServeApi {
	return &ServeApi{c: c}
}

// Create brings a serving endpoint up and returns the spec with the inference
// URL filled in.
func (a *ServeApi) Create(ctx context.Context, spec *model.ServeSpec) (*model.ServeSpec, error) {
	var out model.ServeSpec
	if err := a.c.DoResult(ctx, http.MethodPost, "/serve", spec, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *ServeApi) Delete(ctx context.Context, spec *model.ServeSpec) (*model.JsonResponse, error) {
	return a.c.Do(ctx, http.MethodDelete, "/serve", spec)
}
