package api

import (
	"context"
	"net/http"
	"net/url"

	"submarine-api/pkg/client"
	"submarine-api/pkg/client/model"
)

// ExperimentApi manages the training experiment lifecycle. Create/Get/List
// return the whole envelope because the experiment status lives in the result
// alongside the spec.
type ExperimentApi struct {
	c *client.APIClient
}

func NewExperimentApi(c *client.APIClient) *ExperimentApi {
	return &ExperimentApi{c: c}
}

func (a *ExperimentApi) Create(ctx context.Context, spec *model.ExperimentSpec) (*model.JsonResponse, error) {
	return a.c.Do(ctx, http.MethodPost, "/experiment", spec)
}

func (a *ExperimentApi) Get(ctx context.Context, id string) (*model.JsonResponse, error) {
	return a.c.Do(ctx, http.MethodGet, "/experiment/"+url.PathEscape(id), nil)
}

func (a *ExperimentApi) List(ctx context.Context) (*model.JsonResponse, error) {
	return a.c.Do(ctx, http.MethodGet, "/experiment", nil)
}

func (a *ExperimentApi) Patch(ctx context.Context, id string, spec *model.ExperimentSpec) (*model.JsonResponse, error) {
	return a.c.Do(ctx, http.MethodPatch, "/experiment/"+url.PathEscape(id), spec)
}

func (a *ExperimentApi) Delete(ctx context.Context, id string) (*model.JsonResponse, error) {
	return a.c.Do(ctx, http.MethodDelete, "/experiment/"+url.PathEscape(id), nil)
}

// Log fetches the collected pod logs of one experiment.
func (a *ExperimentApi) Log(ctx context.Context, id string) (*model.JsonResponse, error) {
	return a.c.Do(ctx, http.MethodGet, "/experiment/logs/"+url.PathEscape(id), nil)
}

// ListLogs lists the log locations of every running experiment.
func (a *ExperimentApi) ListLogs(ctx context.Context) (*model.JsonResponse, error) {
	return a.c.Do(ctx, http.MethodGet, "/experiment/logs", nil)
}
