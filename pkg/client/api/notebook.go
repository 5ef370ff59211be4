package api

import (
	"context"
	"net/http"
	"net/url"

	"submarine-api/pkg/client"
	"submarine-api/pkg/client/model"
)

// NotebookApi manages notebook servers.
type NotebookApi struct {
	c *client.APIClient
}

func NewNotebookApi(c *client.APIClient) *NotebookApi {
	return &NotebookApi{c: c}
}

func (a *NotebookApi) Create(ctx context.Context, spec *model.NotebookSpec) (*model.JsonResponse, error) {
	return a.c.Do(ctx, http.MethodPost, "/notebook", spec)
}

func (a *NotebookApi) Get(ctx context.Context, id string) (*model.JsonResponse, error) {
	return a.c.Do(ctx, http.MethodGet, "/notebook/"+url.PathEscape(id), nil)
}

// List returns the notebooks belonging to one owner.
func (a *NotebookApi) List(ctx context.Context, ownerID string) (*model.JsonResponse, error) {
	return a.c.Do(ctx, http.MethodGet, "/notebook?id="+url.QueryEscape(ownerID), nil)
}

func (a *NotebookApi) Delete(ctx context.Context, id string) (*model.JsonResponse, error) {
	return a.c.Do(ctx, http.MethodDelete, "/notebook/"+url.PathEscape(id), nil)
}

// Stop tears the notebook workload down but keeps its storage.
func (a *NotebookApi) Stop(ctx context.Context, id string) (*model.JsonResponse, error) {
	return a.c.Do(ctx, http.MethodDelete, "/notebook/stop/"+url.PathEscape(id), nil)
}
