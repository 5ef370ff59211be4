// Package apis re-exports every API service under one import path, so
// consumers can depend on a single package instead of the per-resource
// layout underneath.
package apis

import "submarine-api/pkg/client/api"

type EnvironmentApi = api.EnvironmentApi
type ExperimentApi = api.ExperimentApi
type ExperimentTemplateApi = api.ExperimentTemplateApi
type ExperimentTemplatesApi = api.ExperimentTemplatesApi
type ModelVersionApi = api.ModelVersionApi
type NotebookApi = api.NotebookApi
type RegisteredModelApi = api.RegisteredModelApi
type ServeApi = api.ServeApi

var (
	NewEnvironmentApi         = api.NewEnvironmentApi
	NewExperimentApi          = api.NewExperimentApi
	NewExperimentTemplateApi  = api.NewExperimentTemplateApi
	NewExperimentTemplatesApi = api.NewExperimentTemplatesApi
	NewModelVersionApi        = api.NewModelVersionApi
	NewNotebookApi            = api.NewNotebookApi
	NewRegisteredModelApi     = api.NewRegisteredModelApi
	NewServeApi               = api.NewServeApi
)
