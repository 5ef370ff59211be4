// Package models re-exports every data model type under one import path, so
// consumers can depend on a single package instead of the model package
// layout underneath.
package models

import "submarine-api/pkg/client/model"

type CodeSpec = model.CodeSpec
type EnvironmentSpec = model.EnvironmentSpec
type ExperimentMeta = model.ExperimentMeta
type ExperimentSpec = model.ExperimentSpec
type ExperimentTaskSpec = model.ExperimentTaskSpec
type ExperimentTemplateParamSpec = model.ExperimentTemplateParamSpec
type ExperimentTemplateSpec = model.ExperimentTemplateSpec
type ExperimentTemplateSubmit = model.ExperimentTemplateSubmit
type GitCodeSpec = model.GitCodeSpec
type JsonResponse = model.JsonResponse
type KernelSpec = model.KernelSpec
type ModelVersionEntity = model.ModelVersionEntity
type NotebookMeta = model.NotebookMeta
type NotebookPodSpec = model.NotebookPodSpec
type NotebookSpec = model.NotebookSpec
type RegisteredModelEntity = model.RegisteredModelEntity
type ServeSpec = model.ServeSpec
