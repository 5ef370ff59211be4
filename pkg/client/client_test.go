package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"submarine-api/pkg/client"
	"submarine-api/pkg/client/api"
	"submarine-api/pkg/client/model"
)

func newServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *client.APIClient) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := client.New(srv.URL)
	require.NoError(t, err)
	return srv, c
}

func writeEnvelope(w http.ResponseWriter, status int, resp model.JsonResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func TestEnvironmentRoundTrip(t *testing.T) {
	spec := &model.EnvironmentSpec{
		Name:        "pytorch-env",
		DockerImage: "pytorch/pytorch:2.1",
		KernelSpec: &model.KernelSpec{
			Name:     "team_default_python_3.10",
			Channels: []string{"defaults"},
		},
	}

	_, c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/environment", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var in model.EnvironmentSpec
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		writeEnvelope(w, http.StatusOK, model.JsonResponse{
			Code: http.StatusOK, Success: true, Result: in,
		})
	})

	out, err := api.NewEnvironmentApi(c).Create(context.Background(), spec)
	require.NoError(t, err)
	assert.Equal(t, spec.Name, out.Name)
	assert.Equal(t, spec.DockerImage, out.DockerImage)
	require.NotNil(t, out.KernelSpec)
	assert.Equal(t, spec.KernelSpec.Name, out.KernelSpec.Name)
}

func TestExperimentCreateReturnsEnvelope(t *testing.T) {
	_, c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/experiment", r.URL.Path)
		writeEnvelope(w, http.StatusOK, model.JsonResponse{
			Code:    http.StatusOK,
			Success: true,
			Result: map[string]any{
				"experimentId": "experiment-1a2b3c4d",
				"status":       "Accepted",
			},
		})
	})

	resp, err := api.NewExperimentApi(c).Create(context.Background(), &model.ExperimentSpec{
		Meta: &model.ExperimentMeta{Name: "mnist", Framework: "TensorFlow"},
		Spec: map[string]*model.ExperimentTaskSpec{
			"Worker": {Replicas: 1, Image: "tf-mnist:latest", Resources: "cpu=1,memory=1024M"},
		},
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)

	result, ok := resp.Result.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "experiment-1a2b3c4d", result["experimentId"])
}

func TestErrorEnvelopeBecomesAPIError(t *testing.T) {
	_, c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusNotFound, model.JsonResponse{
			Code: http.StatusNotFound, Success: false, Message: "environment not found: missing",
		})
	})

	_, err := api.NewEnvironmentApi(c).Get(context.Background(), "missing")
	require.Error(t, err)

	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, client.ErrorNotFound, apiErr.Kind)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Contains(t, apiErr.Message, "not found")
}

func TestSuccessFalseWithoutHTTPErrorStillFails(t *testing.T) {
	_, c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, model.JsonResponse{
			Code: http.StatusOK, Success: false, Message: "spec rejected",
		})
	})

	_, err := api.NewServeApi(c).Create(context.Background(), &model.ServeSpec{ModelName: "m"})
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "spec rejected", apiErr.Message)
}

func TestTemplateSubmitPath(t *testing.T) {
	_, c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/template/submit/tf-mnist", r.URL.Path)
		writeEnvelope(w, http.StatusOK, model.JsonResponse{Code: http.StatusOK, Success: true})
	})

	_, err := api.NewExperimentTemplatesApi(c).Submit(context.Background(), "tf-mnist",
		&model.ExperimentTemplateSubmit{Params: map[string]string{"learning_rate": "0.01"}})
	require.NoError(t, err)
}

func TestModelVersionPaths(t *testing.T) {
	_, c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/model-version/resnet/3", r.URL.Path)
		writeEnvelope(w, http.StatusOK, model.JsonResponse{
			Code: http.StatusOK, Success: true,
			Result: model.ModelVersionEntity{Name: "resnet", Version: 3, CurrentStage: model.StageProduction},
		})
	})

	v, err := api.NewModelVersionApi(c).Get(context.Background(), "resnet", 3)
	require.NoError(t, err)
	assert.Equal(t, int32(3), v.Version)
	assert.Equal(t, model.StageProduction, v.CurrentStage)
}

func TestNewRejectsEmptyBaseURL(t *testing.T) {
	_, err := client.New("   ")
	assert.Error(t, err)
}
