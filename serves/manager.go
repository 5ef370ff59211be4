package serves

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	apiv1 "k8s.io/api/core/v1"

	"submarine-api/conf"
	"submarine-api/kubeutils"
	"submarine-api/pkg/client/model"
	"submarine-api/registry"
)

const ServePort = 8080

// Serving images by model type. Unknown types get the generic server.
var serveImages = map[string]string{
	"tensorflow": "tensorflow/serving:2.8.0",
	"pytorch":    "pytorch/torchserve:0.8.2-cpu",
}

const defaultServeImage = "seldonio/mlserver:1.3.5"

// Manager brings serving endpoints up as one deployment plus a ClusterIP
// service per model version.
type Manager struct {
	kc        *kubeutils.KubernetesConfig
	namespace string
}

func NewManager(kc *kubeutils.KubernetesConfig, namespace string) *Manager {
	return &Manager{kc: kc, namespace: namespace}
}

var (
	once           sync.Once
	defaultManager *Manager
)

func getManager() *Manager {
	once.Do(func() {
		defaultManager = NewManager(kubeutils.NewKubernetesConfig(), conf.Get().ServeNamespace)
	})
	return defaultManager
}

// ServeName builds the resource name for one model version endpoint.
func ServeName(modelName string, version int32) string {
	return fmt.Sprintf("serve-%s-%d", strings.ToLower(modelName), version)
}

func serveImage(modelType string) string {
	if image, ok := serveImages[strings.ToLower(modelType)]; ok {
		return image
	}
	return defaultServeImage
}

func validateSpec(spec *model.ServeSpec) error {
	if spec == nil || spec.ModelName == "" {
		return fmt.Errorf("model name is required")
	}
	if spec.ModelVersion <= 0 {
		return fmt.Errorf("model version must be positive")
	}
	return nil
}

// Create verifies the version exists in the registry, provisions the
// endpoint and fills in the in-cluster URL.
func (m *Manager) Create(ctx context.Context, spec *model.ServeSpec) (*model.ServeSpec, error) {
	if m.kc == nil {
		return nil, kubeutils.ConfigError()
	}
	if err := validateSpec(spec); err != nil {
		return nil, err
	}

	version, err := registry.LookupVersion(spec.ModelName, spec.ModelVersion)
	if err != nil {
		return nil, err
	}
	if spec.ModelType == "" {
		spec.ModelType = version.ModelType
	}

	name := ServeName(spec.ModelName, spec.ModelVersion)

	exists, err := m.kc.DeploymentExists(ctx, m.namespace, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("serve endpoint %s already exists", name)
	}

	if err := m.kc.EnsureNamespace(ctx, m.namespace); err != nil {
		return nil, err
	}

	err = m.kc.CreateDeployment(ctx, m.namespace, kubeutils.DeploymentOptions{
		Name:  name,
		Image: serveImage(spec.ModelType),
		Port:  ServePort,
		Labels: map[string]string{
			"model-name":    spec.ModelName,
			"model-version": fmt.Sprintf("%d", spec.ModelVersion),
		},
		Env: []apiv1.EnvVar{
			{Name: "MODEL_NAME", Value: spec.ModelName},
			{Name: "MODEL_VERSION", Value: fmt.Sprintf("%d", spec.ModelVersion)},
		},
	})
	if err != nil {
		return nil, err
	}
	if err := m.kc.CreateService(ctx, m.namespace, name, name, ServePort, apiv1.ServiceTypeClusterIP); err != nil {
		return nil, err
	}

	spec.URL = fmt.Sprintf("http://%s.%s", name, m.namespace)
	logrus.WithField("serve", name).Info("serve endpoint created")
	return spec, nil
}

// Delete tears one endpoint down.
func (m *Manager) Delete(ctx context.Context, spec *model.ServeSpec) error {
	if m.kc == nil {
		return kubeutils.ConfigError()
	}
	if err := validateSpec(spec); err != nil {
		return err
	}

	name := ServeName(spec.ModelName, spec.ModelVersion)

	exists, err := m.kc.DeploymentExists(ctx, m.namespace, name)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("serve endpoint %s does not exist", name)
	}

	if err := m.kc.DeleteDeployment(ctx, m.namespace, name); err != nil {
		return err
	}
	if err := m.kc.DeleteService(ctx, m.namespace, name); err != nil {
		return err
	}

	logrus.WithField("serve", name).Info("serve endpoint deleted")
	return nil
}
