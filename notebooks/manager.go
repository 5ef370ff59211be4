package notebooks

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	apiv1 "k8s.io/api/core/v1"

	"submarine-api/conf"
	"submarine-api/environments"
	"submarine-api/kubeutils"
	"submarine-api/pkg/client/model"
)

// Manager owns the notebook lifecycle: one statefulset plus a ClusterIP
// service per notebook, exposed through a path rule on the shared ingress.
type Manager struct {
	store       *Store
	kc          *kubeutils.KubernetesConfig
	namespace   string
	ingressName string
	storageName string
}

func NewManager(fs afero.Fs, artifactRoot string, kc *kubeutils.KubernetesConfig, c *conf.Config) *Manager {
	return &Manager{
		store:       NewStore(fs, artifactRoot),
		kc:          kc,
		namespace:   c.NotebookNamespace,
		ingressName: c.IngressName,
		storageName: c.StorageClassName,
	}
}

var (
	once           sync.Once
	defaultManager *Manager
)

func getManager() *Manager {
	once.Do(func() {
		c := conf.Get()
		defaultManager = NewManager(afero.NewOsFs(), c.ArtifactRoot, kubeutils.NewKubernetesConfig(), c)
	})
	return defaultManager
}

func newID() string {
	return IDPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// ListAll, UsageFor and StopByID let the idle reaper task drive the shared
// manager without importing fiber handlers.
func ListAll(ctx context.Context) ([]*Notebook, error) {
	return getManager().List(ctx, "")
}

func UsageFor(ctx context.Context, id string) ([]kubeutils.PodMetrics, error) {
	return getManager().Metrics(ctx, id)
}

func StopByID(ctx context.Context, id string) error {
	_, err := getManager().Stop(ctx, id)
	return err
}

// ValidateSpec checks a notebook spec and resolves the environment image,
// looking the environment up by name when no image is inlined.
func ValidateSpec(spec *model.NotebookSpec) (string, error) {
	if spec == nil || spec.Meta == nil {
		return "", fmt.Errorf("notebook meta is required")
	}
	if spec.Meta.Name == "" {
		return "", fmt.Errorf("notebook name is required")
	}
	if spec.Meta.OwnerID == "" {
		return "", fmt.Errorf("notebook owner id is required")
	}
	if spec.Environment == nil {
		return "", fmt.Errorf("notebook environment is required")
	}

	image := spec.Environment.DockerImage
	if image == "" && spec.Environment.Name != "" {
		env, err := environments.Lookup(spec.Environment.Name)
		if err != nil {
			return "", fmt.Errorf("environment %q not found", spec.Environment.Name)
		}
		image = env.DockerImage
	}
	if image == "" {
		return "", fmt.Errorf("notebook environment has no docker image")
	}

	if spec.Spec != nil && spec.Spec.Resources != "" {
		if _, err := kubeutils.ParseResources(spec.Spec.Resources); err != nil {
			return "", err
		}
	}
	return image, nil
}

func notebookPath(id string) string {
	return "/notebook/" + id + "/"
}

// Create checks cluster capacity, provisions the workload and exposes it.
func (m *Manager) Create(ctx context.Context, spec *model.NotebookSpec) (*Notebook, error) {
	if m.kc == nil {
		return nil, kubeutils.ConfigError()
	}
	image, err := ValidateSpec(spec)
	if err != nil {
		return nil, err
	}

	resources := apiv1.ResourceRequirements{}
	if spec.Spec != nil && spec.Spec.Resources != "" {
		resources, err = kubeutils.ParseResources(spec.Spec.Resources)
		if err != nil {
			return nil, err
		}
		if _, err := m.kc.CheckAvailability(ctx, resources); err != nil {
			return nil, err
		}
	}

	id := newID()
	spec.Meta.Namespace = m.namespace

	if err := m.kc.EnsureNamespace(ctx, m.namespace); err != nil {
		return nil, err
	}

	env := []apiv1.EnvVar{
		{Name: EnvNotebookName, Value: spec.Meta.Name},
		{Name: EnvNotebookArgs, Value: notebookPath(id)},
	}
	if spec.Spec != nil {
		for k, v := range spec.Spec.EnvVars {
			env = append(env, apiv1.EnvVar{Name: k, Value: v})
		}
	}

	labels := map[string]string{OwnerLabel: spec.Meta.OwnerID}
	for k, v := range spec.Meta.Labels {
		labels[k] = v
	}

	err = m.kc.CreateStatefulSet(ctx, m.namespace, kubeutils.StatefulSetOptions{
		Name:             id,
		ServiceName:      id,
		Image:            image,
		Port:             NotebookPort,
		DiskStorage:      DefaultDiskStorage,
		StorageClassName: m.storageName,
		Labels:           labels,
		Env:              env,
		Resources:        resources,
		WorkspacePath:    WorkspacePath,
	})
	if err != nil {
		return nil, err
	}
	if err := m.kc.CreateService(ctx, m.namespace, id, id, NotebookPort, apiv1.ServiceTypeClusterIP); err != nil {
		return nil, err
	}
	if err := m.kc.AppendRuleToIngress(ctx, m.namespace, m.ingressName, id, notebookPath(id)); err != nil {
		logrus.Warnf("notebook %s created but not exposed: %v", id, err)
	}

	nb := &Notebook{
		NotebookID:  id,
		Name:        spec.Meta.Name,
		OwnerID:     spec.Meta.OwnerID,
		Status:      StatusCreating,
		URL:         notebookPath(id),
		CreatedTime: time.Now().UTC(),
		Spec:        spec,
	}
	if err := m.store.Save(nb); err != nil {
		return nil, err
	}

	logrus.WithField("notebook", id).Info("notebook created")
	return nb, nil
}

// Get returns the stored record with its status refreshed from the pod.
func (m *Manager) Get(ctx context.Context, id string) (*Notebook, error) {
	nb, err := m.store.Get(id)
	if err != nil {
		return nil, err
	}
	nb.Status = m.status(ctx, id, nb.Status)
	return nb, nil
}

func (m *Manager) List(ctx context.Context, ownerID string) ([]*Notebook, error) {
	nbs, err := m.store.List(ownerID)
	if err != nil {
		return nil, err
	}
	for _, nb := range nbs {
		nb.Status = m.status(ctx, nb.NotebookID, nb.Status)
	}
	return nbs, nil
}

// Delete tears down the workload, its exposure and the stored record. The
// workspace claim goes with the statefulset.
func (m *Manager) Delete(ctx context.Context, id string) (*Notebook, error) {
	if m.kc == nil {
		return nil, kubeutils.ConfigError()
	}
	nb, err := m.store.Get(id)
	if err != nil {
		return nil, err
	}

	if err := m.teardown(ctx, id); err != nil {
		return nil, err
	}
	if err := m.store.Delete(id); err != nil {
		return nil, err
	}

	logrus.WithField("notebook", id).Info("notebook deleted")
	return nb, nil
}

// Stop removes the running workload but keeps the record and workspace
// claim so the notebook can come back later.
func (m *Manager) Stop(ctx context.Context, id string) (*Notebook, error) {
	if m.kc == nil {
		return nil, kubeutils.ConfigError()
	}
	nb, err := m.store.Get(id)
	if err != nil {
		return nil, err
	}
	if nb.Status == StatusStopped {
		return nb, nil
	}

	if err := m.teardown(ctx, id); err != nil {
		return nil, err
	}

	nb.Status = StatusStopped
	if err := m.store.Save(nb); err != nil {
		return nil, err
	}

	logrus.WithField("notebook", id).Info("notebook stopped")
	return nb, nil
}

func (m *Manager) teardown(ctx context.Context, id string) error {
	if err := m.kc.DeleteStatefulSet(ctx, m.namespace, id); err != nil {
		logrus.Warnf("failed to delete statefulset %s: %v", id, err)
	}
	if err := m.kc.DeleteService(ctx, m.namespace, id); err != nil {
		logrus.Warnf("failed to delete service %s: %v", id, err)
	}
	return m.kc.DeleteRuleFromIngress(ctx, m.namespace, m.ingressName, notebookPath(id))
}

func (m *Manager) status(ctx context.Context, id, stored string) string {
	if m.kc == nil || stored == StatusStopped {
		return stored
	}
	pods, err := m.kc.ListPods(ctx, m.namespace, "app="+id)
	if err != nil || len(pods) == 0 {
		return stored
	}
	switch pods[0].Status {
	case "Running":
		return StatusRunning
	case "Failed", "Error", "CrashLoopBackOff", "ImagePullBackOff":
		return StatusFailed
	default:
		return StatusCreating
	}
}

// Metrics reads current usage for one notebook, or for every notebook when
// id is empty.
func (m *Manager) Metrics(ctx context.Context, id string) ([]kubeutils.PodMetrics, error) {
	if m.kc == nil {
		return nil, kubeutils.ConfigError()
	}
	selector := ""
	if id != "" {
		selector = "app=" + id
	}
	return m.kc.GetPodMetrics(ctx, m.namespace, selector)
}
