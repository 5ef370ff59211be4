package experiments

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"submarine-api/conf"
	"submarine-api/kubeutils"
	"submarine-api/pkg/client/model"
)

// Manager owns the experiment lifecycle: persisting the spec, syncing
// code, submitting the training job and reading it back from the cluster.
type Manager struct {
	store       *Store
	fs          afero.Fs
	root        string
	kc          *kubeutils.KubernetesConfig
	namespace   string
	trackingURI string
}

func NewManager(fs afero.Fs, artifactRoot string, kc *kubeutils.KubernetesConfig, namespace, trackingURI string) *Manager {
	return &Manager{
		store:       NewStore(fs, artifactRoot),
		fs:          fs,
		root:        artifactRoot,
		kc:          kc,
		namespace:   namespace,
		trackingURI: trackingURI,
	}
}

var (
	once           sync.Once
	defaultManager *Manager
)

func getManager() *Manager {
	once.Do(func() {
		c := conf.Get()
		defaultManager = NewManager(afero.NewOsFs(), c.ArtifactRoot, kubeutils.NewKubernetesConfig(), c.ExperimentNamespace, c.TrackingURI)
	})
	return defaultManager
}

func newID() string {
	return IDPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// now is swapped out in tests.
var now = func() time.Time { return time.Now().UTC() }

// Submit lets other packages (template instantiation) create experiments
// through the shared manager.
func Submit(ctx context.Context, spec *model.ExperimentSpec) (*Experiment, error) {
	return getManager().Create(ctx, spec)
}

// Create validates the spec, assigns an id, persists the record, syncs
// code when requested and submits the training job.
func (m *Manager) Create(ctx context.Context, spec *model.ExperimentSpec) (*Experiment, error) {
	if m.kc == nil {
		return nil, kubeutils.ConfigError()
	}
	if err := ValidateSpec(spec); err != nil {
		return nil, err
	}

	id := newID()
	spec.Meta.ExperimentID = id
	spec.Meta.Namespace = m.namespace

	exp := &Experiment{
		ExperimentID: id,
		Name:         spec.Meta.Name,
		Status:       StatusAccepted,
		AcceptedTime: now(),
		Spec:         spec,
	}
	if err := m.store.Save(exp); err != nil {
		return nil, err
	}

	if spec.Code != nil {
		dest := filepath.Join(m.root, codeDirName, id)
		if err := SyncCode(ctx, spec.Code, dest); err != nil {
			_ = m.store.Delete(id)
			return nil, err
		}
	}

	job, err := BuildTrainingJob(spec, id, m.namespace, m.trackingURI)
	if err != nil {
		_ = m.store.Delete(id)
		return nil, err
	}
	if err := m.kc.CreateTrainingJob(ctx, m.namespace, spec.Meta.Framework, job); err != nil {
		_ = m.store.Delete(id)
		return nil, err
	}

	logrus.WithField("experiment", id).Info("experiment submitted")
	return exp, nil
}

// Patch resubmits an existing experiment with a new spec, keeping its id.
func (m *Manager) Patch(ctx context.Context, id string, spec *model.ExperimentSpec) (*Experiment, error) {
	if m.kc == nil {
		return nil, kubeutils.ConfigError()
	}
	existing, err := m.store.Get(id)
	if err != nil {
		return nil, err
	}
	if err := ValidateSpec(spec); err != nil {
		return nil, err
	}

	spec.Meta.ExperimentID = id
	spec.Meta.Namespace = m.namespace

	if err := m.kc.DeleteTrainingJob(ctx, m.namespace, existing.Spec.Meta.Framework, id); err != nil {
		return nil, err
	}
	job, err := BuildTrainingJob(spec, id, m.namespace, m.trackingURI)
	if err != nil {
		return nil, err
	}
	if err := m.kc.CreateTrainingJob(ctx, m.namespace, spec.Meta.Framework, job); err != nil {
		return nil, err
	}

	existing.Spec = spec
	existing.Name = spec.Meta.Name
	existing.Status = StatusAccepted
	if err := m.store.Save(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Get returns the stored record with its status refreshed from the pods.
func (m *Manager) Get(ctx context.Context, id string) (*Experiment, error) {
	exp, err := m.store.Get(id)
	if err != nil {
		return nil, err
	}
	exp.Status = m.status(ctx, id, exp.Status)
	return exp, nil
}

func (m *Manager) List(ctx context.Context) ([]*Experiment, error) {
	exps, err := m.store.List()
	if err != nil {
		return nil, err
	}
	for _, exp := range exps {
		exp.Status = m.status(ctx, exp.ExperimentID, exp.Status)
	}
	return exps, nil
}

// Delete removes the training job and the stored record.
func (m *Manager) Delete(ctx context.Context, id string) (*Experiment, error) {
	if m.kc == nil {
		return nil, kubeutils.ConfigError()
	}
	exp, err := m.store.Get(id)
	if err != nil {
		return nil, err
	}
	if err := m.kc.DeleteTrainingJob(ctx, m.namespace, exp.Spec.Meta.Framework, id); err != nil {
		return nil, err
	}
	if err := m.store.Delete(id); err != nil {
		return nil, err
	}

	logrus.WithField("experiment", id).Info("experiment deleted")
	return exp, nil
}

// status derives a coarse state from the experiment's pods. With no pods
// visible the stored state stands.
func (m *Manager) status(ctx context.Context, id, stored string) string {
	if m.kc == nil {
		return stored
	}
	pods, err := m.kc.ListPods(ctx, m.namespace, JobNameLabel+"="+id)
	if err != nil || len(pods) == 0 {
		return stored
	}

	running, succeeded := 0, 0
	for _, pod := range pods {
		switch pod.Status {
		case "Running":
			running++
		case "Succeeded", "Completed":
			succeeded++
		case "Failed", "Error", "CrashLoopBackOff":
			return StatusFailed
		}
	}
	if succeeded == len(pods) {
		return StatusSucceeded
	}
	if running > 0 {
		return StatusRunning
	}
	return stored
}

// ListLogs returns the pod names of every stored experiment, without
// content.
func (m *Manager) ListLogs(ctx context.Context) ([]ExperimentLog, error) {
	if m.kc == nil {
		return nil, kubeutils.ConfigError()
	}
	exps, err := m.store.List()
	if err != nil {
		return nil, err
	}

	out := make([]ExperimentLog, 0, len(exps))
	for _, exp := range exps {
		pods, err := m.kc.ListPods(ctx, m.namespace, JobNameLabel+"="+exp.ExperimentID)
		if err != nil {
			return nil, err
		}
		logs := ExperimentLog{ExperimentID: exp.ExperimentID}
		for _, pod := range pods {
			logs.LogContent = append(logs.LogContent, PodLog{PodName: pod.Name})
		}
		out = append(out, logs)
	}
	return out, nil
}

// GetLogs reads the current log content of every pod of one experiment.
func (m *Manager) GetLogs(ctx context.Context, id string) (*ExperimentLog, error) {
	if m.kc == nil {
		return nil, kubeutils.ConfigError()
	}
	if _, err := m.store.Get(id); err != nil {
		return nil, err
	}

	pods, err := m.kc.ListPods(ctx, m.namespace, JobNameLabel+"="+id)
	if err != nil {
		return nil, err
	}

	logs := &ExperimentLog{ExperimentID: id}
	for _, pod := range pods {
		content, err := m.kc.GetPodLogsByName(ctx, m.namespace, pod.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to read logs of %s: %w", pod.Name, err)
		}
		logs.LogContent = append(logs.LogContent, PodLog{PodName: pod.Name, Log: content})
	}
	return logs, nil
}
