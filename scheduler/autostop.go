package scheduler

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"submarine-api/conf"
	"submarine-api/kubeutils"
	"submarine-api/notebooks"
)

// A notebook whose pod stays below this CPU usage counts as idle.
const idleCPUMilli = 10

// AutoStopTask stops notebooks that have been idle longer than the
// configured window. Idle start times live in memory only, so a restart
// gives every notebook a fresh window.
type AutoStopTask struct {
	enabled   bool
	period    time.Duration
	idleAfter time.Duration

	list  func(ctx context.Context) ([]*notebooks.Notebook, error)
	usage func(ctx context.Context, id string) ([]kubeutils.PodMetrics, error)
	stop  func(ctx context.Context, id string) error

	idleSince map[string]time.Time
	now       func() time.Time
}

func NewAutoStopTask(c *conf.Config) *AutoStopTask {
	return &AutoStopTask{
		enabled:   c.AutoStopEnabled,
		period:    time.Minute,
		idleAfter: c.AutoStopIdle(),
		list:      notebooks.ListAll,
		usage:     notebooks.UsageFor,
		stop:      notebooks.StopByID,
		idleSince: map[string]time.Time{},
		now:       time.Now,
	}
}

func (t *AutoStopTask) Name() string          { return "notebook-autostop" }
func (t *AutoStopTask) Enabled() bool         { return t.enabled }
func (t *AutoStopTask) Period() time.Duration { return t.period }

func (t *AutoStopTask) Run(ctx context.Context) error {
	nbs, err := t.list(ctx)
	if err != nil {
		return err
	}

	seen := map[string]bool{}
	for _, nb := range nbs {
		if nb.Status != notebooks.StatusRunning {
			delete(t.idleSince, nb.NotebookID)
			continue
		}
		seen[nb.NotebookID] = true

		metrics, err := t.usage(ctx, nb.NotebookID)
		if err != nil {
			logrus.Warnf("autostop: no metrics for %s: %v", nb.NotebookID, err)
			continue
		}

		if !isIdle(metrics) {
			delete(t.idleSince, nb.NotebookID)
			continue
		}

		since, ok := t.idleSince[nb.NotebookID]
		if !ok {
			t.idleSince[nb.NotebookID] = t.now()
			continue
		}
		if t.now().Sub(since) < t.idleAfter {
			continue
		}

		logrus.WithField("notebook", nb.NotebookID).Info("stopping idle notebook")
		if err := t.stop(ctx, nb.NotebookID); err != nil {
			logrus.Warnf("autostop: failed to stop %s: %v", nb.NotebookID, err)
			continue
		}
		delete(t.idleSince, nb.NotebookID)
	}

	// Drop tracking for notebooks that disappeared.
	for id := range t.idleSince {
		if !seen[id] {
			delete(t.idleSince, id)
		}
	}
	return nil
}

func isIdle(metrics []kubeutils.PodMetrics) bool {
	if len(metrics) == 0 {
		return false
	}
	var total int64
	for _, m := range metrics {
		total += m.CPUMilli
	}
	return total < idleCPUMilli
}
