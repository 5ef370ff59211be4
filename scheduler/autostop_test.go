package scheduler

import (
	"context"
	"testing"
	"time"

	"submarine-api/kubeutils"
	"submarine-api/notebooks"
)

func newTestTask(nbs []*notebooks.Notebook, cpu int64) (*AutoStopTask, *[]string) {
	stopped := &[]string{}
	task := &AutoStopTask{
		enabled:   true,
		period:    time.Minute,
		idleAfter: 30 * time.Minute,
		list: func(context.Context) ([]*notebooks.Notebook, error) {
			return nbs, nil
		},
		usage: func(_ context.Context, id string) ([]kubeutils.PodMetrics, error) {
			return []kubeutils.PodMetrics{{PodName: id + "-0", CPUMilli: cpu}}, nil
		},
		stop: func(_ context.Context, id string) error {
			*stopped = append(*stopped, id)
			return nil
		},
		idleSince: map[string]time.Time{},
		now:       time.Now,
	}
	return task, stopped
}

func runningNotebook(id string) *notebooks.Notebook {
	return &notebooks.Notebook{NotebookID: id, Status: notebooks.StatusRunning}
}

func TestAutoStopIgnoresBusyNotebooks(t *testing.T) {
	task, stopped := newTestTask([]*notebooks.Notebook{runningNotebook("notebook-a")}, 500)

	for i := 0; i < 3; i++ {
		if err := task.Run(context.Background()); err != nil {
			t.Fatal(err)
		}
	}
	if len(*stopped) != 0 {
		t.Errorf("busy notebook must not be stopped: %v", *stopped)
	}
}

func TestAutoStopWaitsForIdleWindow(t *testing.T) {
	task, stopped := newTestTask([]*notebooks.Notebook{runningNotebook("notebook-a")}, 0)

	// First run only starts tracking.
	if err := task.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(*stopped) != 0 {
		t.Errorf("notebook stopped before the idle window passed: %v", *stopped)
	}

	// Second run within the window: still running.
	if err := task.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(*stopped) != 0 {
		t.Errorf("notebook stopped too early: %v", *stopped)
	}

	// Move the clock past the window.
	task.now = func() time.Time { return time.Now().Add(31 * time.Minute) }
	if err := task.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(*stopped) != 1 || (*stopped)[0] != "notebook-a" {
		t.Errorf("expected notebook-a stopped, got %v", *stopped)
	}
}

func TestAutoStopResetsWhenBusyAgain(t *testing.T) {
	task, stopped := newTestTask([]*notebooks.Notebook{runningNotebook("notebook-a")}, 0)

	if err := task.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	// Notebook becomes busy: tracking must reset.
	task.usage = func(context.Context, string) ([]kubeutils.PodMetrics, error) {
		return []kubeutils.PodMetrics{{CPUMilli: 500}}, nil
	}
	if err := task.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(task.idleSince) != 0 {
		t.Error("idle tracking should reset when the notebook is busy")
	}

	// Idle again, but the window starts over.
	task.usage = func(_ context.Context, id string) ([]kubeutils.PodMetrics, error) {
		return []kubeutils.PodMetrics{{CPUMilli: 0}}, nil
	}
	task.now = func() time.Time { return time.Now().Add(31 * time.Minute) }
	if err := task.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(*stopped) != 0 {
		t.Errorf("window must restart after activity: %v", *stopped)
	}
}

func TestAutoStopSkipsStoppedNotebooks(t *testing.T) {
	nb := &notebooks.Notebook{NotebookID: "notebook-a", Status: notebooks.StatusStopped}
	task, stopped := newTestTask([]*notebooks.Notebook{nb}, 0)

	if err := task.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(*stopped) != 0 {
		t.Errorf("stopped notebooks must be ignored: %v", *stopped)
	}
}
