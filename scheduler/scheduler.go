// Package scheduler runs periodic background tasks next to the API server.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Task is one periodic background job.
type Task interface {
	Name() string
	Enabled() bool
	Period() time.Duration
	Run(ctx context.Context) error
}

// Runner drives each enabled task on its own ticker until Stop is called.
type Runner struct {
	tasks  []Task
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewRunner(tasks ...Task) *Runner {
	return &Runner{tasks: tasks}
}

func (r *Runner) Start(ctx context.Context) {
	ctx, r.cancel = context.WithCancel(ctx)

	for _, task := range r.tasks {
		if !task.Enabled() {
			logrus.WithField("task", task.Name()).Debug("task disabled")
			continue
		}

		r.wg.Add(1)
		go func(task Task) {
			defer r.wg.Done()

			logrus.WithField("task", task.Name()).Info("task started")
			ticker := time.NewTicker(task.Period())
			defer ticker.Stop()

			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					if err := task.Run(ctx); err != nil {
						logrus.WithField("task", task.Name()).Warnf("task run failed: %v", err)
					}
				}
			}
		}(task)
	}
}

// Stop cancels the tasks and waits for the running ones to finish.
func (r *Runner) Stop() {
	if r.cancel != nil {
		r.cancel()
	}
	r.wg.Wait()
}
