package kubeutils

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	apiv1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

type LogsOptions struct {
	Follow    bool
	Tail      int64
	Container string
}

func NewLogsOptions() *LogsOptions {
	return &LogsOptions{Tail: 200}
}

func (kc *KubernetesConfig) firstPodName(ctx context.Context, namespace, selector string) (string, error) {
	pods, err := kc.Clientset.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{
		LabelSelector: selector,
	})
	if err != nil {
		return "", fmt.Errorf("failed to list pods: %w", err)
	}
	if len(pods.Items) == 0 {
		return "", fmt.Errorf("no pods found for selector %q", selector)
	}
	return pods.Items[0].Name, nil
}

// GetPodLogs reads the full log of the first pod matching app=<name>.
func (kc *KubernetesConfig) GetPodLogs(ctx context.Context, namespace, name string) (string, error) {
	podName, err := kc.firstPodName(ctx, namespace, "app="+name)
	if err != nil {
		return "", err
	}
	return kc.GetPodLogsByName(ctx, namespace, podName)
}

// GetPodLogsByName reads the full log of one named pod.
func (kc *KubernetesConfig) GetPodLogsByName(ctx context.Context, namespace, podName string) (string, error) {
	req := kc.Clientset.CoreV1().Pods(namespace).GetLogs(podName, &apiv1.PodLogOptions{})
	podLogs, err := req.Stream(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to open log stream: %w", err)
	}
	defer podLogs.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, podLogs); err != nil {
		return "", fmt.Errorf("failed to read log stream: %w", err)
	}
	return buf.String(), nil
}

// StreamPodLogs copies the log of the first pod matching app=<name> to the
// writer line by line, flushing after each line, until EOF or the context
// is cancelled.
func (kc *KubernetesConfig) StreamPodLogs(ctx context.Context, namespace, name string, opts *LogsOptions, w io.Writer) error {
	podName, err := kc.firstPodName(ctx, namespace, "app="+name)
	if err != nil {
		return err
	}

	podLogOpts := &apiv1.PodLogOptions{
		Follow:    opts.Follow,
		Container: opts.Container,
	}
	if opts.Tail >= 0 {
		podLogOpts.TailLines = &opts.Tail
	}

	req := kc.Clientset.CoreV1().Pods(namespace).GetLogs(podName, podLogOpts)
	podLogs, err := req.Stream(ctx)
	if err != nil {
		return fmt.Errorf("failed to open log stream: %w", err)
	}
	defer podLogs.Close()

	buf := bufio.NewReader(podLogs)
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := buf.ReadBytes('\n')
		if len(line) > 0 {
			if _, werr := w.Write(line); werr != nil {
				return fmt.Errorf("failed to write log line: %w", werr)
			}
			if flusher, ok := w.(http.Flusher); ok {
				flusher.Flush()
			}
		}
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("failed to read log stream: %w", err)
		}
	}
}
