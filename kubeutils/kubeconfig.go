package kubeutils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/util/homedir"
	metricsv "k8s.io/metrics/pkg/client/clientset/versioned"
)

// KubernetesConfig bundles the three clients the platform talks to the
// cluster with. Tests build it directly around fake clientsets.
type KubernetesConfig struct {
	Clientset     kubernetes.Interface
	MetricsClient metricsv.Interface
	DynamicClient dynamic.Interface
}

var (
	once       sync.Once
	kubeConfig *KubernetesConfig
	configErr  error
)

// NewKubernetesConfig returns the shared cluster clients, preferring the
// in-cluster config and falling back to KUBECONFIG / ~/.kube/config.
func NewKubernetesConfig() *KubernetesConfig {
	once.Do(func() {
		config, err := rest.InClusterConfig()
		if err != nil {
			kubeconfigPath := os.Getenv("KUBECONFIG")
			if kubeconfigPath == "" {
				if home := homedir.HomeDir(); home != "" {
					kubeconfigPath = filepath.Join(home, ".kube", "config")
				}
			}
			config, err = clientcmd.BuildConfigFromFlags("", kubeconfigPath)
			if err != nil {
				configErr = fmt.Errorf("failed to build kubernetes config: %w", err)
				return
			}
		}

		clientset, err := kubernetes.NewForConfig(config)
		if err != nil {
			configErr = fmt.Errorf("failed to create kubernetes clientset: %w", err)
			return
		}
		metricsClient, err := metricsv.NewForConfig(config)
		if err != nil {
			configErr = fmt.Errorf("failed to create metrics client: %w", err)
			return
		}
		dynamicClient, err := dynamic.NewForConfig(config)
		if err != nil {
			configErr = fmt.Errorf("failed to create dynamic client: %w", err)
			return
		}

		kubeConfig = &KubernetesConfig{
			Clientset:     clientset,
			MetricsClient: metricsClient,
			DynamicClient: dynamicClient,
		}
	})
	return kubeConfig
}

var errNoCluster = errors.New("kubernetes config is not available")

// ConfigError reports why NewKubernetesConfig returned nil. It never
// returns nil itself, so callers holding a nil config can hand the
// result straight back.
func ConfigError() error {
	if configErr != nil {
		return configErr
	}
	return errNoCluster
}
