package kubeutils

import (
	"context"
	"fmt"

	appsv1 "k8s.io/api/apps/v1"
	apiv1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

func int32Ptr(i int32) *int32 { return &i }
func int64Ptr(i int64) *int64 { return &i }

// NotebookWorkspaceVolume is the volume claim template name mounted at the
// notebook working directory.
const NotebookWorkspaceVolume = "workspace"

// StatefulSetOptions describes a single-replica workload backed by a
// per-replica volume claim.
type StatefulSetOptions struct {
	Name             string
	ServiceName      string
	Image            string
	Port             int
	DiskStorage      string
	StorageClassName string
	Labels           map[string]string
	Env              []apiv1.EnvVar
	Resources        apiv1.ResourceRequirements
	WorkspacePath    string
}

func buildContainer(name, image string, port int, mounts []apiv1.VolumeMount, env []apiv1.EnvVar) apiv1.Container {
	return apiv1.Container{
		Name:            name,
		Image:           image,
		VolumeMounts:    mounts,
		Env:             env,
		ImagePullPolicy: apiv1.PullIfNotPresent,
		Ports: []apiv1.ContainerPort{
			{ContainerPort: int32(port)},
		},
	}
}

// CreateStatefulSet creates a one-replica statefulset with a ReadWriteMany
// workspace claim. The pod labels always include app=<name> so services and
// log lookups can select on it.
func (kc *KubernetesConfig) CreateStatefulSet(ctx context.Context, namespace string, opts StatefulSetOptions) error {
	labels := map[string]string{"app": opts.Name}
	for k, v := range opts.Labels {
		labels[k] = v
	}

	mounts := []apiv1.VolumeMount{
		{Name: NotebookWorkspaceVolume, MountPath: opts.WorkspacePath},
	}
	container := buildContainer(opts.Name, opts.Image, opts.Port, mounts, opts.Env)
	container.Resources = opts.Resources

	storage, err := resource.ParseQuantity(opts.DiskStorage)
	if err != nil {
		return fmt.Errorf("invalid disk storage %q: %w", opts.DiskStorage, err)
	}
	storageClassName := opts.StorageClassName

	statefulset := &appsv1.StatefulSet{
		ObjectMeta: metav1.ObjectMeta{
			Name:   opts.Name,
			Labels: labels,
		},
		Spec: appsv1.StatefulSetSpec{
			ServiceName: opts.ServiceName,
			Replicas:    int32Ptr(1),
			Selector: &metav1.LabelSelector{
				MatchLabels: map[string]string{"app": opts.Name},
			},
			Template: apiv1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{
					Labels: labels,
				},
				Spec: apiv1.PodSpec{
					SecurityContext: &apiv1.PodSecurityContext{
						RunAsUser:  int64Ptr(0),
						RunAsGroup: int64Ptr(0),
						FSGroup:    int64Ptr(1000),
					},
					Containers: []apiv1.Container{container},
				},
			},
			VolumeClaimTemplates: []apiv1.PersistentVolumeClaim{
				{
					ObjectMeta: metav1.ObjectMeta{Name: NotebookWorkspaceVolume},
					Spec: apiv1.PersistentVolumeClaimSpec{
						AccessModes: []apiv1.PersistentVolumeAccessMode{
							apiv1.ReadWriteMany,
						},
						StorageClassName: &storageClassName,
						Resources: apiv1.ResourceRequirements{
							Requests: apiv1.ResourceList{
								apiv1.ResourceStorage: storage,
							},
						},
					},
				},
			},
		},
	}

	_, err = kc.Clientset.AppsV1().StatefulSets(namespace).Create(ctx, statefulset, metav1.CreateOptions{})
	if err != nil {
		return fmt.Errorf("failed to create statefulset %s: %w", opts.Name, err)
	}
	return nil
}

func (kc *KubernetesConfig) DeleteStatefulSet(ctx context.Context, namespace, name string) error {
	deletePolicy := metav1.DeletePropagationForeground
	err := kc.Clientset.AppsV1().StatefulSets(namespace).Delete(ctx, name, metav1.DeleteOptions{
		PropagationPolicy: &deletePolicy,
	})
	if err != nil {
		return fmt.Errorf("failed to delete statefulset %s: %w", name, err)
	}
	return nil
}
