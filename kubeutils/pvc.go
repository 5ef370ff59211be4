package kubeutils

import (
	"context"
	"fmt"

	apiv1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

func (kc *KubernetesConfig) CreatePersistentVolumeClaim(ctx context.Context, namespace, name, storageClassName, diskStorage string) error {
	storage, err := resource.ParseQuantity(diskStorage)
	if err != nil {
		return fmt.Errorf("invalid disk storage %q: %w", diskStorage, err)
	}

	pvc := &apiv1.PersistentVolumeClaim{
		ObjectMeta: metav1.ObjectMeta{Name: name},
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
	}

	_, err = kc.Clientset.CoreV1().PersistentVolumeClaims(namespace).Create(ctx, pvc, metav1.CreateOptions{})
	if err != nil {
		return fmt.Errorf("failed to create persistent volume claim %s: %w", name, err)
	}
	return nil
}

func (kc *KubernetesConfig) DeletePersistentVolumeClaim(ctx context.Context, namespace, name string) error {
	err := kc.Clientset.CoreV1().PersistentVolumeClaims(namespace).Delete(ctx, name, metav1.DeleteOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete persistent volume claim %s: %w", name, err)
	}
	return nil
}

func (kc *KubernetesConfig) PersistentVolumeClaimExists(ctx context.Context, namespace, name string) (bool, error) {
	_, err := kc.Clientset.CoreV1().PersistentVolumeClaims(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		if errors.IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get persistent volume claim %s: %w", name, err)
	}
	return true, nil
}
