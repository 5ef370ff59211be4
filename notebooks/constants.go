package notebooks

const (
	IDPrefix = "notebook-"

	// Pods and statefulsets carry the owner so lists can filter by user.
	OwnerLabel = "notebook-owner-id"

	NotebookPort = 8888

	// Default workspace claim size and mount point inside the pod.
	DefaultDiskStorage = "10Gi"
	WorkspacePath      = "/home/jovyan/workspace"

	EnvNotebookName = "NOTEBOOK_NAME"
	EnvNotebookArgs = "NB_PREFIX"
)

// Notebook lifecycle states reported to clients.
const (
	StatusCreating = "Creating"
	StatusRunning  = "Running"
	StatusStopped  = "Stopped"
	StatusFailed   = "Failed"
)
