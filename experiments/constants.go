package experiments

const (
	// Pods created by the training operator carry this label.
	JobNameLabel = "training.kubeflow.org/job-name"

	IDPrefix = "experiment-"

	// Environment variables injected into every task container.
	EnvJobID       = "JOB_ID"
	EnvTrackingURI = "SUBMARINE_TRACKING_URI"
	EnvLogDir      = "LOG_DIR"

	CodeSyncModeGit = "git"

	// Where synced code lands inside the artifact tree.
	codeDirName = "code"
)

// Experiment lifecycle states reported to clients.
const (
	StatusAccepted  = "Accepted"
	StatusRunning   = "Running"
	StatusSucceeded = "Succeeded"
	StatusFailed    = "Failed"
)
