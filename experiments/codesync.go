package experiments

import (
	"context"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"submarine-api/pkg/client/model"
)

// SyncCode clones the experiment's git source into dest so the training
// pods can mount it from the shared artifact volume. A branch, when set,
// is checked out as a shallow single-branch clone.
func SyncCode(ctx context.Context, code *model.CodeSpec, dest string) error {
	if code == nil {
		return nil
	}
	if code.SyncMode != CodeSyncModeGit || code.Git == nil {
		return fmt.Errorf("unsupported code sync mode %q", code.SyncMode)
	}

	opts := &git.CloneOptions{
		URL:   code.Git.URL,
		Depth: 1,
	}
	if code.Git.Branch != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(code.Git.Branch)
		opts.SingleBranch = true
	}

	if _, err := git.PlainCloneContext(ctx, dest, false, opts); err != nil {
		return fmt.Errorf("failed to clone %s: %w", code.Git.URL, err)
	}
	return nil
}
