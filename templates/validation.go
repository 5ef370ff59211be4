package templates

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/go-github/v55/github"
	"golang.org/x/oauth2"
)

// IsValidGitHubRepo checks that a github.com repository exists and, when a
// branch is given, that the branch exists too. Non-GitHub URLs pass
// without a check since only GitHub exposes this API.
func IsValidGitHubRepo(ctx context.Context, repoURL, branch, token string) (bool, error) {
	u, err := url.Parse(repoURL)
	if err != nil {
		return false, fmt.Errorf("invalid repository url: %w", err)
	}
	if u.Host != "github.com" {
		return true, nil
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 {
		return false, fmt.Errorf("repository url %s has no owner/repo path", repoURL)
	}
	owner := parts[0]
	repo := strings.TrimSuffix(parts[1], ".git")

	httpClient := oauth2.NewClient(ctx, nil)
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(ctx, ts)
	}
	client := github.NewClient(httpClient)

	if _, _, err := client.Repositories.Get(ctx, owner, repo); err != nil {
		return false, fmt.Errorf("repository %s/%s not reachable: %w", owner, repo, err)
	}
	if branch != "" {
		if _, _, err := client.Repositories.GetBranch(ctx, owner, repo, branch, false); err != nil {
			return false, fmt.Errorf("branch %s not found in %s/%s: %w", branch, owner, repo, err)
		}
	}
	return true, nil
}
