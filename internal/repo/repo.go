package repo

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Acquire prepares a source tree for analysis. A local directory is used in
// place; anything that looks like a git URL is shallow-cloned into a
// temporary directory. The returned cleanup func removes the clone and is a
// no-op for local directories; callers must invoke it on every exit path.
func Acquire(ctx context.Context, repoRef string) (string, func(), error) {
	if info, err := os.Stat(repoRef); err == nil && info.IsDir() {
		abs, err := filepath.Abs(repoRef)
		if err != nil {
			return "", nil, fmt.Errorf("failed to resolve repository path: %w", err)
		}
		return abs, func() {}, nil
	}

	if !isGitURL(repoRef) {
		return "", nil, fmt.Errorf("repository path %q does not exist and is not a git URL", repoRef)
	}

	tmpDir, err := os.MkdirTemp("", "noir-repo-")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp directory: %w", err)
	}

	cmd := exec.CommandContext(ctx, "git", "clone", "--depth", "1", repoRef, tmpDir)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		os.RemoveAll(tmpDir)
		return "", nil, fmt.Errorf("failed to clone repository: %s: %w", strings.TrimSpace(stderr.String()), err)
	}

	return tmpDir, func() { os.RemoveAll(tmpDir) }, nil
}

func isGitURL(value string) bool {
	parsed, err := url.Parse(value)
	if err == nil {
		switch parsed.Scheme {
		case "http", "https", "ssh":
			return true
		}
	}
	return strings.HasSuffix(value, ".git")
}
