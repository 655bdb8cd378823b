package repo

import (
	"context"
	"os"
	"testing"
)

func TestAcquireLocalDirectory(t *testing.T) {
	dir := t.TempDir()

	path, cleanup, err := Acquire(context.Background(), dir)
	if err != nil {
		t.Fatalf("Acquire() failed: %v", err)
	}
	if path == "" {
		t.Fatal("Acquire() returned an empty path")
	}

	// Cleanup must be a no-op for local directories.
	cleanup()
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("local directory removed by cleanup: %v", err)
	}
}

func TestAcquireRejectsMissingNonGitPath(t *testing.T) {
	_, _, err := Acquire(context.Background(), "/definitely/not/a/real/path")
	if err == nil {
		t.Fatal("Acquire() accepted a missing path that is not a git URL")
	}
}

func TestIsGitURL(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"https://github.com/owner/project", true},
		{"http://example.com/repo", true},
		{"ssh://git@example.com/repo", true},
		{"git@github.com:owner/project.git", true},
		{"/some/local/path", false},
		{"not-a-url", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			if got := isGitURL(tt.value); got != tt.want {
				t.Errorf("isGitURL(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}
