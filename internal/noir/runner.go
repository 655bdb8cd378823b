package noir

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"noir-api-mapper/internal/types"
)

// Runner executes the OWASP Noir binary against a checked-out source tree
// and normalizes its output.
type Runner struct {
	binary string
}

// NewRunner creates a runner that expects the noir binary on PATH.
func NewRunner() *Runner {
	return &Runner{binary: "noir"}
}

// Analyze runs Noir over repoPath and returns the discovered endpoints
// together with normalization diagnostics.
func (r *Runner) Analyze(ctx context.Context, repoPath, baseURL string) ([]types.NoirEndpoint, Diagnostics, error) {
	if _, err := exec.LookPath(r.binary); err != nil {
		return nil, Diagnostics{}, fmt.Errorf("noir binary not found in PATH, install OWASP Noir: %w", err)
	}

	cmd := exec.CommandContext(ctx, r.binary, "-b", repoPath, "-u", baseURL, "-f", "json", "-T")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, Diagnostics{}, fmt.Errorf("noir failed: %s: %w", strings.TrimSpace(stderr.String()), err)
	}

	var payload interface{}
	if err := json.Unmarshal(stdout.Bytes(), &payload); err != nil {
		return nil, Diagnostics{}, fmt.Errorf("noir did not return valid JSON: %w", err)
	}

	endpoints, diag := Normalize(payload)
	return endpoints, diag, nil
}
