package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"noir-api-mapper/internal/types"
)

// routeHints are substrings of a relative path that suggest routing or
// controller code.
var routeHints = []string{"route", "router", "controller", "urls", "views", "api"}

// supportedExtensions limits the scan to languages Noir and the synthesis
// model handle well.
var supportedExtensions = map[string]bool{
	".js":   true,
	".ts":   true,
	".py":   true,
	".go":   true,
	".java": true,
	".kt":   true,
}

// Config holds the scan limits. All of them come from configuration, not
// from the scanner itself.
type Config struct {
	MaxFiles        int
	MaxContentChars int
	MaxFileSize     int64
}

// Scanner finds probable routing files beneath a repository root.
type Scanner struct {
	cfg Config
}

// New creates a scanner with the given limits.
func New(cfg Config) *Scanner {
	return &Scanner{cfg: cfg}
}

// ScanRouteFiles walks the repository and returns up to MaxFiles snippets of
// files whose path suggests routing code. WalkDir visits entries in
// lexical order, so results are deterministic for a given tree.
func (s *Scanner) ScanRouteFiles(root string) ([]types.RouteFile, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("cannot scan %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("cannot scan %s: not a directory", root)
	}

	var files []types.RouteFile
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are not worth failing the scan over.
			return nil
		}
		if len(files) >= s.cfg.MaxFiles {
			return fs.SkipAll
		}
		if d.IsDir() {
			return nil
		}
		if !supportedExtensions[filepath.Ext(path)] {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		if !matchesHint(strings.ToLower(rel)) {
			return nil
		}
		fileInfo, err := d.Info()
		if err != nil || fileInfo.Size() > s.cfg.MaxFileSize {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		content := string(data)
		if len(content) > s.cfg.MaxContentChars {
			content = content[:s.cfg.MaxContentChars]
		}
		files = append(files, types.RouteFile{Path: path, Content: content})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}
	return files, nil
}

func matchesHint(relPath string) bool {
	for _, hint := range routeHints {
		if strings.Contains(relPath, hint) {
			return true
		}
	}
	return false
}
