package scanner

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", rel, err)
	}
}

func defaultTestConfig() Config {
	return Config{MaxFiles: 25, MaxContentChars: 8000, MaxFileSize: 512 * 1024}
}

func TestScanRouteFilesPicksHintedFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/routes.js", "app.get('/users')")
	writeFile(t, root, "src/user_controller.py", "class UserController: pass")
	writeFile(t, root, "src/helpers.js", "// utility code")
	writeFile(t, root, "docs/routes.md", "# routing docs")

	files, err := New(defaultTestConfig()).ScanRouteFiles(root)
	if err != nil {
		t.Fatalf("ScanRouteFiles() failed: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("found %d files, want 2: %+v", len(files), files)
	}
	for _, file := range files {
		base := filepath.Base(file.Path)
		if base != "routes.js" && base != "user_controller.py" {
			t.Errorf("unexpected file matched: %s", file.Path)
		}
	}
}

func TestScanRouteFilesTruncatesContent(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "api.go", strings.Repeat("x", 500))

	cfg := defaultTestConfig()
	cfg.MaxContentChars = 100
	files, err := New(cfg).ScanRouteFiles(root)
	if err != nil {
		t.Fatalf("ScanRouteFiles() failed: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("found %d files, want 1", len(files))
	}
	if len(files[0].Content) != 100 {
		t.Errorf("content length = %d, want truncation to 100", len(files[0].Content))
	}
}

func TestScanRouteFilesSkipsOversizedFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "big_router.ts", strings.Repeat("y", 2000))
	writeFile(t, root, "small_router.ts", "export const router = {}")

	cfg := defaultTestConfig()
	cfg.MaxFileSize = 1000
	files, err := New(cfg).ScanRouteFiles(root)
	if err != nil {
		t.Fatalf("ScanRouteFiles() failed: %v", err)
	}
	if len(files) != 1 || filepath.Base(files[0].Path) != "small_router.ts" {
		t.Errorf("expected only the small file, got %+v", files)
	}
}

func TestScanRouteFilesHonorsMaxFiles(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"a_routes.js", "b_routes.js", "c_routes.js", "d_routes.js"} {
		writeFile(t, root, name, "content")
	}

	cfg := defaultTestConfig()
	cfg.MaxFiles = 2
	files, err := New(cfg).ScanRouteFiles(root)
	if err != nil {
		t.Fatalf("ScanRouteFiles() failed: %v", err)
	}
	if len(files) != 2 {
		t.Errorf("found %d files, want the configured limit of 2", len(files))
	}
}

func TestScanRouteFilesMissingRoot(t *testing.T) {
	_, err := New(defaultTestConfig()).ScanRouteFiles(filepath.Join(t.TempDir(), "missing"))
	if err == nil {
		t.Fatal("ScanRouteFiles() succeeded on a missing directory")
	}
}
