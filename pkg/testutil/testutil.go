package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"

	"github.com/arthur-debert/cssuseref/pkg/filesystem"
	"github.com/arthur-debert/cssuseref/pkg/types"
)

// NewMemoryFS returns a memory filesystem holding files, keyed by absolute
// path
func NewMemoryFS(t *testing.T, files map[string]string) types.FS {
	t.Helper()
	fsys := filesystem.NewMemory()
	for path, content := range files {
		if err := fsys.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to create file %s: %v", path, err)
		}
	}
	return fsys
}

// ReadString reads path from fsys, failing the test when it cannot
func ReadString(t *testing.T, fsys types.FS, path string) string {
	t.Helper()
	data, err := fsys.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(data)
}

// WriteTree creates files under dir on disk. Keys are slash separated
// paths relative to dir.
func WriteTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Failed to create parent directories for %s: %v", path, err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to create file %s: %v", path, err)
		}
	}
}

// ReadDiskFile reads a file from disk, failing the test when it cannot
func ReadDiskFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(data)
}

// IsolateState points XDG_STATE_HOME, where the log file lives, at a
// temporary directory for the rest of the test
func IsolateState(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", dir)
	xdg.Reload()
	t.Cleanup(xdg.Reload)
	return dir
}
