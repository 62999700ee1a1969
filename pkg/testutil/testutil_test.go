package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMemoryFS(t *testing.T) {
	fsys := NewMemoryFS(t, map[string]string{
		"/src/css/site.css": "a{}",
		"/src/img/a.png":    "A",
	})

	assert.Equal(t, "a{}", ReadString(t, fsys, "/src/css/site.css"))
	assert.Equal(t, "A", ReadString(t, fsys, "/src/img/a.png"))

	info, err := fsys.Stat("/src/img")
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestWriteTree(t *testing.T) {
	dir := t.TempDir()
	WriteTree(t, dir, map[string]string{
		"css/site.css":   "a{}",
		"img/deep/a.png": "A",
	})

	assert.Equal(t, "a{}", ReadDiskFile(t, filepath.Join(dir, "css", "site.css")))
	assert.Equal(t, "A", ReadDiskFile(t, filepath.Join(dir, "img", "deep", "a.png")))
}

func TestIsolateState(t *testing.T) {
	dir := IsolateState(t)
	assert.Equal(t, dir, os.Getenv("XDG_STATE_HOME"))
	assert.Equal(t, dir, xdg.StateHome)
}
