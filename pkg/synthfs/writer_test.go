package synthfs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/cssuseref/pkg/errors"
	"github.com/arthur-debert/cssuseref/pkg/pipeline"
	"github.com/arthur-debert/cssuseref/pkg/testutil"
)

func TestWriterWritesNestedFiles(t *testing.T) {
	root := filepath.Join(t.TempDir(), "dest")
	w := NewWriter(root, false)

	err := w.Write(context.Background(), []pipeline.Output{
		{Path: filepath.Join(root, "css", "site.css"), Contents: []byte("a{}")},
		{Path: filepath.Join(root, "assets", "img", "icons", "a.png"), Contents: []byte("A")},
		{Path: filepath.Join(root, "assets", "img", "b.png"), Contents: []byte("B")},
	})
	require.NoError(t, err)

	assert.Equal(t, "a{}", testutil.ReadDiskFile(t, filepath.Join(root, "css", "site.css")))
	assert.Equal(t, "A", testutil.ReadDiskFile(t, filepath.Join(root, "assets", "img", "icons", "a.png")))
	assert.Equal(t, "B", testutil.ReadDiskFile(t, filepath.Join(root, "assets", "img", "b.png")))
}

func TestWriterReplacesExistingFiles(t *testing.T) {
	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{"css/site.css": "old"})

	w := NewWriter(root, false)
	err := w.Write(context.Background(), []pipeline.Output{
		{Path: filepath.Join(root, "css", "site.css"), Contents: []byte("new")},
	})
	require.NoError(t, err)
	assert.Equal(t, "new", testutil.ReadDiskFile(t, filepath.Join(root, "css", "site.css")))
}

func TestWriterDryRun(t *testing.T) {
	root := filepath.Join(t.TempDir(), "dest")
	w := NewWriter(root, true)

	err := w.Write(context.Background(), []pipeline.Output{
		{Path: filepath.Join(root, "css", "site.css"), Contents: []byte("a{}")},
	})
	require.NoError(t, err)

	_, err = os.Stat(root)
	assert.True(t, os.IsNotExist(err))
}

func TestWriterRejectsPaths(t *testing.T) {
	root := filepath.Join(t.TempDir(), "dest")

	tests := []struct {
		name string
		path string
	}{
		{name: "outside root", path: filepath.Join(filepath.Dir(root), "other", "a.css")},
		{name: "parent of root", path: filepath.Dir(root)},
		{name: "root itself", path: root},
		{name: "relative", path: filepath.Join("css", "a.css")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, dryRun := range []bool{false, true} {
				w := NewWriter(root, dryRun)
				err := w.Write(context.Background(), []pipeline.Output{{Path: tt.path, Contents: []byte("x")}})
				require.Error(t, err)
				assert.Equal(t, errors.ErrInvalidInput, errors.GetErrorCode(err))
			}
			_, err := os.Stat(filepath.Join(filepath.Dir(root), "other"))
			assert.True(t, os.IsNotExist(err))
		})
	}
}

func TestWriterNoOutputs(t *testing.T) {
	root := filepath.Join(t.TempDir(), "dest")
	require.NoError(t, NewWriter(root, false).Write(context.Background(), nil))

	_, err := os.Stat(root)
	assert.True(t, os.IsNotExist(err))
}

func TestMissingDirs(t *testing.T) {
	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{"css/keep.css": ""})

	w := NewWriter(root, false)
	levels := w.missingDirs([]string{
		filepath.Join("css", "site.css"),
		filepath.Join("assets", "img", "a.png"),
		filepath.Join("assets", "font", "b.woff"),
		"top.css",
	})

	assert.Equal(t, [][]string{
		{"assets"},
		{filepath.Join("assets", "font"), filepath.Join("assets", "img")},
	}, levels)
}
