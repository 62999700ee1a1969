// Package synthfs writes pipeline outputs to disk through a synthfs
// operation pipeline.
package synthfs

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/arthur-debert/synthfs/pkg/synthfs"
	"github.com/arthur-debert/synthfs/pkg/synthfs/core"
	"github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
	"github.com/arthur-debert/synthfs/pkg/synthfs/operations"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/cssuseref/pkg/errors"
	"github.com/arthur-debert/cssuseref/pkg/logging"
	"github.com/arthur-debert/cssuseref/pkg/pipeline"
)

const (
	dirMode  = fs.FileMode(0755)
	fileMode = fs.FileMode(0644)
)

// Writer writes outputs below a root directory. Every output path must be
// absolute and inside root.
type Writer struct {
	logger     zerolog.Logger
	dryRun     bool
	root       string
	filesystem synthfs.FileSystem
}

var _ pipeline.Writer = (*Writer)(nil)

// NewWriter creates a writer rooted at root
func NewWriter(root string, dryRun bool) *Writer {
	root = filepath.Clean(root)
	return &Writer{
		logger:     logging.GetLogger("synthfs"),
		dryRun:     dryRun,
		root:       root,
		filesystem: filesystem.NewOSFileSystem(root),
	}
}

// Write creates the missing parent directories and writes every output,
// replacing existing files
func (w *Writer) Write(ctx context.Context, outputs []pipeline.Output) error {
	if len(outputs) == 0 {
		return nil
	}

	rels := make([]string, len(outputs))
	for i, out := range outputs {
		rel, err := w.relative(out.Path)
		if err != nil {
			return err
		}
		rels[i] = rel
	}

	if w.dryRun {
		for _, out := range outputs {
			w.logger.Debug().Str("path", out.Path).Int("size", len(out.Contents)).Msg("Would write file")
		}
		return nil
	}

	if err := os.MkdirAll(w.root, dirMode); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", w.root).
			WithDetail("path", w.root)
	}

	// One run per depth level, all before any file
	for _, level := range w.missingDirs(rels) {
		ops := make([]synthfs.Operation, 0, len(level))
		for _, dir := range level {
			w.logger.Debug().Str("dir", dir).Msg("Creating directory operation")
			createOp := operations.NewCreateDirectoryOperation(core.OperationID("create-dir-"+dir), dir)
			createOp.SetItem(&directoryItem{path: dir, mode: dirMode})
			ops = append(ops, synthfs.NewOperationsPackageAdapter(createOp))
		}
		if err := w.run(ctx, ops); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate, "failed to create directories under %s", w.root).
				WithDetail("path", w.root)
		}
	}

	ops := make([]synthfs.Operation, 0, len(outputs))
	for i, out := range outputs {
		rel := rels[i]
		// synthfs refuses to create over an existing file
		if info, err := os.Lstat(out.Path); err == nil && !info.IsDir() {
			w.logger.Debug().Str("path", out.Path).Msg("Removing existing file to allow overwrite")
			if err := os.Remove(out.Path); err != nil {
				return errors.Wrapf(err, errors.ErrFileWrite, "failed to replace %s", out.Path).
					WithDetail("path", out.Path)
			}
		}

		opID := core.OperationID(fmt.Sprintf("write-file-%d-%s", i, rel))
		createOp := operations.NewCreateFileOperation(opID, rel)
		createOp.SetItem(&fileItem{path: rel, content: out.Contents, mode: fileMode})
		ops = append(ops, synthfs.NewOperationsPackageAdapter(createOp))
	}
	if err := w.run(ctx, ops); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %d files", len(outputs)).
			WithDetail("path", outputs[0].Path)
	}
	return nil
}

func (w *Writer) run(ctx context.Context, ops []synthfs.Operation) error {
	pl := synthfs.NewMemPipeline()
	for _, op := range ops {
		if err := pl.Add(op); err != nil {
			return err
		}
	}

	w.logger.Debug().Int("operationCount", len(ops)).Msg("Executing operations")
	result := synthfs.NewExecutor().Run(ctx, pl, w.filesystem)
	if err := result.GetError(); err != nil {
		w.logger.Error().Err(err).Msg("Pipeline execution failed")
		return err
	}
	return nil
}

func (w *Writer) relative(path string) (string, error) {
	if !filepath.IsAbs(path) {
		return "", errors.Newf(errors.ErrInvalidInput, "output path %s is not absolute", path).
			WithDetail("path", path)
	}
	rel, err := filepath.Rel(w.root, path)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.Newf(errors.ErrInvalidInput, "output path %s is outside %s", path, w.root).
			WithDetail("path", path)
	}
	return rel, nil
}

// missingDirs groups the parent directories that do not exist yet by
// depth, shallowest first
func (w *Writer) missingDirs(rels []string) [][]string {
	seen := make(map[string]bool)
	byDepth := make(map[int][]string)
	for _, rel := range rels {
		for dir := filepath.Dir(rel); dir != "." && !seen[dir]; dir = filepath.Dir(dir) {
			seen[dir] = true
			if _, err := os.Stat(filepath.Join(w.root, dir)); err == nil {
				continue
			}
			depth := strings.Count(dir, string(filepath.Separator))
			byDepth[depth] = append(byDepth[depth], dir)
		}
	}

	depths := make([]int, 0, len(byDepth))
	for depth := range byDepth {
		depths = append(depths, depth)
	}
	sort.Ints(depths)

	levels := make([][]string, 0, len(depths))
	for _, depth := range depths {
		level := byDepth[depth]
		sort.Strings(level)
		levels = append(levels, level)
	}
	return levels
}

type fileItem struct {
	path    string
	content []byte
	mode    fs.FileMode
}

func (f *fileItem) Path() string       { return f.path }
func (f *fileItem) Type() string       { return "file" }
func (f *fileItem) Content() []byte    { return f.content }
func (f *fileItem) Mode() fs.FileMode  { return f.mode }
func (f *fileItem) IsDir() bool        { return false }
func (f *fileItem) ModTime() time.Time { return time.Now() }
func (f *fileItem) Size() int64        { return int64(len(f.content)) }

type directoryItem struct {
	path string
	mode fs.FileMode
}

func (d *directoryItem) Path() string       { return d.path }
func (d *directoryItem) Type() string       { return "directory" }
func (d *directoryItem) Mode() fs.FileMode  { return d.mode }
func (d *directoryItem) IsDir() bool        { return true }
func (d *directoryItem) ModTime() time.Time { return time.Now() }
func (d *directoryItem) Size() int64        { return 0 }
