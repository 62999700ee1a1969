package pipeline

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/cssuseref/pkg/errors"
	"github.com/arthur-debert/cssuseref/pkg/pathstyle"
	"github.com/arthur-debert/cssuseref/pkg/types"
)

// Output is one file a run writes: a rewritten stylesheet or an asset
type Output struct {
	Path     string
	Contents []byte
}

// Writer persists the outputs of one stylesheet. Implementations honour
// dry runs themselves.
type Writer interface {
	Write(ctx context.Context, outputs []Output) error
}

// fsWriter writes through types.FS
type fsWriter struct {
	fs     types.FS
	style  pathstyle.PathStyle
	dryRun bool
	logger zerolog.Logger
}

func (w *fsWriter) Write(ctx context.Context, outputs []Output) error {
	for _, out := range outputs {
		if w.dryRun {
			w.logger.Debug().Str("path", out.Path).Int("size", len(out.Contents)).Msg("Would write file")
			continue
		}
		dir := w.style.Dir(out.Path)
		if err := w.fs.MkdirAll(dir, dirPerm); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", dir).
				WithDetail("path", dir)
		}
		if err := w.fs.WriteFile(out.Path, out.Contents, filePerm); err != nil {
			return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", out.Path).
				WithDetail("path", out.Path)
		}
	}
	return nil
}
