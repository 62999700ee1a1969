package pipeline

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/cssuseref/pkg/config"
	"github.com/arthur-debert/cssuseref/pkg/errors"
	"github.com/arthur-debert/cssuseref/pkg/internal/hashutil"
	"github.com/arthur-debert/cssuseref/pkg/logging"
	"github.com/arthur-debert/cssuseref/pkg/matchers"
	"github.com/arthur-debert/cssuseref/pkg/pathstyle"
	"github.com/arthur-debert/cssuseref/pkg/resolver"
	"github.com/arthur-debert/cssuseref/pkg/rewriter"
	"github.com/arthur-debert/cssuseref/pkg/types"
)

const (
	dirPerm  = 0755
	filePerm = 0644
)

// Pipeline rewrites every selected stylesheet under a root into a
// destination directory
type Pipeline struct {
	cfg     *config.Config
	fs      types.FS
	rw      *rewriter.Rewriter
	style   pathstyle.PathStyle
	logger  zerolog.Logger
	include *matchers.Matcher
	exclude *matchers.Matcher
	opts    types.Options
	writer  Writer
}

// New creates a pipeline. A nil rewriter gets one built for the configured
// path style, reading from fsys.
func New(cfg *config.Config, fsys types.FS, rw *rewriter.Rewriter, logger zerolog.Logger) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	style, err := cfg.Style()
	if err != nil {
		return nil, err
	}
	if !style.IsAbs(cfg.Root) {
		return nil, errors.Newf(errors.ErrConfigValid, "root %q is not an absolute %s path", cfg.Root, style.Name()).
			WithDetail("key", "root")
	}
	if !style.IsAbs(cfg.Dest) {
		return nil, errors.Newf(errors.ErrConfigValid, "dest %q is not an absolute %s path", cfg.Dest, style.Name()).
			WithDetail("key", "dest")
	}

	include, err := matchers.New(cfg.Include)
	if err != nil {
		return nil, err
	}
	exclude, err := matchers.NewExclude(cfg.Exclude)
	if err != nil {
		return nil, err
	}
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}

	if rw == nil {
		rw = rewriter.New(fsys, resolver.New(style), rewriter.WithLogger(logger))
	}

	return &Pipeline{
		cfg:     cfg,
		fs:      fsys,
		rw:      rw,
		style:   style,
		logger:  logger,
		include: include,
		exclude: exclude,
		opts:    opts,
		writer:  &fsWriter{fs: fsys, style: style, dryRun: cfg.DryRun, logger: logger},
	}, nil
}

// WithWriter replaces the writer outputs go through. By default they are
// written to the pipeline's filesystem.
func (p *Pipeline) WithWriter(w Writer) *Pipeline {
	p.writer = w
	return p
}

// Run processes every selected stylesheet. Per-file failures are recorded
// in the report and do not stop the run unless FailFast is set, in which
// case the failure is also returned. A cancelled context stops the run
// between files.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	done := logging.LogOperationStart(p.logger, "pipeline.run")
	defer done()

	root := p.style.Clean(p.cfg.Root)
	dest := p.style.Clean(p.cfg.Dest)
	report := newReport(root, dest, p.cfg.DryRun)

	files, err := p.collect(root, dest)
	if err != nil {
		return report, err
	}
	p.logger.Info().Int("files", len(files)).Str("root", root).Msg("Selected stylesheets")

	emitted := make(map[string]emittedAsset)

	for _, rel := range files {
		if err := ctx.Err(); err != nil {
			return report, errors.Wrap(err, errors.ErrInternal, "run cancelled")
		}

		if err := p.processFile(ctx, root, dest, rel, report, emitted); err != nil {
			report.Errors = append(report.Errors, FileError{Path: p.style.Join(root, rel), Err: err})
			p.logger.Error().Err(err).Str("css", rel).Msg("Failed to process stylesheet")
			if p.cfg.FailFast {
				return report, err
			}
		}
	}

	p.logger.Info().
		Int("files", len(report.Files)).
		Int("assets", len(report.Assets)).
		Int("duplicates", report.Duplicates).
		Int("errors", len(report.Errors)).
		Bool("dryRun", report.DryRun).
		Msg("Run finished")

	return report, nil
}

// emittedAsset is the asset that claimed a destination first
type emittedAsset struct {
	source   string
	checksum string
}

// processFile rewrites one stylesheet. emitted maps asset destinations
// already claimed in this run to the asset written there.
func (p *Pipeline) processFile(ctx context.Context, root, dest, rel string, report *Report, emitted map[string]emittedAsset) error {
	abs := p.style.Join(root, rel)
	contents, err := p.fs.ReadFile(abs)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", abs).
			WithDetail("path", abs)
	}
	if contents == nil {
		contents = []byte{}
	}

	file := &types.File{Path: abs, Relative: rel, Base: root, Contents: contents}
	result, err := p.rw.Process(file, p.opts)
	if err != nil {
		return err
	}
	report.addCounts(result)

	sources := make(map[string]string, len(result.Assets))
	for _, o := range result.Occurrences {
		if o.State == types.OccurrenceRewritten {
			sources[o.Resolved.NewAssetRelativePath] = o.Resolved.AssetAbsolutePath
		}
	}

	cssDest := p.style.Join(dest, result.File.Relative)
	outputs := []Output{{Path: cssDest, Contents: result.File.Contents}}

	var assets []AssetRecord
	claimed := make(map[string]emittedAsset, len(result.Assets))
	fileReport := FileReport{
		Relative:    p.style.ToSlash(rel),
		Source:      abs,
		Destination: cssDest,
		Rewritten:   result.Count(types.OccurrenceRewritten),
	}

	for _, asset := range result.Assets {
		source := sources[asset.Relative]
		assetDest := p.style.Join(dest, asset.Relative)
		checksum := hashutil.Checksum(asset.Contents)

		if prev, ok := emitted[assetDest]; ok {
			report.Duplicates++
			if prev.checksum != checksum {
				p.logger.Warn().
					Str("destination", assetDest).
					Str("kept", prev.source).
					Str("dropped", source).
					Msg("Two assets relocate to the same destination, keeping the first")
			}
			continue
		}
		claimed[assetDest] = emittedAsset{source: source, checksum: checksum}

		outputs = append(outputs, Output{Path: assetDest, Contents: asset.Contents})
		fileReport.Assets++
		assets = append(assets, AssetRecord{
			Source:              source,
			SourceRelative:      p.slashRel(root, source),
			Destination:         assetDest,
			DestinationRelative: p.style.ToSlash(asset.Relative),
			CSS:                 fileReport.Relative,
			Checksum:            checksum,
		})
	}

	if err := p.writer.Write(ctx, outputs); err != nil {
		return err
	}

	report.Files = append(report.Files, fileReport)
	report.Assets = append(report.Assets, assets...)
	for dest, asset := range claimed {
		emitted[dest] = asset
	}
	p.logger.Debug().
		Str("css", fileReport.Relative).
		Int("rewritten", fileReport.Rewritten).
		Int("assets", fileReport.Assets).
		Msg("Processed stylesheet")
	return nil
}

func (p *Pipeline) slashRel(base, target string) string {
	rel, err := p.style.Rel(base, target)
	if err != nil {
		return p.style.ToSlash(target)
	}
	return p.style.ToSlash(rel)
}
