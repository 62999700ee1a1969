package rewriter

import (
	"github.com/rs/zerolog"

	"github.com/arthur-debert/cssuseref/pkg/errors"
	"github.com/arthur-debert/cssuseref/pkg/logging"
	"github.com/arthur-debert/cssuseref/pkg/matchers"
	"github.com/arthur-debert/cssuseref/pkg/resolver"
	"github.com/arthur-debert/cssuseref/pkg/types"
)

// Rewriter processes CSS files one at a time. It keeps no state between
// calls.
type Rewriter struct {
	fs       types.FS
	resolver *resolver.Resolver
	logger   zerolog.Logger
}

// Option configures a Rewriter
type Option func(*Rewriter)

// WithLogger replaces the logger warnings are written to
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Rewriter) {
		r.logger = logger
	}
}

// New creates a rewriter reading assets from fsys
func New(fsys types.FS, res *resolver.Resolver, opts ...Option) *Rewriter {
	if res == nil {
		res = resolver.New(nil)
	}
	r := &Rewriter{
		fs:       fsys,
		resolver: res,
		logger:   logging.GetLogger("rewriter"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Process rewrites the url() references of file. The input file is not
// modified; the returned result carries an updated copy and the assets to
// emit, each destination at most once.
func (r *Rewriter) Process(file *types.File, opts types.Options) (*types.Result, error) {
	if file.IsNull() {
		return &types.Result{File: file}, nil
	}
	if file.IsStream() {
		return nil, errors.New(errors.ErrStreamingNotSupported, "Streaming not supported").
			WithDetail("file", file.Path)
	}

	match, err := matchers.New(opts.Match)
	if err != nil {
		return nil, err
	}

	logger := r.logger.With().Str("css", file.Relative).Logger()
	text := string(file.Contents)
	refs := Scan(text)
	logger.Debug().Int("references", len(refs)).Msg("Scanned CSS file")

	result := &types.Result{
		Occurrences: make([]types.Occurrence, 0, len(refs)),
	}
	emitted := make(map[string]bool)

	for _, ref := range refs {
		occ, asset := r.dispatch(file, ref, opts, match, logger)
		if asset != nil && !emitted[asset.Path] {
			emitted[asset.Path] = true
			result.Assets = append(result.Assets, asset)
		}
		result.Occurrences = append(result.Occurrences, occ)
	}

	out := *file
	out.Contents = []byte(Rebuild(text, result.Occurrences))
	result.File = &out

	logger.Debug().
		Int("rewritten", result.Count(types.OccurrenceRewritten)).
		Int("assets", len(result.Assets)).
		Msg("Rewrote CSS file")

	return result, nil
}

// dispatch decides the fate of one occurrence and, when it is rewritten,
// returns the asset to emit.
func (r *Rewriter) dispatch(file *types.File, ref types.URLReference, opts types.Options,
	match *matchers.Matcher, logger zerolog.Logger) (types.Occurrence, *types.File) {
	occ := types.Occurrence{Reference: ref, State: types.OccurrenceSkipped}

	if IsPassThrough(ref.Value) {
		logger.Trace().Str("url", ref.Value).Msg("Leaving reference unchanged")
		return occ, nil
	}

	if !match.Empty() {
		parsed, _ := resolver.ParseReference(ref.Value)
		if !match.MatchAny(ref.Value, parsed.PathPart) {
			occ.State = types.OccurrenceUnmatched
			logger.Debug().Str("url", ref.Value).Msg("Reference not selected by match patterns")
			return occ, nil
		}
	}

	resolved, err := r.resolver.Resolve(file.Path, file.Relative, ref.Value, opts)
	if err != nil {
		occ.State = types.OccurrenceInvalid
		occ.Err = err
		logger.Warn().Err(err).Str("url", ref.Value).
			Msgf("Can't interpret reference %q in %q. Ignoring.", ref.Value, file.Path)
		return occ, nil
	}
	occ.Resolved = resolved

	contents, err := r.fs.ReadFile(resolved.AssetAbsolutePath)
	if err != nil {
		occ.State = types.OccurrenceUnreadable
		occ.Err = errors.Wrapf(err, errors.ErrAssetUnreadable, "can't read asset file %q", resolved.AssetAbsolutePath).
			WithDetail("asset", resolved.AssetAbsolutePath).
			WithDetail("css", file.Path)
		logger.Warn().Str("asset", resolved.AssetAbsolutePath).
			Msgf("Can't read asset file %q referenced in %q. Ignoring.", resolved.AssetAbsolutePath, file.Path)
		return occ, nil
	}
	if contents == nil {
		contents = []byte{}
	}

	style := r.resolver.Style()
	asset := &types.File{
		Path:     style.Join(file.Base, resolved.NewAssetRelativePath),
		Relative: resolved.NewAssetRelativePath,
		Base:     file.Base,
		Contents: contents,
	}

	occ.State = types.OccurrenceRewritten
	occ.Replacement = resolved.NewURL
	logger.Debug().
		Str("url", ref.Value).
		Str("newUrl", resolved.NewURL).
		Str("destination", asset.Relative).
		Msg("Rewrote reference")

	return occ, asset
}
