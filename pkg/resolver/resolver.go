package resolver

import (
	"strings"

	"github.com/arthur-debert/cssuseref/pkg/errors"
	"github.com/arthur-debert/cssuseref/pkg/pathstyle"
	"github.com/arthur-debert/cssuseref/pkg/types"
)

// Resolver computes relocated asset paths using one path style
type Resolver struct {
	style pathstyle.PathStyle
}

// New creates a resolver. A nil style selects the native one.
func New(style pathstyle.PathStyle) *Resolver {
	if style == nil {
		style = pathstyle.Native()
	}
	return &Resolver{style: style}
}

// Style returns the path style the resolver works with
func (r *Resolver) Style() pathstyle.PathStyle {
	return r.style
}

// Resolve computes the new url() text and the asset destination for the
// reference rawURL found in the CSS file at cssAbs. cssRel is the same file
// relative to the pipeline root; it only decides the direction of the new
// url. rawURL must already be stripped of quotes.
func (r *Resolver) Resolve(cssAbs, cssRel, rawURL string, opts types.Options) (*types.ResolvedAssetPaths, error) {
	s := r.style

	if !s.IsAbs(cssAbs) {
		return nil, errors.Newf(errors.ErrInvalidInput, "css path %q is not absolute", cssAbs).
			WithDetail("style", s.Name())
	}

	ref, err := ParseReference(rawURL)
	if err != nil {
		return nil, err
	}

	cssDirAbs := s.Dir(s.Clean(cssAbs))
	cssDirRel := s.Dir(cssRel)

	assetPath := s.FromSlash(ref.PathPart)
	assetAbs := s.Join(cssDirAbs, assetPath)
	assetBasename := s.Base(assetPath)
	assetDirAbs := s.Dir(assetAbs)

	common := CommonAncestor(s, assetDirAbs, cssDirAbs)
	assetPathPart, err := s.Rel(common, assetDirAbs)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidURLReference,
			"cannot place %q relative to %q", assetDirAbs, common)
	}

	newAssetDir := s.Join(opts.Base, assetPathPart)
	newAssetFile := s.Join(newAssetDir, assetBasename)

	if opts.PathTransform != nil {
		newAssetFile = opts.PathTransform(newAssetFile, cssAbs, cssRel, rawURL, opts)
		newAssetDir = s.Dir(newAssetFile)
		assetBasename = s.Base(newAssetFile)
	}

	relDir, err := s.Rel(cssDirRel, newAssetDir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidURLReference,
			"cannot reach %q from %q", newAssetDir, cssDirRel).
			WithDetail("reference", rawURL)
	}

	urlPath := assetBasename + ref.Query + ref.Fragment
	if relDir != "." {
		urlPath = s.ToSlash(relDir) + "/" + urlPath
	}

	return &types.ResolvedAssetPaths{
		NewURL:               `url("` + urlPath + `")`,
		AssetSourcePath:      assetPath,
		AssetAbsolutePath:    assetAbs,
		NewAssetRelativePath: newAssetFile,
	}, nil
}

// CommonAncestor returns the longest shared segment prefix of a and b.
// Segments are compared whole, so /a/b/c and /a/bc/d share only /a.
func CommonAncestor(s pathstyle.PathStyle, a, b string) string {
	as := s.Split(a)
	bs := s.Split(b)

	var common []string
	for i := 0; i < len(as) && i < len(bs); i++ {
		if as[i] != bs[i] {
			break
		}
		common = append(common, as[i])
	}

	sep := string(s.Separator())
	if len(common) == 1 && s.IsAbs(a) {
		// only the root (or volume) is shared
		return common[0] + sep
	}
	return strings.Join(common, sep)
}
