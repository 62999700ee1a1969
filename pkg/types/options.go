package types

// PathTransformFunc replaces the computed destination of an asset. It
// receives the computed path, the CSS file's absolute and relative paths,
// the reference as written in the CSS, and the options in effect.
type PathTransformFunc func(newAssetPath, cssAbsolutePath, cssRelativePath, rawURL string, opts Options) string

// Options configures a rewrite. The zero value is usable: assets keep the
// directory structure relative to the CSS file's common ancestor.
type Options struct {
	// Base is the output directory assets are relocated under
	Base string

	// Match restricts processing to references matching any of these globs
	Match []string

	// PathTransform, when set, overrides the destination of every asset
	PathTransform PathTransformFunc
}
