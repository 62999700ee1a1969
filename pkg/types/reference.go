package types

// URLReference is one url(...) occurrence found in CSS text.
type URLReference struct {
	// RawMatch is the full matched text, url( and ) included
	RawMatch string

	// RawValue is the text between the parentheses, untrimmed
	RawValue string

	// Value is RawValue without surrounding whitespace and quotes
	Value string

	// PathPart is Value without query and fragment
	PathPart string

	// Query includes the leading '?' when present
	Query string

	// Fragment includes the leading '#' when present
	Fragment string

	// Start and End are byte offsets of RawMatch in the scanned text
	Start int
	End   int
}

// ResolvedAssetPaths is what the resolver computes for one reference.
type ResolvedAssetPaths struct {
	// NewURL is the replacement text, e.g. url("../assets/a.png?x=1")
	NewURL string

	// AssetSourcePath is the reference path in the path style's separators,
	// relative to the CSS file's directory
	AssetSourcePath string

	// AssetAbsolutePath is where the asset is read from
	AssetAbsolutePath string

	// NewAssetRelativePath is the destination relative to the pipeline base
	NewAssetRelativePath string
}
