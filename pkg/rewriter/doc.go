// Package rewriter rewrites the url(...) references of one CSS file and
// collects the assets that have to be copied to their new location.
//
// Processing happens in two phases. Scan finds every url(...) occurrence
// and each one is classified: references that are root-absolute, data URIs,
// bare fragments or carry a scheme pass through untouched; references not
// selected by Options.Match are left alone; everything else goes through
// the resolver and has its asset read. Rebuild then produces the new text
// in a single pass.
//
// A failed asset read or an unparseable reference only affects its own
// occurrence: it is logged as a warning and the original text is kept.
// Streamed (not buffered) files are rejected as a whole.
package rewriter
