// Package types defines the core types and interfaces used throughout cssuseref.
// This includes the pipeline File object, the parsed URL reference found in
// CSS text, the resolver output, the rewrite Options and the FS interface
// the rewriter reads assets through.
package types
