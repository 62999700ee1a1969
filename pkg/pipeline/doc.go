// Package pipeline drives a cssuseref run: it selects the stylesheets
// under a root, rewrites each one and writes the results and the
// relocated assets to the destination directory.
//
// Assets are deduplicated by destination across the whole run. The first
// stylesheet to claim a destination wins.
package pipeline
