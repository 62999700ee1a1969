// Package testutil has the fixtures shared by cssuseref tests: source trees
// in a memory filesystem or on disk, and an isolated log location.
package testutil
