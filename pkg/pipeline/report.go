package pipeline

import (
	"sort"

	"github.com/arthur-debert/cssuseref/pkg/types"
)

// FileReport describes one stylesheet written by a run
type FileReport struct {
	// Relative is the stylesheet path under root, slash separated
	Relative    string
	Source      string
	Destination string
	Rewritten   int
	Assets      int
}

// AssetRecord is one relocated asset. Relative paths are slash separated.
type AssetRecord struct {
	Source              string
	SourceRelative      string
	Destination         string
	DestinationRelative string
	// CSS is the first stylesheet that referenced the asset
	CSS string
	// Checksum is the sha256 of the asset contents
	Checksum string
}

// FileError is a stylesheet that could not be processed
type FileError struct {
	Path string
	Err  error
}

// Report summarises a run
type Report struct {
	Root   string
	Dest   string
	DryRun bool

	Files  []FileReport
	Assets []AssetRecord
	Errors []FileError

	// Duplicates counts assets already emitted by an earlier stylesheet
	Duplicates int

	Counts map[types.OccurrenceState]int
}

func newReport(root, dest string, dryRun bool) *Report {
	return &Report{
		Root:   root,
		Dest:   dest,
		DryRun: dryRun,
		Counts: make(map[types.OccurrenceState]int),
	}
}

// Failed reports whether any stylesheet could not be processed
func (r *Report) Failed() bool {
	return len(r.Errors) > 0
}

// Count returns the number of occurrences that ended in state
func (r *Report) Count(state types.OccurrenceState) int {
	return r.Counts[state]
}

// States returns the occurrence states seen in the run, sorted
func (r *Report) States() []types.OccurrenceState {
	states := make([]types.OccurrenceState, 0, len(r.Counts))
	for s := range r.Counts {
		states = append(states, s)
	}
	sort.Slice(states, func(i, j int) bool { return states[i] < states[j] })
	return states
}

func (r *Report) addCounts(result *types.Result) {
	for _, o := range result.Occurrences {
		r.Counts[o.State]++
	}
}
