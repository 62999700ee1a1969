package types

// OccurrenceState describes what happened to one url(...) occurrence
type OccurrenceState string

const (
	OccurrenceSkipped    OccurrenceState = "skipped"
	OccurrenceUnmatched  OccurrenceState = "unmatched"
	OccurrenceRewritten  OccurrenceState = "rewritten"
	OccurrenceUnreadable OccurrenceState = "unreadable"
	OccurrenceInvalid    OccurrenceState = "invalid"
)

// Occurrence records the outcome for a single reference
type Occurrence struct {
	Reference   URLReference
	State       OccurrenceState
	Replacement string
	Resolved    *ResolvedAssetPaths
	Err         error
}

// Result is the output of rewriting one CSS file: the file with its
// contents replaced and the assets the driver has to emit, in the order
// they were first referenced.
type Result struct {
	File        *File
	Assets      []*File
	Occurrences []Occurrence
}

// Count returns how many occurrences ended in the given state
func (r *Result) Count(state OccurrenceState) int {
	n := 0
	for _, o := range r.Occurrences {
		if o.State == state {
			n++
		}
	}
	return n
}
