package output

import (
	"github.com/arthur-debert/cssuseref/pkg/errors"
	"github.com/arthur-debert/cssuseref/pkg/pipeline"
)

type summaryFile struct {
	CSS         string `json:"css"`
	Destination string `json:"destination"`
	Rewritten   int    `json:"rewritten"`
	Assets      int    `json:"assets"`
}

type summaryAsset struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	CSS         string `json:"css"`
	Checksum    string `json:"checksum,omitempty"`
}

type summaryCount struct {
	State string `json:"state"`
	Count int    `json:"count"`
}

type summaryError struct {
	Path    string `json:"path"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// summary is the rendered view of a pipeline report
type summary struct {
	DryRun      bool           `json:"dryRun"`
	Root        string         `json:"root"`
	Dest        string         `json:"dest"`
	Files       []summaryFile  `json:"files"`
	Assets      []summaryAsset `json:"assets"`
	AssetCount  int            `json:"assetCount"`
	Duplicates  int            `json:"duplicates"`
	Occurrences []summaryCount `json:"occurrences"`
	Errors      []summaryError `json:"errors"`
}

func newSummary(report *pipeline.Report) *summary {
	s := &summary{
		DryRun:      report.DryRun,
		Root:        report.Root,
		Dest:        report.Dest,
		Files:       make([]summaryFile, 0, len(report.Files)),
		Assets:      make([]summaryAsset, 0, len(report.Assets)),
		AssetCount:  len(report.Assets),
		Duplicates:  report.Duplicates,
		Occurrences: make([]summaryCount, 0, len(report.Counts)),
		Errors:      make([]summaryError, 0, len(report.Errors)),
	}
	for _, f := range report.Files {
		s.Files = append(s.Files, summaryFile{
			CSS:         f.Relative,
			Destination: f.Destination,
			Rewritten:   f.Rewritten,
			Assets:      f.Assets,
		})
	}
	for _, a := range report.Assets {
		s.Assets = append(s.Assets, summaryAsset{
			Source:      a.SourceRelative,
			Destination: a.DestinationRelative,
			CSS:         a.CSS,
			Checksum:    a.Checksum,
		})
	}
	for _, state := range report.States() {
		s.Occurrences = append(s.Occurrences, summaryCount{State: string(state), Count: report.Count(state)})
	}
	for _, e := range report.Errors {
		s.Errors = append(s.Errors, summaryError{
			Path:    e.Path,
			Code:    string(errors.GetErrorCode(e.Err)),
			Message: e.Err.Error(),
		})
	}
	return s
}
