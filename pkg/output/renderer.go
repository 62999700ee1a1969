// Package output renders the result of a run for people and scripts.
//
// Terminal output uses lipgloss colours and a pterm table. Text output is
// the same report without styling, and JSON output is meant for scripts.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pterm/pterm"

	"github.com/arthur-debert/cssuseref/pkg/errors"
	"github.com/arthur-debert/cssuseref/pkg/logging"
	"github.com/arthur-debert/cssuseref/pkg/pipeline"
)

// Messages
const (
	MsgDryRun      = "DRY RUN - nothing was written"
	MsgNoFiles     = "No stylesheets selected."
	MsgTotals      = "%d stylesheet(s), %d asset(s) relocated"
	MsgDuplicates  = ", %d duplicate(s) skipped"
	MsgFailed      = "Failed:"
	MsgErrorPrefix = "Error:"
)

// Renderer writes reports in one format
type Renderer struct {
	writer io.Writer
	format Format
	styles map[string]lipgloss.Style
}

// NewRenderer creates a renderer. FormatAuto is resolved against w.
func NewRenderer(w io.Writer, format Format) *Renderer {
	if format == FormatAuto {
		format = DetectFormat(w)
	}
	logger := logging.GetLogger("output")
	logger.Debug().Str("format", format.String()).Msg("Creating renderer")

	r := &Renderer{writer: w, format: format}
	if format == FormatTerminal {
		r.styles = newStyles(w)
	}
	return r
}

// Format returns the resolved output format
func (r *Renderer) Format() Format {
	return r.format
}

func (r *Renderer) style(name, text string) string {
	if s, ok := r.styles[name]; ok {
		return s.Render(text)
	}
	return text
}

// RenderReport writes the summary of a run
func (r *Renderer) RenderReport(report *pipeline.Report) error {
	s := newSummary(report)
	if r.format == FormatJSON {
		enc := json.NewEncoder(r.writer)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}

	var b strings.Builder
	if s.DryRun {
		b.WriteString(r.style(StyleWarning, MsgDryRun) + "\n")
	}

	if len(s.Files) == 0 {
		b.WriteString(r.style(StyleMuted, MsgNoFiles) + "\n")
	} else if r.format == FormatTerminal {
		table, err := r.table(s)
		if err != nil {
			return err
		}
		b.WriteString(table)
		b.WriteString("\n")
	} else {
		for _, f := range s.Files {
			fmt.Fprintf(&b, "  %s: %d rewritten, %d asset(s)\n", f.CSS, f.Rewritten, f.Assets)
		}
	}

	totals := fmt.Sprintf(MsgTotals, len(s.Files), s.AssetCount)
	if s.Duplicates > 0 {
		totals += fmt.Sprintf(MsgDuplicates, s.Duplicates)
	}
	b.WriteString(r.style(StyleHeading, totals) + "\n")

	if len(s.Occurrences) > 0 {
		parts := make([]string, 0, len(s.Occurrences))
		for _, o := range s.Occurrences {
			parts = append(parts, fmt.Sprintf("%s: %d", o.State, o.Count))
		}
		b.WriteString(r.style(StyleMuted, strings.Join(parts, "  ")) + "\n")
	}

	if len(s.Errors) > 0 {
		b.WriteString(r.style(StyleError, MsgFailed) + "\n")
		for _, e := range s.Errors {
			fmt.Fprintf(&b, "  %s: %s\n", e.Path, e.Message)
		}
	}

	_, err := io.WriteString(r.writer, b.String())
	return err
}

func (r *Renderer) table(s *summary) (string, error) {
	data := pterm.TableData{{"Stylesheet", "Rewritten", "Assets"}}
	for _, f := range s.Files {
		data = append(data, []string{f.CSS, strconv.Itoa(f.Rewritten), strconv.Itoa(f.Assets)})
	}
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to render table")
	}
	return out, nil
}

// RenderError writes err with an "Error:" prefix
func (r *Renderer) RenderError(err error) error {
	if r.format == FormatJSON {
		return json.NewEncoder(r.writer).Encode(map[string]string{
			"error": err.Error(),
			"code":  string(errors.GetErrorCode(err)),
		})
	}
	_, writeErr := fmt.Fprintf(r.writer, "%s %s\n", r.style(StyleError, MsgErrorPrefix), err.Error())
	return writeErr
}

// RenderMessage writes a single styled line
func (r *Renderer) RenderMessage(style, message string) error {
	if r.format == FormatJSON {
		return json.NewEncoder(r.writer).Encode(map[string]string{"message": message})
	}
	_, err := fmt.Fprintln(r.writer, r.style(style, message))
	return err
}
