// Package manifest writes the relocation map of a run: which stylesheets
// were written and where every asset was copied to.
package manifest

import (
	"bytes"
	"encoding/json"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/cssuseref/pkg/config"
	"github.com/arthur-debert/cssuseref/pkg/errors"
	"github.com/arthur-debert/cssuseref/pkg/pipeline"
	"github.com/arthur-debert/cssuseref/pkg/types"
)

// Entry maps a source path to its destination. Paths are slash separated
// and relative to the run's root and destination.
type Entry struct {
	Source      string `yaml:"source" toml:"source" json:"source"`
	Destination string `yaml:"destination" toml:"destination" json:"destination"`
	// Checksum is set for assets only
	Checksum string `yaml:"checksum,omitempty" toml:"checksum,omitempty" json:"checksum,omitempty"`
}

// Document is the serialised manifest
type Document struct {
	Root   string  `yaml:"root" toml:"root" json:"root"`
	Dest   string  `yaml:"dest" toml:"dest" json:"dest"`
	CSS    []Entry `yaml:"css" toml:"css" json:"css"`
	Assets []Entry `yaml:"assets" toml:"assets" json:"assets"`
}

// FromReport builds the manifest of a run
func FromReport(report *pipeline.Report) *Document {
	doc := &Document{
		Root:   report.Root,
		Dest:   report.Dest,
		CSS:    make([]Entry, 0, len(report.Files)),
		Assets: make([]Entry, 0, len(report.Assets)),
	}
	for _, f := range report.Files {
		doc.CSS = append(doc.CSS, Entry{Source: f.Relative, Destination: f.Relative})
	}
	for _, a := range report.Assets {
		doc.Assets = append(doc.Assets, Entry{
			Source:      a.SourceRelative,
			Destination: a.DestinationRelative,
			Checksum:    a.Checksum,
		})
	}
	return doc
}

// Marshal encodes doc in format (yaml, toml or json)
func Marshal(doc *Document, format string) ([]byte, error) {
	switch format {
	case config.FormatYAML, "":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode manifest as yaml")
		}
		if err := enc.Close(); err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode manifest as yaml")
		}
		return buf.Bytes(), nil
	case config.FormatTOML:
		data, err := toml.Marshal(doc)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode manifest as toml")
		}
		return data, nil
	case config.FormatJSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode manifest as json")
		}
		return append(data, '\n'), nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown manifest format %q", format).
			WithDetail("format", format)
	}
}

// Write encodes the manifest of report and writes it to path
func Write(fsys types.FS, path, format string, report *pipeline.Report) error {
	data, err := Marshal(FromReport(report), format)
	if err != nil {
		return err
	}
	if err := fsys.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write manifest %s", path).
			WithDetail("path", path)
	}
	return nil
}
