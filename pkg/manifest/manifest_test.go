package manifest

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/cssuseref/pkg/config"
	"github.com/arthur-debert/cssuseref/pkg/errors"
	"github.com/arthur-debert/cssuseref/pkg/filesystem"
	"github.com/arthur-debert/cssuseref/pkg/pipeline"
)

func sampleReport() *pipeline.Report {
	return &pipeline.Report{
		Root: "/src",
		Dest: "/out",
		Files: []pipeline.FileReport{
			{Relative: "css/site.css", Source: "/src/css/site.css", Destination: "/out/css/site.css", Rewritten: 1, Assets: 1},
		},
		Assets: []pipeline.AssetRecord{
			{
				Source:              "/src/img/a.png",
				SourceRelative:      "img/a.png",
				Destination:         "/out/assets/img/a.png",
				DestinationRelative: "assets/img/a.png",
				CSS:                 "css/site.css",
				Checksum:            "sha256:abc",
			},
		},
	}
}

func expected() *Document {
	return &Document{
		Root:   "/src",
		Dest:   "/out",
		CSS:    []Entry{{Source: "css/site.css", Destination: "css/site.css"}},
		Assets: []Entry{{Source: "img/a.png", Destination: "assets/img/a.png", Checksum: "sha256:abc"}},
	}
}

func TestFromReport(t *testing.T) {
	assert.Equal(t, expected(), FromReport(sampleReport()))

	doc, err := Marshal(expected(), config.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(doc), "checksum"))

	empty := FromReport(&pipeline.Report{Root: "/src", Dest: "/out"})
	assert.NotNil(t, empty.CSS)
	assert.NotNil(t, empty.Assets)
}

func TestMarshal(t *testing.T) {
	tests := []struct {
		format string
		decode func([]byte, interface{}) error
		text   string
	}{
		{"yaml", yaml.Unmarshal, "destination: assets/img/a.png"},
		{"", yaml.Unmarshal, "source: img/a.png"},
		{"toml", toml.Unmarshal, "[[assets]]"},
		{"json", json.Unmarshal, `"destination": "assets/img/a.png"`},
		{"json", json.Unmarshal, `"checksum": "sha256:abc"`},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			data, err := Marshal(FromReport(sampleReport()), tt.format)
			require.NoError(t, err)
			assert.Contains(t, string(data), tt.text)

			var back Document
			require.NoError(t, tt.decode(data, &back))
			assert.Equal(t, *expected(), back)
		})
	}

	t.Run("unknown", func(t *testing.T) {
		_, err := Marshal(expected(), "xml")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})
}

func TestWrite(t *testing.T) {
	fsys := filesystem.NewMemory()
	require.NoError(t, fsys.MkdirAll("/out", 0755))

	require.NoError(t, Write(fsys, "/out/manifest.json", "json", sampleReport()))

	data, err := fsys.ReadFile("/out/manifest.json")
	require.NoError(t, err)

	var doc Document
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, *expected(), doc)

	err = Write(fsys, "/out/manifest.xml", "xml", sampleReport())
	assert.Error(t, err)
}
