package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/cssuseref/pkg/errors"
	"github.com/arthur-debert/cssuseref/pkg/pathstyle"
	"github.com/arthur-debert/cssuseref/pkg/types"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr bool
	}{
		{"plain", "static/{{.Base}}", false},
		{"funcs", `{{.Dir | lower}}/{{replace "-" "_" .Name}}{{.Ext}}`, false},
		{"empty", "", false},
		{"unknown_field", "{{.Hash}}", true},
		{"unclosed", "{{.Base", true},
		{"unknown_func", "{{sha .Base}}", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.text)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestNewPosix(t *testing.T) {
	tests := []struct {
		name     string
		template string
		input    string
		expected string
	}{
		{"flatten", "static/{{.Base}}", "assets/images/foo.png", "static/foo.png"},
		{"by_extension", `{{.OutputBase}}/{{.Ext | trimPrefix "."}}/{{.Name}}{{.Ext}}`, "assets/images/foo.png", "assets/png/foo.png"},
		{"keeps_dir", "{{.Dir}}/x-{{.Base}}", "assets/images/foo.png", "assets/images/x-foo.png"},
		{"cleaned", "./static//{{.Base}}", "assets/foo.png", "static/foo.png"},
		{"empty_output_keeps_path", `{{if eq .Ext ".gif"}}gifs/{{.Base}}{{end}}`, "assets/foo.png", "assets/foo.png"},
		{"conditional", `{{if eq .Ext ".gif"}}gifs/{{.Base}}{{end}}`, "assets/foo.gif", "gifs/foo.gif"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn, err := New(tt.template, pathstyle.Posix())
			require.NoError(t, err)
			got := fn(tt.input, "/src/css/site.css", "css/site.css", "../images/foo.png", types.Options{Base: "assets"})
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNewExposesCSSPaths(t *testing.T) {
	fn, err := New("{{.CSSRelative | trimSuffix \".css\"}}/{{.Base}}", pathstyle.Posix())
	require.NoError(t, err)

	got := fn("img/a.png", "/src/css/site.css", "css/site.css", "../img/a.png?v=1", types.Options{})
	assert.Equal(t, "css/site/a.png", got)

	fn, err = New("{{.URL}}", pathstyle.Posix())
	require.NoError(t, err)
	assert.Equal(t, "../img/a.png?v=1", fn("img/a.png", "/src/css/site.css", "css/site.css", "../img/a.png?v=1", types.Options{}))
}

func TestNewWindows(t *testing.T) {
	fn, err := New("static/{{.Dir}}/{{.Base}}", pathstyle.Windows())
	require.NoError(t, err)

	got := fn(`assets\images\foo.png`, `C:\src\css\site.css`, `css\site.css`, "../images/foo.png", types.Options{Base: "assets"})
	assert.Equal(t, `static\assets\images\foo.png`, got)
}

func TestNewInvalid(t *testing.T) {
	_, err := New("{{.Nope}}", pathstyle.Posix())
	assert.Error(t, err)
}
