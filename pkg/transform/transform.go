// Package transform builds asset path transforms from text/template
// strings, so relocations can be customised from a config file.
//
// A template sees the computed destination in slash form and renders the
// new one:
//
//	static/{{.Ext | trimPrefix "."}}/{{.Name}}{{.Ext}}
//
// The rendered path is cleaned and converted back to the path style the
// rewrite runs with. An empty rendering keeps the computed destination.
package transform

import (
	"bytes"
	"path"
	"strings"
	"text/template"

	"github.com/arthur-debert/cssuseref/pkg/errors"
	"github.com/arthur-debert/cssuseref/pkg/logging"
	"github.com/arthur-debert/cssuseref/pkg/pathstyle"
	"github.com/arthur-debert/cssuseref/pkg/types"
)

// Data is what a path template is executed against. All paths use '/'.
type Data struct {
	// Path is the computed destination, relative to the output root
	Path string
	Dir  string
	Base string
	// Name is Base without its extension
	Name string
	Ext  string

	CSSPath     string
	CSSRelative string
	// URL is the reference as written in the stylesheet
	URL string
	// OutputBase is the configured output base
	OutputBase string
}

var funcs = template.FuncMap{
	"lower":      strings.ToLower,
	"upper":      strings.ToUpper,
	"replace":    func(old, new, s string) string { return strings.ReplaceAll(s, old, new) },
	"trimPrefix": func(prefix, s string) string { return strings.TrimPrefix(s, prefix) },
	"trimSuffix": func(suffix, s string) string { return strings.TrimSuffix(s, suffix) },
}

// Parse compiles a path template. Unknown fields are reported here rather
// than on first use.
func Parse(text string) (*template.Template, error) {
	tmpl, err := template.New("path_template").
		Funcs(funcs).
		Option("missingkey=error").
		Parse(text)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "invalid path template %q", text).
			WithDetail("template", text)
	}
	if _, err := render(tmpl, Data{}); err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "invalid path template %q", text).
			WithDetail("template", text)
	}
	return tmpl, nil
}

// New returns a PathTransformFunc rendering text for every asset. A
// template that fails at run time leaves the computed path unchanged.
func New(text string, style pathstyle.PathStyle) (types.PathTransformFunc, error) {
	tmpl, err := Parse(text)
	if err != nil {
		return nil, err
	}
	if style == nil {
		style = pathstyle.Native()
	}
	logger := logging.GetLogger("transform")

	return func(newAssetPath, cssAbs, cssRel, rawURL string, opts types.Options) string {
		data := dataFor(style, newAssetPath, cssAbs, cssRel, rawURL, opts)
		out, err := render(tmpl, data)
		if err != nil {
			logger.Warn().Err(err).Str("asset", newAssetPath).Msg("Path template failed, keeping computed path")
			return newAssetPath
		}
		if out == "" {
			return newAssetPath
		}
		return style.FromSlash(path.Clean(out))
	}, nil
}

func dataFor(style pathstyle.PathStyle, newAssetPath, cssAbs, cssRel, rawURL string, opts types.Options) Data {
	p := style.ToSlash(newAssetPath)
	base := path.Base(p)
	ext := path.Ext(base)
	return Data{
		Path:        p,
		Dir:         path.Dir(p),
		Base:        base,
		Name:        strings.TrimSuffix(base, ext),
		Ext:         ext,
		CSSPath:     style.ToSlash(cssAbs),
		CSSRelative: style.ToSlash(cssRel),
		URL:         rawURL,
		OutputBase:  style.ToSlash(opts.Base),
	}
}

func render(tmpl *template.Template, data Data) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}
