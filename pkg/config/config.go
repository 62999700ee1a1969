package config

import (
	"strings"

	"github.com/arthur-debert/cssuseref/pkg/errors"
	"github.com/arthur-debert/cssuseref/pkg/matchers"
	"github.com/arthur-debert/cssuseref/pkg/pathstyle"
	"github.com/arthur-debert/cssuseref/pkg/transform"
	"github.com/arthur-debert/cssuseref/pkg/types"
)

// Manifest formats
const (
	FormatYAML = "yaml"
	FormatTOML = "toml"
	FormatJSON = "json"
)

// ManifestFormats lists the accepted manifest formats
var ManifestFormats = []string{FormatYAML, FormatTOML, FormatJSON}

// Config is the complete configuration of a run
type Config struct {
	Root      string   `koanf:"root" toml:"root"`
	Dest      string   `koanf:"dest" toml:"dest"`
	Include   []string `koanf:"include" toml:"include"`
	Exclude   []string `koanf:"exclude" toml:"exclude"`
	PathStyle string   `koanf:"path_style" toml:"path_style"`
	DryRun    bool     `koanf:"dry_run" toml:"dry_run"`
	FailFast  bool     `koanf:"fail_fast" toml:"fail_fast"`

	Output   OutputConfig   `koanf:"output" toml:"output"`
	Manifest ManifestConfig `koanf:"manifest" toml:"manifest"`
}

// OutputConfig controls where assets are relocated to
type OutputConfig struct {
	Base         string   `koanf:"base" toml:"base"`
	Match        []string `koanf:"match" toml:"match"`
	PathTemplate string   `koanf:"path_template" toml:"path_template"`
}

// ManifestConfig controls the relocation manifest
type ManifestConfig struct {
	Path   string `koanf:"path" toml:"path"`
	Format string `koanf:"format" toml:"format"`
}

// Style returns the configured path style
func (c *Config) Style() (pathstyle.PathStyle, error) {
	style, err := pathstyle.ByName(c.PathStyle)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigValid, "invalid path_style %q", c.PathStyle).
			WithDetail("key", "path_style")
	}
	return style, nil
}

// Validate checks the values that cannot be caught while decoding
func (c *Config) Validate() error {
	style, err := c.Style()
	if err != nil {
		return err
	}

	if strings.TrimSpace(c.Root) == "" {
		return invalid("root", "root must be set")
	}
	if strings.TrimSpace(c.Dest) == "" {
		return invalid("dest", "dest must be set")
	}
	if style.Clean(c.Root) == style.Clean(c.Dest) {
		return invalid("dest", "dest must differ from root")
	}

	globs := []struct {
		key      string
		patterns []string
		build    func([]string) (*matchers.Matcher, error)
	}{
		{"include", c.Include, matchers.New},
		{"exclude", c.Exclude, matchers.NewExclude},
		{"output.match", c.Output.Match, matchers.New},
	}
	for _, g := range globs {
		if _, err := g.build(g.patterns); err != nil {
			return errors.Wrapf(err, errors.ErrConfigValid, "invalid %s pattern", g.key).
				WithDetail("key", g.key)
		}
	}

	if c.Output.PathTemplate != "" {
		if _, err := transform.Parse(c.Output.PathTemplate); err != nil {
			return errors.Wrap(err, errors.ErrConfigValid, "invalid output.path_template").
				WithDetail("key", "output.path_template")
		}
	}

	if c.Manifest.Path != "" && !isManifestFormat(c.Manifest.Format) {
		return invalid("manifest.format", "manifest.format must be one of %s, got %q",
			strings.Join(ManifestFormats, ", "), c.Manifest.Format)
	}

	return nil
}

// Options builds the rewrite options for this configuration
func (c *Config) Options() (types.Options, error) {
	opts := types.Options{
		Base:  c.Output.Base,
		Match: c.Output.Match,
	}
	if c.Output.PathTemplate == "" {
		return opts, nil
	}

	style, err := c.Style()
	if err != nil {
		return opts, err
	}
	fn, err := transform.New(c.Output.PathTemplate, style)
	if err != nil {
		return opts, errors.Wrap(err, errors.ErrConfigValid, "invalid output.path_template").
			WithDetail("key", "output.path_template")
	}
	opts.PathTransform = fn
	return opts, nil
}

func isManifestFormat(format string) bool {
	for _, f := range ManifestFormats {
		if f == format {
			return true
		}
	}
	return false
}

func invalid(key, format string, args ...interface{}) error {
	return errors.Newf(errors.ErrConfigValid, format, args...).WithDetail("key", key)
}
