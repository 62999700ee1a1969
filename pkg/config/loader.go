package config

import (
	_ "embed"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	cerrors "github.com/arthur-debert/cssuseref/pkg/errors"
	"github.com/arthur-debert/cssuseref/pkg/logging"
	"github.com/arthur-debert/cssuseref/pkg/pathstyle"
)

// EnvPrefix prefixes every environment variable read into the configuration
const EnvPrefix = "CSSUSEREF_"

// ConfigFileNames are looked up, in order, in the working directory. The
// first one found is loaded.
var ConfigFileNames = []string{
	".cssuseref.toml",
	"cssuseref.toml",
	".cssuseref.yaml",
	"cssuseref.yaml",
}

// sections are the nested tables an environment variable can address
var sections = []string{"output", "manifest"}

//go:embed embedded/defaults.toml
var defaultConfig []byte

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// LoadOptions controls where configuration is read from
type LoadOptions struct {
	// WorkDir is searched for a config file and relative paths are
	// resolved against it. Defaults to the current directory.
	WorkDir string

	// ConfigFile is an explicit config file. It must exist.
	ConfigFile string

	// Overrides are applied last, keyed by dotted path ("output.base")
	Overrides map[string]interface{}
}

// Load reads the configuration, later layers winning: embedded defaults,
// the project config file, CSSUSEREF_* environment variables and finally
// the overrides.
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")

	workDir := opts.WorkDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, cerrors.Wrap(err, cerrors.ErrConfigLoad, "failed to get working directory")
		}
		workDir = wd
	}

	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, cerrors.Wrap(err, cerrors.ErrConfigParse, "failed to load defaults")
	}

	// 2. Project config file
	configFile, err := findConfigFile(workDir, opts.ConfigFile)
	if err != nil {
		return nil, err
	}
	if configFile != "" {
		if err := k.Load(file.Provider(configFile), parserFor(configFile)); err != nil {
			return nil, cerrors.Wrapf(err, cerrors.ErrConfigParse, "failed to load config from %s", configFile).
				WithDetail("path", configFile)
		}
		logger.Debug().Str("path", configFile).Msg("Loaded config file")
	}

	// 3. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, cerrors.Wrap(err, cerrors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, cerrors.Wrap(err, cerrors.ErrConfigLoad, "failed to load overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, cerrors.Wrap(err, cerrors.ErrConfigParse, "failed to unmarshal configuration")
	}

	cfg.normalize(workDir)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Debug().
		Str("root", cfg.Root).
		Str("dest", cfg.Dest).
		Str("pathStyle", cfg.PathStyle).
		Msg("Configuration loaded")

	return &cfg, nil
}

// normalize trims list entries and, for native paths, makes root and dest
// absolute relative to workDir.
func (c *Config) normalize(workDir string) {
	c.Include = compact(c.Include)
	c.Exclude = compact(c.Exclude)
	c.Output.Match = compact(c.Output.Match)
	c.PathStyle = strings.ToLower(strings.TrimSpace(c.PathStyle))
	c.Manifest.Format = strings.ToLower(strings.TrimSpace(c.Manifest.Format))

	if c.PathStyle != "" && c.PathStyle != pathstyle.NameNative {
		return
	}
	if c.Root != "" && !filepath.IsAbs(c.Root) {
		c.Root = filepath.Join(workDir, c.Root)
	}
	if c.Dest != "" && !filepath.IsAbs(c.Dest) {
		c.Dest = filepath.Join(workDir, c.Dest)
	}
}

func findConfigFile(workDir, explicit string) (string, error) {
	if explicit != "" {
		if !filepath.IsAbs(explicit) {
			explicit = filepath.Join(workDir, explicit)
		}
		if _, err := os.Stat(explicit); err != nil {
			return "", cerrors.Wrapf(err, cerrors.ErrConfigLoad, "config file %s not found", explicit).
				WithDetail("path", explicit)
		}
		return explicit, nil
	}

	for _, name := range ConfigFileNames {
		path := filepath.Join(workDir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", nil
}

func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return toml.Parser()
	}
}

// envKey maps CSSUSEREF_OUTPUT_PATH_TEMPLATE to output.path_template. Only
// the first underscore after a section name separates levels, so top level
// keys keep theirs (CSSUSEREF_PATH_STYLE is path_style).
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	for _, section := range sections {
		if strings.HasPrefix(key, section+"_") {
			return section + "." + strings.TrimPrefix(key, section+"_")
		}
	}
	return key
}

func compact(list []string) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
