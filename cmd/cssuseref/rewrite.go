package cssuseref

import (
	"github.com/spf13/cobra"

	"github.com/arthur-debert/cssuseref/pkg/config"
	"github.com/arthur-debert/cssuseref/pkg/errors"
	"github.com/arthur-debert/cssuseref/pkg/filesystem"
	"github.com/arthur-debert/cssuseref/pkg/logging"
	"github.com/arthur-debert/cssuseref/pkg/manifest"
	"github.com/arthur-debert/cssuseref/pkg/pathstyle"
	"github.com/arthur-debert/cssuseref/pkg/pipeline"
	"github.com/arthur-debert/cssuseref/pkg/synthfs"
	"github.com/arthur-debert/cssuseref/pkg/types"
)

// flagKeys maps rewrite flags to the config keys they override
var flagKeys = map[string]string{
	"dest":            "dest",
	"base":            "output.base",
	"match":           "output.match",
	"include":         "include",
	"exclude":         "exclude",
	"path-style":      "path_style",
	"path-template":   "output.path_template",
	"manifest":        "manifest.path",
	"manifest-format": "manifest.format",
	"fail-fast":       "fail_fast",
	"dry-run":         "dry_run",
}

func newRewriteCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rewrite [root]",
		Short:   MsgRewriteShort,
		Long:    MsgRewriteLong,
		Example: MsgRewriteExample,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRewrite(cmd, args, g, filesystem.NewOS())
		},
	}

	cmd.Flags().String("dest", "", MsgFlagDest)
	cmd.Flags().String("base", "", MsgFlagBase)
	cmd.Flags().StringArray("match", nil, MsgFlagMatch)
	cmd.Flags().StringArray("include", nil, MsgFlagInclude)
	cmd.Flags().StringArray("exclude", nil, MsgFlagExclude)
	cmd.Flags().String("path-style", "", MsgFlagPathStyle)
	cmd.Flags().String("path-template", "", MsgFlagPathTemplate)
	cmd.Flags().String("manifest", "", MsgFlagManifest)
	cmd.Flags().String("manifest-format", "", MsgFlagManifestFormat)
	cmd.Flags().Bool("fail-fast", false, MsgFlagFailFast)

	_ = cmd.RegisterFlagCompletionFunc("path-style", cobra.FixedCompletions(pathstyle.Names(), cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("manifest-format", cobra.FixedCompletions(config.ManifestFormats, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

// overrides collects the flags set on the command line as config keys
func overrides(cmd *cobra.Command, args []string) (map[string]interface{}, error) {
	out := make(map[string]interface{})
	if len(args) == 1 {
		out["root"] = args[0]
	}

	for name, key := range flagKeys {
		flag := cmd.Flags().Lookup(name)
		if flag == nil || !flag.Changed {
			continue
		}
		var (
			value interface{}
			err   error
		)
		switch flag.Value.Type() {
		case "bool":
			value, err = cmd.Flags().GetBool(name)
		case "stringArray":
			value, err = cmd.Flags().GetStringArray(name)
		default:
			value = flag.Value.String()
		}
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidInput, "invalid --%s", name)
		}
		out[key] = value
	}
	return out, nil
}

func runRewrite(cmd *cobra.Command, args []string, g *globalFlags, fsys types.FS) error {
	logger := logging.GetLogger("cmd.rewrite")

	renderer, err := g.renderer(cmd)
	if err != nil {
		return err
	}

	over, err := overrides(cmd, args)
	if err != nil {
		return err
	}

	cfg, err := config.Load(config.LoadOptions{ConfigFile: g.configFile, Overrides: over})
	if err != nil {
		return errors.Wrap(err, errors.GetErrorCode(err), MsgErrLoadConfig)
	}

	logger.Info().
		Str("root", cfg.Root).
		Str("dest", cfg.Dest).
		Bool("dryRun", cfg.DryRun).
		Msg("Starting rewrite")

	p, err := pipeline.New(cfg, fsys, nil, logging.GetLogger("pipeline"))
	if err != nil {
		return err
	}
	if style, _ := cfg.Style(); style != nil && style.Name() == pathstyle.NameNative {
		p = p.WithWriter(synthfs.NewWriter(cfg.Dest, cfg.DryRun))
	}

	report, runErr := p.Run(cmd.Context())
	if report != nil {
		if err := renderer.RenderReport(report); err != nil {
			return err
		}
	}
	if runErr != nil {
		return runErr
	}

	if cfg.Manifest.Path != "" && !cfg.DryRun {
		if err := writeManifest(cfg, fsys, report); err != nil {
			return err
		}
	}

	if report.Failed() {
		return errors.Newf(errors.ErrRunFailed, MsgErrRunFailed, len(report.Errors))
	}
	return nil
}

func writeManifest(cfg *config.Config, fsys types.FS, report *pipeline.Report) error {
	logger := logging.GetLogger("cmd.rewrite")

	style, err := cfg.Style()
	if err != nil {
		return err
	}
	path := cfg.Manifest.Path
	if !style.IsAbs(path) {
		path = style.Join(cfg.Dest, path)
	}
	if err := fsys.MkdirAll(style.Dir(path), 0755); err != nil {
		return errors.Wrap(err, errors.ErrDirCreate, MsgErrWriteManifest).WithDetail("path", path)
	}
	if err := manifest.Write(fsys, path, cfg.Manifest.Format, report); err != nil {
		return errors.Wrap(err, errors.GetErrorCode(err), MsgErrWriteManifest)
	}
	logger.Info().Str("path", path).Msg("Wrote manifest")
	return nil
}
