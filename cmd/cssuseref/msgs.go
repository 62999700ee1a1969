package cssuseref

import (
	"embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Rewrite stylesheet url() references and relocate their assets"
	MsgRewriteShort    = "Rewrite stylesheets and relocate the assets they reference"
	MsgGenConfigShort  = "Generate a default configuration file"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate man pages"

	// Status messages
	MsgConfigWritten = "Wrote %s\n"
	MsgConfigExists  = "%s already exists, not overwriting it"
	MsgManWritten    = "Wrote man pages to %s\n"
	MsgVersionFormat = "cssuseref version %s\n  commit: %s\n  built:  %s\n"

	// Error messages
	MsgErrLoadConfig    = "failed to load configuration"
	MsgErrWriteManifest = "failed to write manifest"
	MsgErrRunFailed     = "%d stylesheet(s) could not be processed"
	MsgErrNoCommand     = "no command specified"

	// Flag descriptions
	MsgFlagVerbose        = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun         = "Preview changes without writing anything"
	MsgFlagConfig         = "Config file (default: .cssuseref.toml in the current directory)"
	MsgFlagFormat         = "Output format: auto, term, text or json"
	MsgFlagDest           = "Directory rewritten stylesheets and assets are written to"
	MsgFlagBase           = "Directory, relative to dest, assets are relocated under"
	MsgFlagMatch          = "Only rewrite references matching this glob (repeatable, \"!\" negates)"
	MsgFlagInclude        = "Glob selecting stylesheets under root (repeatable)"
	MsgFlagExclude        = "Glob removing stylesheets from the selection (repeatable)"
	MsgFlagPathStyle      = "Path rules: native, posix or windows"
	MsgFlagPathTemplate   = "Template rendering each asset destination"
	MsgFlagManifest       = "Write a relocation manifest to this path, relative to dest"
	MsgFlagManifestFormat = "Manifest format: yaml, toml or json"
	MsgFlagFailFast       = "Stop at the first stylesheet that cannot be processed"
	MsgFlagWrite          = "Write the config to .cssuseref.toml instead of stdout"
	MsgFlagEffective      = "Print the configuration in effect instead of the defaults"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/rewrite-long.txt
	msgRewriteLongRaw string
	MsgRewriteLong    = strings.TrimSpace(msgRewriteLongRaw)

	//go:embed msgs/rewrite-example.txt
	msgRewriteExampleRaw string
	MsgRewriteExample    = strings.TrimRight(msgRewriteExampleRaw, "\n")

	//go:embed msgs/genconfig-long.txt
	msgGenConfigLongRaw string
	MsgGenConfigLong    = strings.TrimSpace(msgGenConfigLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)

//go:embed topics
var topicsFS embed.FS
