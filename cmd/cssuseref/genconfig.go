package cssuseref

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/cssuseref/pkg/config"
	"github.com/arthur-debert/cssuseref/pkg/errors"
)

func newGenConfigCmd(g *globalFlags) *cobra.Command {
	var (
		write     bool
		effective bool
	)

	cmd := &cobra.Command{
		Use:     "gen-config",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			content := config.GenerateConfigContent()
			if effective {
				cfg, err := config.Load(config.LoadOptions{ConfigFile: g.configFile})
				if err != nil {
					return errors.Wrap(err, errors.GetErrorCode(err), MsgErrLoadConfig)
				}
				if content, err = config.Marshal(cfg); err != nil {
					return err
				}
			}

			if !write {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), content)
				return err
			}

			wd, err := os.Getwd()
			if err != nil {
				return errors.Wrap(err, errors.ErrFileAccess, "failed to get working directory")
			}
			path := filepath.Join(wd, config.DefaultConfigFile)
			if _, err := os.Stat(path); err == nil {
				return errors.Newf(errors.ErrInvalidInput, MsgConfigExists, path).WithDetail("path", path)
			}
			if err := os.WriteFile(path, []byte(content+"\n"), 0644); err != nil {
				return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path)
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgConfigWritten, path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	cmd.Flags().BoolVar(&effective, "effective", false, MsgFlagEffective)

	return cmd
}
