package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dcruzf/blog-data/internal/logging"
	"github.com/dcruzf/blog-data/pkg/config"
	"github.com/dcruzf/blog-data/pkg/fsutil"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a blog-data configuration file",
		Long: `Create a .blog-data.yml configuration file holding the default settings.
Optional settings are included as comments.

Examples:
  blog-data init                       Create .blog-data.yml
  blog-data init -C site               Create site/.blog-data.yml
  blog-data init --output conf.yml     Write to a custom file path
  blog-data init --force               Replace an existing file`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", config.DefaultFileName, "configuration file path")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	ctx, logger := commandContext(cmd)

	workDir, err := workingDir(cmd)
	if err != nil {
		return err
	}
	path := resolvePath(workDir, flags.output)

	exists, err := fsutil.Exists(path)
	if err != nil {
		return &ExitError{Code: ExitCode(err), Err: err}
	}
	if exists {
		if !flags.force {
			err := fmt.Errorf("file %q already exists; use --force to overwrite", flags.output)
			logger.Error("init failed", logging.FieldError, err)
			return &ExitError{Code: ExitFailure, Err: err}
		}
		logger.Warn("overwriting existing file", logging.FieldPath, flags.output)
	}

	if err := fsutil.WriteAtomic(ctx, path, config.GenerateTemplate(), fsutil.DefaultFileMode); err != nil {
		logger.Error("init failed", logging.FieldError, err)
		return &ExitError{Code: ExitCode(err), Err: err}
	}

	logger.Info("created configuration file", logging.FieldPath, flags.output)
	logger.Info("run 'blog-data env' to list the environment overrides")

	return nil
}
