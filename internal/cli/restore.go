package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dcruzf/blog-data/internal/configloader"
	"github.com/dcruzf/blog-data/internal/logging"
	"github.com/dcruzf/blog-data/pkg/config"
	"github.com/dcruzf/blog-data/pkg/fsutil"
)

func newRestoreCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Put back the document saved by the last --backup build",
		Long: `Replace the data document with its ` + fsutil.BackupSuffix + ` copy, written by a build
run with --backup (or backups: true). The output path comes from the
configuration unless --output is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRestore(cmd, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "document to restore (default from configuration)")

	return cmd
}

func runRestore(cmd *cobra.Command, output string) error {
	ctx, logger := commandContext(cmd)

	fail := func(err error) error {
		logger.Error("restore failed", logging.FieldError, err)
		return &ExitError{Code: ExitCode(err), Err: err}
	}

	workDir, err := workingDir(cmd)
	if err != nil {
		return fail(err)
	}
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fail(fmt.Errorf("get config flag: %w", err))
	}

	loaded, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: resolvePath(workDir, configPath),
		CLIConfig:    &config.Config{Output: output},
	})
	if err != nil {
		return fail(err)
	}

	path := resolvePath(workDir, loaded.Config.Output)
	restored, err := fsutil.RestoreBackup(ctx, path)
	if err != nil {
		return fail(err)
	}
	if !restored {
		return fail(fmt.Errorf("%w: %s", fsutil.ErrNotFound, fsutil.BackupPath(path)))
	}

	logger.Info("restored document", logging.FieldOutput, relativeTo(workDir, path),
		logging.FieldBackup, relativeTo(workDir, fsutil.BackupPath(path)))
	return nil
}
