package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dcruzf/blog-data/internal/configloader"
	"github.com/dcruzf/blog-data/internal/logging"
	"github.com/dcruzf/blog-data/internal/ui/pretty"
	"github.com/dcruzf/blog-data/pkg/config"
)

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
		Args:  cobra.NoArgs,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the configuration a build would use, after merging the user and
project files, --config, .env and the environment.`,
		Args: cobra.NoArgs,
		RunE: runConfigShow,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "check FILE",
		Short: "Validate a configuration file",
		Long:  `Validate FILE on its own, on top of the defaults, and list every problem.`,
		Args:  cobra.ExactArgs(1),
		RunE:  runConfigCheck,
	})

	return cmd
}

func outputStyles(cmd *cobra.Command, w io.Writer) *pretty.Styles {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		mode = "auto"
	}
	return pretty.NewStyles(pretty.IsColorEnabled(mode, w))
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	ctx, logger := commandContext(cmd)

	fail := func(err error) error {
		logger.Error("config failed", logging.FieldError, err)
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
	})
	if err != nil {
		return fail(err)
	}

	styles := outputStyles(cmd, cmd.ErrOrStderr())
	for _, warning := range loaded.Warnings {
		fmt.Fprint(cmd.ErrOrStderr(), styles.FormatWarning(warning))
	}

	header := config.DefaultTemplateHeader() + "\n# Effective configuration"
	if len(loaded.LoadedFrom) == 0 {
		header += " (defaults only)"
	}
	for _, path := range loaded.LoadedFrom {
		header += "\n#   " + relativeTo(workDir, path)
	}

	content, err := loaded.Config.ToYAMLWithHeader(header)
	if err != nil {
		return fail(err)
	}
	if _, err := cmd.OutOrStdout().Write(content); err != nil {
		return fail(fmt.Errorf("write config: %w", err))
	}
	return nil
}

func runConfigCheck(cmd *cobra.Command, args []string) error {
	_, logger := commandContext(cmd)

	workDir, err := workingDir(cmd)
	if err != nil {
		return &ExitError{Code: ExitFailure, Err: err}
	}
	path := resolvePath(workDir, args[0])

	result, err := configloader.CheckFile(path)
	if err != nil {
		logger.Error("config check failed", logging.FieldError, err)
		return &ExitError{Code: ExitCode(err), Err: err}
	}

	out := cmd.OutOrStdout()
	styles := outputStyles(cmd, out)

	var buf strings.Builder
	for i := range result.Warnings {
		buf.WriteString(styles.FormatWarning(result.Warnings[i].Error()))
	}
	for i := range result.Errors {
		buf.WriteString(styles.FormatError(&result.Errors[i]))
	}
	if result.Valid() {
		buf.WriteString(styles.Success.Render("ok") + " " + styles.FormatPath(args[0]) + "\n")
	}
	if _, err := fmt.Fprint(out, buf.String()); err != nil {
		return fmt.Errorf("write result: %w", err)
	}

	if !result.Valid() {
		err := fmt.Errorf("%w: %d problem(s) in %s", configloader.ErrInvalidConfig, len(result.Errors), args[0])
		return &ExitError{Code: ExitConfigError, Err: err}
	}
	return nil
}
