// Package cli provides the Cobra command structure for blog-data.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/dcruzf/blog-data/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root blog-data command with all subcommands.
// Run without a subcommand it behaves like "blog-data build".
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string
	var dir string

	rootFlags := &buildFlags{}

	rootCmd := &cobra.Command{
		Use:   "blog-data",
		Short: "Build the JSON data document of a markdown blog",
		Long: `blog-data reads a directory of markdown articles, an about page and a tag
catalog, renders every article to HTML with a table of contents and writes a
single JSON document for the site front end.

Front matter may be YAML (---), TOML (+++), JSON (;;;) or MultiMarkdown-style
"key: value" lines. Article ids are derived from the date and the title.`,
		Args: cobra.NoArgs,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd, rootFlags)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")
	rootCmd.PersistentFlags().StringVarP(&dir, "dir", "C", "",
		"run as if started in this directory")

	addBuildFlags(rootCmd, rootFlags)

	rootCmd.AddCommand(newBuildCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newRestoreCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newEnvCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	NewHelpFormatter().ApplyToCommand(rootCmd)

	return rootCmd
}

// commandContext returns the command context with a logger writing to the
// command's stderr.
func commandContext(cmd *cobra.Command) (context.Context, *log.Logger) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	level := "info"
	if debug, err := cmd.Flags().GetBool("debug"); err == nil && debug {
		level = "debug"
	}
	logger := logging.NewWithWriter(cmd.ErrOrStderr(), level)

	return logging.WithLogger(ctx, logger), logger
}

// workingDir resolves the --dir flag to an absolute directory.
func workingDir(cmd *cobra.Command) (string, error) {
	dir, err := cmd.Flags().GetString("dir")
	if err != nil {
		return "", fmt.Errorf("get dir flag: %w", err)
	}

	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", dir, err)
	}
	return abs, nil
}

// resolvePath makes path absolute relative to dir.
func resolvePath(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
