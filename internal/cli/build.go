package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/dcruzf/blog-data/internal/configloader"
	"github.com/dcruzf/blog-data/internal/logging"
	"github.com/dcruzf/blog-data/pkg/builder"
	"github.com/dcruzf/blog-data/pkg/config"
	"github.com/dcruzf/blog-data/pkg/datefmt"
	"github.com/dcruzf/blog-data/pkg/render"
	"github.com/dcruzf/blog-data/pkg/reporter"
)

type buildFlags struct {
	articles       string
	about          string
	tags           string
	output         string
	indent         string
	locale         string
	timezone       string
	dateFormat     string
	format         string
	jobs           int
	ignore         []string
	recursive      bool
	highlight      bool
	detectLanguage bool
	backup         bool
	dryRun         bool
	summary        bool
	compact        bool
}

func newBuildCommand() *cobra.Command {
	flags := &buildFlags{}

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the data document",
		Long:  buildLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd, flags)
		},
	}

	addBuildFlags(cmd, flags)

	return cmd
}

const buildLongDescription = `Build the JSON data document from the articles directory, the about page
and the tag catalog.

Nothing is written when any article fails to load; the previous document is
left untouched. When the tag catalog does not exist it is derived from the
tags used by the articles.

Examples:
  blog-data build                          # Use .blog-data.yml or defaults
  blog-data build --dry-run --summary      # Check everything, write nothing
  blog-data build -o public/data.json      # Write somewhere else
  blog-data build --format json            # Machine-readable report
  blog-data build --date-format "%d %B %Y" --locale pt_BR.utf8`

func addBuildFlags(cmd *cobra.Command, flags *buildFlags) {
	cmd.Flags().StringVar(&flags.articles, "articles", "", "directory holding the articles (default \"articles\")")
	cmd.Flags().StringVar(&flags.about, "about", "", "about page source (default \"about.md\")")
	cmd.Flags().StringVar(&flags.tags, "tags", "", "tag catalog, JSON or YAML (default \"tags.json\")")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output document (default \"data/data.json\")")
	cmd.Flags().StringVar(&flags.indent, "indent", "", "indent the JSON document with this string")
	cmd.Flags().StringVar(&flags.locale, "locale", "", "locale for month and weekday names (default \"pt_BR.utf8\")")
	cmd.Flags().StringVar(&flags.timezone, "timezone", "", "IANA time zone, validated only (default \"America/Recife\")")
	cmd.Flags().StringVar(&flags.dateFormat, "date-format", "", "strftime-style date pattern (default \"%d/%m/%Y\")")
	cmd.Flags().StringVar(&flags.format, "format", "", "report format: text, table, json (default \"text\")")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "articles loaded concurrently (default sequential)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns of article files to skip")
	cmd.Flags().BoolVar(&flags.recursive, "recursive", false, "collect articles from subdirectories")
	cmd.Flags().BoolVar(&flags.highlight, "highlight", false, "highlight fenced code with chroma classes")
	cmd.Flags().BoolVar(&flags.detectLanguage, "detect-language", false, "guess the language of unlabelled code fences")
	cmd.Flags().BoolVar(&flags.backup, "backup", false, "keep a .bak copy of the previous document")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "build and check without writing")
	cmd.Flags().BoolVar(&flags.summary, "summary", false, "print a summary block instead of one line")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "compact JSON report")
}

// cliConfig maps the flags that were set on the command line to a config
// layer. Unset flags leave the lower layers alone.
func (f *buildFlags) cliConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := &config.Config{
		ArticlesDir: f.articles,
		AboutFile:   f.about,
		TagsFile:    f.tags,
		Output:      f.output,
		Indent:      f.indent,
		Locale:      f.locale,
		Timezone:    f.timezone,
		DateFormat:  f.dateFormat,
		Ignore:      f.ignore,
		Jobs:        f.jobs,
		DryRun:      f.dryRun,
		Summary:     f.summary,
	}

	if cmd.Flags().Changed("format") {
		format, err := config.ParseOutputFormat(f.format)
		if err != nil {
			return nil, &configloader.ValidationError{
				Field:   "--format",
				Value:   f.format,
				Message: err.Error(),
				Err:     err,
			}
		}
		cfg.Format = format
	}

	changed := func(name string, value bool) *bool {
		if !cmd.Flags().Changed(name) {
			return nil
		}
		return config.Bool(value)
	}
	cfg.Recursive = changed("recursive", f.recursive)
	cfg.Backups = changed("backup", f.backup)
	cfg.Markdown.Highlight = changed("highlight", f.highlight)
	cfg.Markdown.DetectLanguage = changed("detect-language", f.detectLanguage)

	return cfg, nil
}

func runBuild(cmd *cobra.Command, flags *buildFlags) error {
	ctx, logger := commandContext(cmd)

	if err := build(ctx, logger, cmd, flags); err != nil {
		logger.Error("build failed", logging.FieldError, err)
		return &ExitError{Code: ExitCode(err), Err: err}
	}
	return nil
}

func build(ctx context.Context, logger *log.Logger, cmd *cobra.Command, flags *buildFlags) error {
	workDir, err := workingDir(cmd)
	if err != nil {
		return err
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	cliCfg, err := flags.cliConfig(cmd)
	if err != nil {
		return err
	}

	loaded, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: resolvePath(workDir, configPath),
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return err
	}
	cfg := loaded.Config

	for _, warning := range loaded.Warnings {
		logger.Warn(warning)
	}
	if len(loaded.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldConfig, loaded.LoadedFrom)
	}
	logger.Debug("configuration resolved",
		logging.FieldLocale, cfg.Locale,
		logging.FieldTimezone, cfg.Timezone,
		logging.FieldDateFormat, cfg.DateFormat,
		logging.FieldDryRun, cfg.DryRun,
	)

	layout, err := datefmt.Compile(cfg.DateFormat, cfg.Locale)
	if err != nil {
		return fmt.Errorf("%w: %w", configloader.ErrInvalidConfig, err)
	}

	renderer := render.New(render.Options{
		UnsafeHTML:     config.BoolValue(cfg.Markdown.UnsafeHTML, true),
		Highlight:      config.BoolValue(cfg.Markdown.Highlight, false),
		HighlightStyle: cfg.Markdown.HighlightStyle,
		DetectLanguage: config.BoolValue(cfg.Markdown.DetectLanguage, false),
		TOCMin:         cfg.Markdown.TOCMin,
		TOCMax:         cfg.Markdown.TOCMax,
	})

	result, err := builder.New(renderer, builder.WithLayout(layout)).Run(ctx, builder.Options{
		ArticlesDir: resolvePath(workDir, cfg.ArticlesDir),
		AboutFile:   resolvePath(workDir, cfg.AboutFile),
		TagsFile:    resolvePath(workDir, cfg.TagsFile),
		Output:      resolvePath(workDir, cfg.Output),
		Indent:      cfg.Indent,
		Extensions:  builder.DefaultExtensions(),
		Recursive:   cfg.IsRecursive(),
		Exclude:     cfg.Ignore,
		Jobs:        cfg.Jobs,
		DryRun:      cfg.DryRun,
		Backup:      cfg.BackupsEnabled(),
	})
	if err != nil {
		return err
	}

	logger.Debug("build finished",
		logging.FieldOutput, result.Output,
		logging.FieldArticles, result.Stats.Articles,
		logging.FieldBytes, result.Stats.Bytes,
		logging.FieldWritten, result.Stats.Written,
		logging.FieldDuration, result.Stats.Duration,
	)

	result.Output = relativeTo(workDir, result.Output)
	result.BackupPath = relativeTo(workDir, result.BackupPath)

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      cfg.Format,
		Color:       colorMode,
		ShowSummary: cfg.Summary,
		Compact:     flags.compact,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	return nil
}

// relativeTo shortens path for display when it lies under dir.
func relativeTo(dir, path string) string {
	if path == "" {
		return path
	}
	rel, err := filepath.Rel(dir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}
