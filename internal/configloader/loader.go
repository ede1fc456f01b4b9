// Package configloader resolves the blog-data configuration.
// It implements config file discovery, layered merging, dotenv and
// environment variable support, and validation.
package configloader

import (
	"context"
	"fmt"
	"os"

	"github.com/dcruzf/blog-data/pkg/config"
)

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config and .env.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	ExplicitPath string

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreDotEnv skips the .env file.
	IgnoreDotEnv bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// Lookup reads environment variables. Defaults to os.LookupEnv.
	Lookup LookupFunc

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (BLOG_DATA_NAME, then NAME)
//  3. .env file in the working directory
//  4. Explicit config file (opts.ExplicitPath)
//  5. Project config (.blog-data.yml upward search)
//  6. User config ($XDG_CONFIG_HOME/blog-data/config.yaml)
//  7. Defaults
//
// Configuration errors match ErrInvalidConfig.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	lookup := opts.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	files := []struct {
		kind string
		path string
		skip bool
	}{
		{"user", paths.User, opts.IgnoreUserConfig},
		{"project", paths.Project, opts.IgnoreProjectConfig},
		{"explicit", paths.Explicit, false},
	}
	for _, file := range files {
		if file.skip || file.path == "" {
			continue
		}
		fileCfg, err := loadConfigFile(file.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", file.kind, err)
		}
		cfg = merge(cfg, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, file.path)
	}

	if !opts.IgnoreDotEnv && paths.DotEnv != "" {
		if _, err := LoadDotEnv(cfg, paths.DotEnv); err != nil {
			return nil, fmt.Errorf("load dotenv: %w", err)
		}
		result.LoadedFrom = append(result.LoadedFrom, paths.DotEnv)
	}

	if !opts.IgnoreEnv {
		if err := ApplyEnv(cfg, lookup); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	validation := Validate(cfg)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}

	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

// loadConfigFile loads a configuration from a YAML file.
func loadConfigFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read file: %w", ErrInvalidConfig, err)
	}

	cfg, err := config.FromYAML(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
	}

	return cfg, nil
}

// CheckFile validates a single config file on top of the defaults, without
// discovery or environment overrides. Errors and warnings carry path.
func CheckFile(path string) (*ValidationResult, error) {
	fileCfg, err := loadConfigFile(path)
	if err != nil {
		return nil, err
	}
	return ValidateWithFile(merge(config.NewConfig(), fileCfg), path), nil
}
