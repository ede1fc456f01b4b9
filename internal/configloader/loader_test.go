package configloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dcruzf/blog-data/pkg/config"
	"github.com/dcruzf/blog-data/pkg/datefmt"
)

// newProject returns a temp dir marked as a VCS root so discovery stops there.
func newProject(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir .git: %v", err)
	}
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// env returns a LookupFunc backed by a map.
func env(values map[string]string) LookupFunc {
	return func(name string) (string, bool) {
		v, ok := values[name]
		return v, ok
	}
}

func baseOptions(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:       dir,
		IgnoreUserConfig: true,
		Lookup:           env(nil),
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), baseOptions(newProject(t)))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config == nil {
		t.Fatal("Load() returned nil config")
	}
	if result.Config.Locale != config.DefaultLocale {
		t.Errorf("expected locale %q, got %q", config.DefaultLocale, result.Config.Locale)
	}
	if result.Config.Output != config.DefaultOutput {
		t.Errorf("expected output %q, got %q", config.DefaultOutput, result.Config.Output)
	}
	if len(result.LoadedFrom) != 0 {
		t.Errorf("expected no loaded files, got %v", result.LoadedFrom)
	}
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	writeFile(t, filepath.Join(dir, ".blog-data.yml"), `
locale: en_US.UTF-8
date_format: "%Y-%m-%d"
markdown:
  unsafe_html: false
  toc_max: 3
`)

	result, err := Load(context.Background(), baseOptions(dir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.Locale != "en_US.UTF-8" {
		t.Errorf("expected locale en_US.UTF-8, got %q", cfg.Locale)
	}
	if cfg.DateFormat != "%Y-%m-%d" {
		t.Errorf("expected date format %%Y-%%m-%%d, got %q", cfg.DateFormat)
	}
	if config.BoolValue(cfg.Markdown.UnsafeHTML, true) {
		t.Error("expected unsafe_html false from project config")
	}
	if cfg.Markdown.TOCMax != 3 || cfg.Markdown.TOCMin != 1 {
		t.Errorf("expected toc bounds 1..3, got %d..%d", cfg.Markdown.TOCMin, cfg.Markdown.TOCMax)
	}
	if cfg.ArticlesDir != config.DefaultArticlesDir {
		t.Errorf("expected default articles dir, got %q", cfg.ArticlesDir)
	}
	if len(result.LoadedFrom) != 1 {
		t.Errorf("expected 1 loaded file, got %d", len(result.LoadedFrom))
	}
}

func TestLoad_ProjectConfigFoundUpward(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	writeFile(t, filepath.Join(dir, "blog-data.yaml"), "output: public/data.json\n")

	nested := filepath.Join(dir, "content", "posts")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	result, err := Load(context.Background(), baseOptions(nested))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Config.Output != "public/data.json" {
		t.Errorf("expected output from parent config, got %q", result.Config.Output)
	}
	if result.Paths.Project != filepath.Join(dir, "blog-data.yaml") {
		t.Errorf("unexpected project path %q", result.Paths.Project)
	}
}

func TestLoad_ExplicitConfigOverridesProject(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	writeFile(t, filepath.Join(dir, ".blog-data.yml"), "output: project.json\ntags_file: tags.yaml\n")
	custom := filepath.Join(dir, "custom.yml")
	writeFile(t, custom, "output: explicit.json\n")

	opts := baseOptions(dir)
	opts.ExplicitPath = custom

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Output != "explicit.json" {
		t.Errorf("expected explicit output, got %q", result.Config.Output)
	}
	if result.Config.TagsFile != "tags.yaml" {
		t.Errorf("expected project tags file to survive, got %q", result.Config.TagsFile)
	}
	if len(result.LoadedFrom) != 2 || result.LoadedFrom[1] != custom {
		t.Errorf("unexpected load order %v", result.LoadedFrom)
	}
}

func TestLoad_ExplicitConfigMissing(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	opts := baseOptions(dir)
	opts.ExplicitPath = filepath.Join(dir, "missing.yml")

	_, err := Load(context.Background(), opts)
	if err == nil {
		t.Fatal("expected error for missing explicit config")
	}
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoad_Precedence(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	writeFile(t, filepath.Join(dir, ".blog-data.yml"), `
articles_dir: from-file
about_file: from-file.md
tags_file: from-file.json
output: from-file.json
`)
	writeFile(t, filepath.Join(dir, ".env"), `
ABOUT_FILE=from-dotenv.md
TAGS_FILE=from-dotenv.json
OUTPUT=from-dotenv.json
`)

	opts := baseOptions(dir)
	opts.Lookup = env(map[string]string{
		"TAGS_FILE":        "from-env.json",
		"OUTPUT":           "from-env.json",
		"BLOG_DATA_OUTPUT": "from-prefixed-env.json",
	})
	opts.CLIConfig = &config.Config{ArticlesDir: "from-cli"}

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	checks := []struct {
		name, got, want string
	}{
		{"articles_dir", cfg.ArticlesDir, "from-cli"},
		{"about_file", cfg.AboutFile, "from-dotenv.md"},
		{"tags_file", cfg.TagsFile, "from-env.json"},
		{"output", cfg.Output, "from-prefixed-env.json"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s: got %q, want %q", c.name, c.got, c.want)
		}
	}
}

func TestLoad_IgnoreDotEnvAndEnv(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	writeFile(t, filepath.Join(dir, ".env"), "OUTPUT=from-dotenv.json\n")

	opts := baseOptions(dir)
	opts.IgnoreDotEnv = true
	opts.IgnoreEnv = true
	opts.Lookup = env(map[string]string{"OUTPUT": "from-env.json"})

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Config.Output != config.DefaultOutput {
		t.Errorf("expected default output, got %q", result.Config.Output)
	}
}

func TestLoad_CLIOverrides(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	writeFile(t, filepath.Join(dir, ".blog-data.yml"), "recursive: true\nbackups: true\n")

	opts := baseOptions(dir)
	opts.CLIConfig = &config.Config{
		Recursive: config.Bool(false),
		DryRun:    true,
		Format:    config.FormatJSON,
	}

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.IsRecursive() {
		t.Error("expected recursive false (CLI override)")
	}
	if !cfg.BackupsEnabled() {
		t.Error("expected backups true from project config")
	}
	if !cfg.DryRun {
		t.Error("expected dry run (CLI override)")
	}
	if cfg.Format != config.FormatJSON {
		t.Errorf("expected json format, got %q", cfg.Format)
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		field   string
	}{
		{"bad date format", "date_format: \"%Q\"\n", "date_format"},
		{"bad timezone", "timezone: Mars/Olympus\n", "timezone"},
		{"toc out of range", "markdown:\n  toc_max: 7\n", "markdown.toc_max"},
		{"toc inverted", "markdown:\n  toc_min: 4\n  toc_max: 2\n", "markdown.toc_min"},
		{"bad indent", "indent: \"x\"\n", "indent"},
		{"bad ignore glob", "ignore:\n  - \"[\"\n", "ignore[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := newProject(t)
			writeFile(t, filepath.Join(dir, ".blog-data.yml"), tt.content)

			_, err := Load(context.Background(), baseOptions(dir))
			if err == nil {
				t.Fatal("expected validation error")
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T: %v", err, err)
			}
			if verr.Field != tt.field {
				t.Errorf("expected field %q, got %q", tt.field, verr.Field)
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Error("expected error to match ErrInvalidConfig")
			}
		})
	}
}

func TestLoad_LocaleUnavailable(t *testing.T) {
	t.Parallel()

	opts := baseOptions(newProject(t))
	opts.Lookup = env(map[string]string{"LOCALE": "not a locale!"})

	_, err := Load(context.Background(), opts)
	if err == nil {
		t.Fatal("expected locale error")
	}

	var lerr *datefmt.LocaleUnavailableError
	if !errors.As(err, &lerr) {
		t.Fatalf("expected LocaleUnavailableError, got %T: %v", err, err)
	}
	if lerr.Locale != "not a locale!" {
		t.Errorf("unexpected locale %q", lerr.Locale)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	writeFile(t, filepath.Join(dir, ".blog-data.yml"), "locale: [oops\n")

	_, err := Load(context.Background(), baseOptions(dir))
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, baseOptions(newProject(t)))
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestLoad_UnknownHighlightStyleWarns(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	writeFile(t, filepath.Join(dir, ".blog-data.yml"), "markdown:\n  highlight_style: no-such-style\n")

	result, err := Load(context.Background(), baseOptions(dir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %v", result.Warnings)
	}
}

func TestCheckFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := filepath.Join(dir, "good.yml")
	bad := filepath.Join(dir, "bad.yml")
	writeFile(t, good, "date_format: \"%d de %B de %Y\"\n")
	writeFile(t, bad, "timezone: Mars/Olympus\nmarkdown:\n  toc_min: 4\n  toc_max: 2\n  highlight_style: nope\n")

	result, err := CheckFile(good)
	if err != nil {
		t.Fatalf("CheckFile(good) error = %v", err)
	}
	if !result.Valid() || result.HasWarnings() {
		t.Errorf("expected clean result, got %v", result.AllMessages())
	}

	result, err = CheckFile(bad)
	if err != nil {
		t.Fatalf("CheckFile(bad) error = %v", err)
	}
	if len(result.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %v", result.AllMessages())
	}
	if result.Errors[0].Field != "timezone" || result.Errors[1].Field != "markdown.toc_min" {
		t.Errorf("unexpected fields %q, %q", result.Errors[0].Field, result.Errors[1].Field)
	}
	for _, e := range append(result.Errors, result.Warnings...) {
		if e.FilePath != bad {
			t.Errorf("error %v missing file path", e)
		}
	}
	if len(result.Warnings) != 1 {
		t.Errorf("expected 1 warning, got %d", len(result.Warnings))
	}

	if _, err := CheckFile(filepath.Join(dir, "missing.yml")); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for missing file, got %v", err)
	}
}
