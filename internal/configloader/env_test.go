package configloader

import (
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/dcruzf/blog-data/pkg/config"
)

func TestApplyEnv(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	err := ApplyEnv(cfg, env(map[string]string{
		"RECURSIVE":                "1",
		"IGNORE":                   " drafts/** , ,*.tmp.md ",
		"MARKDOWN_TOC_MIN":         "2",
		"MARKDOWN_DETECT_LANGUAGE": "true",
		"BLOG_DATA_FORMAT":         "json",
		"FORMAT":                   "text",
		"INDENT":                   "\t",
		"DATE_FORMAT":              "",
	}))
	if err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}

	if !cfg.IsRecursive() {
		t.Error("expected recursive")
	}
	if want := []string{"drafts/**", "*.tmp.md"}; !reflect.DeepEqual(cfg.Ignore, want) {
		t.Errorf("ignore = %v, want %v", cfg.Ignore, want)
	}
	if cfg.Markdown.TOCMin != 2 {
		t.Errorf("toc_min = %d, want 2", cfg.Markdown.TOCMin)
	}
	if !config.BoolValue(cfg.Markdown.DetectLanguage, false) {
		t.Error("expected detect_language")
	}
	if cfg.Format != config.FormatJSON {
		t.Errorf("format = %q, prefixed variable should win", cfg.Format)
	}
	if cfg.Indent != "\t" {
		t.Errorf("indent = %q, want tab", cfg.Indent)
	}
	if cfg.DateFormat != config.DefaultDateFormat {
		t.Errorf("empty variable should be ignored, got %q", cfg.DateFormat)
	}
}

func TestApplyEnv_InvalidValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		vars  map[string]string
		field string
	}{
		{"bad bool", map[string]string{"BACKUPS": "sometimes"}, "BACKUPS"},
		{"bad prefixed bool", map[string]string{"BLOG_DATA_RECURSIVE": "maybe"}, "BLOG_DATA_RECURSIVE"},
		{"bad int", map[string]string{"MARKDOWN_TOC_MAX": "six"}, "MARKDOWN_TOC_MAX"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ApplyEnv(config.NewConfig(), env(tt.vars))
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if verr.Field != tt.field {
				t.Errorf("field = %q, want %q", verr.Field, tt.field)
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Error("expected ErrInvalidConfig")
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := config.NewConfig()

	read, err := LoadDotEnv(cfg, filepath.Join(dir, ".env"))
	if err != nil || read {
		t.Fatalf("missing file: read=%v err=%v", read, err)
	}

	path := filepath.Join(dir, ".env")
	writeFile(t, path, "# comment\nLOCALE=en_US.utf8\nexport TIMEZONE=\"Europe/Lisbon\"\n")

	read, err = LoadDotEnv(cfg, path)
	if err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}
	if !read {
		t.Error("expected file to be read")
	}
	if cfg.Locale != "en_US.utf8" || cfg.Timezone != "Europe/Lisbon" {
		t.Errorf("unexpected values locale=%q timezone=%q", cfg.Locale, cfg.Timezone)
	}
}

func TestListEnvVars(t *testing.T) {
	t.Parallel()

	vars := ListEnvVars()
	if len(vars) != len(envMappings) {
		t.Fatalf("expected %d vars, got %d", len(envMappings), len(vars))
	}

	seen := make(map[string]bool)
	for _, v := range vars {
		if seen[v.Name] {
			t.Errorf("duplicate variable %s", v.Name)
		}
		seen[v.Name] = true

		if !strings.HasPrefix(v.Prefixed, EnvVarPrefix) || !strings.HasSuffix(v.Prefixed, v.Name) {
			t.Errorf("bad prefixed name %q for %q", v.Prefixed, v.Name)
		}
		if v.Description == "" {
			t.Errorf("%s has no description", v.Name)
		}
	}

	for _, name := range []string{"LOCALE", "TIMEZONE", "DATE_FORMAT"} {
		if !seen[name] {
			t.Errorf("missing %s", name)
		}
	}
}

func TestMergeAll(t *testing.T) {
	t.Parallel()

	base := config.NewConfig()
	file := &config.Config{Output: "file.json", Ignore: []string{"a"}}
	cli := &config.Config{Markdown: config.MarkdownConfig{Highlight: config.Bool(true)}}

	merged := MergeAll(base, file, cli)

	if merged.Output != "file.json" {
		t.Errorf("output = %q", merged.Output)
	}
	if !config.BoolValue(merged.Markdown.Highlight, false) {
		t.Error("expected highlight from cli layer")
	}
	if !config.BoolValue(merged.Markdown.UnsafeHTML, false) {
		t.Error("expected unsafe_html default to survive")
	}
	if base.Output != config.DefaultOutput {
		t.Error("merge must not modify its inputs")
	}

	file.Ignore[0] = "changed"
	if merged.Ignore[0] != "a" {
		t.Error("merged slice aliases its source")
	}

	if MergeAll() != nil {
		t.Error("MergeAll() with no configs should be nil")
	}
}
