package configloader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/dcruzf/blog-data/pkg/config"
)

// EnvVarPrefix is the optional prefix for blog-data environment variables.
// A prefixed variable wins over the bare name.
const EnvVarPrefix = "BLOG_DATA_"

// DotEnvFile is the name of the dotenv file read from the working directory.
const DotEnvFile = ".env"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envMapping binds an environment variable (without prefix) to a config field.
type envMapping struct {
	name        string
	typ         envFieldType
	description string
	apply       func(cfg *config.Config, value any)
}

//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = []envMapping{
	{"LOCALE", envTypeString, "Locale for month and weekday names (e.g. pt_BR.utf8)",
		func(c *config.Config, v any) { c.Locale = v.(string) }},
	{"TIMEZONE", envTypeString, "IANA time zone, validated only (e.g. America/Recife)",
		func(c *config.Config, v any) { c.Timezone = v.(string) }},
	{"DATE_FORMAT", envTypeString, "strftime-style pattern for front-matter dates",
		func(c *config.Config, v any) { c.DateFormat = v.(string) }},
	{"ARTICLES_DIR", envTypeString, "Directory holding the article files",
		func(c *config.Config, v any) { c.ArticlesDir = v.(string) }},
	{"ABOUT_FILE", envTypeString, "Markdown file for the about page",
		func(c *config.Config, v any) { c.AboutFile = v.(string) }},
	{"TAGS_FILE", envTypeString, "Tag catalog (JSON or YAML)",
		func(c *config.Config, v any) { c.TagsFile = v.(string) }},
	{"OUTPUT", envTypeString, "Path of the generated JSON document",
		func(c *config.Config, v any) { c.Output = v.(string) }},
	{"INDENT", envTypeString, "JSON indentation unit; unset for compact output",
		func(c *config.Config, v any) { c.Indent = v.(string) }},
	{"RECURSIVE", envTypeBool, "Collect articles from subdirectories: true or false",
		func(c *config.Config, v any) { c.Recursive = config.Bool(v.(bool)) }},
	{"IGNORE", envTypeSlice, "Comma-separated glob patterns of articles to skip",
		func(c *config.Config, v any) { c.Ignore = v.([]string) }},
	{"BACKUPS", envTypeBool, "Keep a .bak copy of the previous output: true or false",
		func(c *config.Config, v any) { c.Backups = config.Bool(v.(bool)) }},
	{"JOBS", envTypeInt, "Articles loaded concurrently; 0 or 1 loads them one at a time",
		func(c *config.Config, v any) { c.Jobs = v.(int) }},
	{"DRY_RUN", envTypeBool, "Build without writing the output: true or false",
		func(c *config.Config, v any) { c.DryRun = v.(bool) }},
	{"FORMAT", envTypeString, "Report format: text, table or json",
		func(c *config.Config, v any) { c.Format = config.OutputFormat(v.(string)) }},
	{"MARKDOWN_UNSAFE_HTML", envTypeBool, "Pass raw HTML through: true or false",
		func(c *config.Config, v any) { c.Markdown.UnsafeHTML = config.Bool(v.(bool)) }},
	{"MARKDOWN_HIGHLIGHT", envTypeBool, "Highlight fenced code: true or false",
		func(c *config.Config, v any) { c.Markdown.Highlight = config.Bool(v.(bool)) }},
	{"MARKDOWN_HIGHLIGHT_STYLE", envTypeString, "Chroma style name (e.g. github)",
		func(c *config.Config, v any) { c.Markdown.HighlightStyle = v.(string) }},
	{"MARKDOWN_DETECT_LANGUAGE", envTypeBool, "Guess the language of unlabelled fences: true or false",
		func(c *config.Config, v any) { c.Markdown.DetectLanguage = config.Bool(v.(bool)) }},
	{"MARKDOWN_TOC_MIN", envTypeInt, "Shallowest heading level in the TOC (1-6)",
		func(c *config.Config, v any) { c.Markdown.TOCMin = v.(int) }},
	{"MARKDOWN_TOC_MAX", envTypeInt, "Deepest heading level in the TOC (1-6)",
		func(c *config.Config, v any) { c.Markdown.TOCMax = v.(int) }},
}

// LookupFunc reports the value of a variable and whether it is set.
type LookupFunc func(name string) (string, bool)

// LoadDotEnv applies the variables of a dotenv file to the configuration.
// A missing file is not an error. Returns whether the file was read.
func LoadDotEnv(cfg *config.Config, path string) (bool, error) {
	if !fileExists(path) {
		return false, nil
	}

	values, err := godotenv.Read(path)
	if err != nil {
		return false, fmt.Errorf("%w: read %s: %w", ErrInvalidConfig, path, err)
	}

	lookup := func(name string) (string, bool) {
		v, ok := values[name]
		return v, ok
	}
	if err := ApplyEnv(cfg, lookup); err != nil {
		return false, fmt.Errorf("%s: %w", path, err)
	}
	return true, nil
}

// ApplyEnv applies every known variable reported by lookup to cfg.
// Empty values are ignored.
func ApplyEnv(cfg *config.Config, lookup LookupFunc) error {
	if cfg == nil {
		return nil
	}

	for _, mapping := range envMappings {
		envVar, value := resolveEnv(lookup, mapping.name)
		if value == "" {
			continue
		}

		parsed, err := parseEnvValue(mapping.typ, value, envVar)
		if err != nil {
			return err
		}
		mapping.apply(cfg, parsed)
	}

	return nil
}

// resolveEnv returns the prefixed variable if set, the bare one otherwise.
func resolveEnv(lookup LookupFunc, name string) (string, string) {
	if value, ok := lookup(EnvVarPrefix + name); ok && value != "" {
		return EnvVarPrefix + name, value
	}
	value, _ := lookup(name)
	return name, value
}

func parseEnvValue(typ envFieldType, value, envVar string) (any, error) {
	switch typ {
	case envTypeString:
		return value, nil
	case envTypeBool:
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return nil, &ValidationError{
				Field:   envVar,
				Value:   value,
				Message: fmt.Sprintf("invalid boolean %q (expected true/false/1/0)", value),
				Err:     err,
			}
		}
		return b, nil
	case envTypeInt:
		i, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return nil, &ValidationError{
				Field:   envVar,
				Value:   value,
				Message: fmt.Sprintf("invalid integer %q", value),
				Err:     err,
			}
		}
		return i, nil
	case envTypeSlice:
		return parseSliceValue(value), nil
	default:
		return nil, fmt.Errorf("%w: unknown field type for %s", ErrInvalidConfig, envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// EnvVar describes a supported environment variable.
type EnvVar struct {
	Name        string
	Prefixed    string
	Description string
}

// ListEnvVars returns every supported environment variable in a stable order.
func ListEnvVars() []EnvVar {
	vars := make([]EnvVar, 0, len(envMappings))
	for _, mapping := range envMappings {
		vars = append(vars, EnvVar{
			Name:        mapping.name,
			Prefixed:    EnvVarPrefix + mapping.name,
			Description: mapping.description,
		})
	}
	return vars
}
