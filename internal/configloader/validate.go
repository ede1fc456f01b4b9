package configloader

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/chroma/v2/styles"

	"github.com/dcruzf/blog-data/pkg/config"
	"github.com/dcruzf/blog-data/pkg/datefmt"
)

// ErrInvalidConfig is matched by every configuration error returned by Load.
var ErrInvalidConfig = errors.New("invalid configuration")

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "markdown.toc_max").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string

	// Line is the line number in the config file (if known).
	Line int

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		if e.Line > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", e.FilePath, e.Line))
		} else {
			parts = append(parts, e.FilePath)
		}
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// Is matches ErrInvalidConfig.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidConfig
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

const (
	minHeadingLevel = 1
	maxHeadingLevel = 6
)

// Validate checks a merged configuration for errors and warnings.
// Errors are reported in a fixed order, locale first.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	validateLocale(cfg, result)
	validateDateFormat(cfg, result)

	if _, err := time.LoadLocation(cfg.Timezone); err != nil || cfg.Timezone == "" {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "timezone",
			Value:   cfg.Timezone,
			Message: fmt.Sprintf("unknown time zone %q", cfg.Timezone),
			Err:     err,
		})
	}

	for _, path := range []struct{ field, value string }{
		{"articles_dir", cfg.ArticlesDir},
		{"about_file", cfg.AboutFile},
		{"tags_file", cfg.TagsFile},
		{"output", cfg.Output},
	} {
		if strings.TrimSpace(path.value) == "" {
			result.Errors = append(result.Errors, ValidationError{
				Field:   path.field,
				Value:   path.value,
				Message: "must not be empty",
			})
		}
	}

	if strings.Trim(cfg.Indent, " \t") != "" {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "indent",
			Value:   cfg.Indent,
			Message: "indent may only contain spaces and tabs",
		})
	}

	if cfg.Jobs < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "jobs",
			Value:   cfg.Jobs,
			Message: "jobs must not be negative",
		})
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "format",
			Value:   cfg.Format,
			Message: fmt.Sprintf("invalid format %q; must be one of: text, table, json", cfg.Format),
		})
	}

	validateMarkdown(&cfg.Markdown, result)
	validateIgnorePatterns(cfg, result)

	return result
}

func validateLocale(cfg *config.Config, result *ValidationResult) {
	if _, err := datefmt.NormalizeLocale(cfg.Locale); err != nil {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "locale",
			Value:   cfg.Locale,
			Message: err.Error(),
			Err:     err,
		})
	}
}

func validateDateFormat(cfg *config.Config, result *ValidationResult) {
	if _, err := datefmt.Compile(cfg.DateFormat, ""); err != nil {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "date_format",
			Value:   cfg.DateFormat,
			Message: err.Error(),
			Err:     err,
		})
	}
}

func validateMarkdown(md *config.MarkdownConfig, result *ValidationResult) {
	for _, bound := range []struct {
		field string
		level int
	}{
		{"markdown.toc_min", md.TOCMin},
		{"markdown.toc_max", md.TOCMax},
	} {
		if bound.level < minHeadingLevel || bound.level > maxHeadingLevel {
			result.Errors = append(result.Errors, ValidationError{
				Field:   bound.field,
				Value:   bound.level,
				Message: fmt.Sprintf("heading level must be between %d and %d", minHeadingLevel, maxHeadingLevel),
			})
		}
	}

	if md.TOCMin > md.TOCMax {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "markdown.toc_min",
			Value:   md.TOCMin,
			Message: fmt.Sprintf("toc_min %d is greater than toc_max %d", md.TOCMin, md.TOCMax),
		})
	}

	if md.HighlightStyle != "" && styles.Get(md.HighlightStyle) == styles.Fallback &&
		!strings.EqualFold(md.HighlightStyle, styles.Fallback.Name) {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "markdown.highlight_style",
			Value:   md.HighlightStyle,
			Message: fmt.Sprintf("unknown highlight style %q; falling back to %q", md.HighlightStyle, styles.Fallback.Name),
		})
	}
}

// validateIgnorePatterns checks that ignore patterns are valid globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if _, err := filepath.Match(pattern, ""); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("ignore[%d]", i),
				Value:   pattern,
				Message: fmt.Sprintf("invalid glob pattern: %v", err),
				Err:     err,
			})
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}
