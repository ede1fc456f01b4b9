// Package config defines the configuration types for blog-data.
// These types are plain data; discovery, merging and validation live in
// internal/configloader.
package config

// Defaults applied by NewConfig.
const (
	DefaultLocale         = "pt_BR.utf8"
	DefaultTimezone       = "America/Recife"
	DefaultDateFormat     = "%d/%m/%Y"
	DefaultArticlesDir    = "articles"
	DefaultAboutFile      = "about.md"
	DefaultTagsFile       = "tags.json"
	DefaultOutput         = "data/data.json"
	DefaultHighlightStyle = "github"
	DefaultTOCMin         = 1
	DefaultTOCMax         = 6
)

// OutputFormat selects how the build report is printed.
type OutputFormat string

const (
	FormatText  OutputFormat = "text"
	FormatTable OutputFormat = "table"
	FormatJSON  OutputFormat = "json"
)

// MarkdownConfig controls the markdown renderer.
type MarkdownConfig struct {
	// UnsafeHTML passes raw HTML in article bodies through to the output.
	UnsafeHTML *bool `yaml:"unsafe_html,omitempty"`

	// Highlight enables syntax highlighting of fenced code blocks.
	Highlight *bool `yaml:"highlight,omitempty"`

	// HighlightStyle is the chroma style name used for CSS classes.
	HighlightStyle string `yaml:"highlight_style,omitempty"`

	// DetectLanguage tags unlabelled code fences with a guessed language.
	DetectLanguage *bool `yaml:"detect_language,omitempty"`

	TOCMin int `yaml:"toc_min,omitempty"`
	TOCMax int `yaml:"toc_max,omitempty"`
}

// Config is the root configuration structure.
type Config struct {
	// Locale names the language used to parse month and weekday names.
	Locale string `yaml:"locale,omitempty"`

	// Timezone is checked at load time but not applied to article dates.
	Timezone string `yaml:"timezone,omitempty"`

	// DateFormat is a strftime-style pattern for front-matter dates.
	DateFormat string `yaml:"date_format,omitempty"`

	ArticlesDir string `yaml:"articles_dir,omitempty"`
	AboutFile   string `yaml:"about_file,omitempty"`
	TagsFile    string `yaml:"tags_file,omitempty"`
	Output      string `yaml:"output,omitempty"`

	// Indent is the JSON indentation unit; empty means compact output.
	Indent string `yaml:"indent,omitempty"`

	// Recursive also collects articles from subdirectories.
	Recursive *bool `yaml:"recursive,omitempty"`

	// Ignore contains glob patterns for article files to skip.
	Ignore []string `yaml:"ignore,omitempty"`

	// Backups keeps a .bak copy of the previous output.
	Backups *bool `yaml:"backups,omitempty"`

	// Jobs is the number of articles loaded concurrently; 0 or 1 is sequential.
	Jobs int `yaml:"jobs,omitempty"`

	Markdown MarkdownConfig `yaml:"markdown,omitempty"`

	// CLI-level options (not persisted to config files).

	// DryRun builds the document without writing it.
	DryRun bool `yaml:"-"`

	// Format selects the report format.
	Format OutputFormat `yaml:"-"`

	// Summary prints a multi-line report instead of a single line.
	Summary bool `yaml:"-"`
}

// NewConfig returns a Config with every default filled in.
func NewConfig() *Config {
	return &Config{
		Locale:      DefaultLocale,
		Timezone:    DefaultTimezone,
		DateFormat:  DefaultDateFormat,
		ArticlesDir: DefaultArticlesDir,
		AboutFile:   DefaultAboutFile,
		TagsFile:    DefaultTagsFile,
		Output:      DefaultOutput,
		Recursive:   Bool(false),
		Backups:     Bool(false),
		Markdown: MarkdownConfig{
			UnsafeHTML:     Bool(true),
			Highlight:      Bool(false),
			HighlightStyle: DefaultHighlightStyle,
			DetectLanguage: Bool(false),
			TOCMin:         DefaultTOCMin,
			TOCMax:         DefaultTOCMax,
		},
		Format: FormatText,
	}
}

// Bool returns a pointer to v.
func Bool(v bool) *bool {
	return &v
}

// BoolValue dereferences p, returning fallback when p is nil.
func BoolValue(p *bool, fallback bool) bool {
	if p == nil {
		return fallback
	}
	return *p
}

// IsRecursive reports whether subdirectories are scanned.
func (c *Config) IsRecursive() bool {
	return BoolValue(c.Recursive, false)
}

// BackupsEnabled reports whether the previous output is backed up.
func (c *Config) BackupsEnabled() bool {
	return BoolValue(c.Backups, false)
}
