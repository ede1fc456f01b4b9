package config

import "fmt"

// DefaultFileName is the name written by `blog-data init`.
const DefaultFileName = ".blog-data.yml"

// DefaultTemplateHeader returns the header for generated configs.
func DefaultTemplateHeader() string {
	return "# blog-data configuration"
}

// GenerateTemplate returns a commented configuration file holding the
// default values. Optional settings are commented out.
func GenerateTemplate() []byte {
	return fmt.Appendf(nil, `%s
# Every key can also be set through the environment, e.g. LOCALE or
# BLOG_DATA_LOCALE; run "blog-data env" for the full list.

# Locale used for month and weekday names in dates.
locale: %s

# IANA time zone. Checked at load time, dates are kept as written.
timezone: %s

# strftime-style pattern for front-matter dates (%%d %%m %%Y %%H %%M %%S %%B ...).
date_format: %q

# Inputs.
articles_dir: %s
about_file: %s
tags_file: %s

# Collect articles from subdirectories too.
# recursive: false

# Glob patterns for article files to skip.
# ignore:
#   - "drafts/**"
#   - "*.draft.md"

# Output document and JSON indentation ("" writes compact JSON).
output: %s
# indent: "  "

# Keep a .bak copy of the previous output.
# backups: false

# Articles loaded concurrently. 0 or 1 loads them one at a time.
# jobs: 1

markdown:
  # Pass raw HTML in articles through to the output.
  unsafe_html: true
  # Highlight fenced code with chroma CSS classes.
  highlight: false
  highlight_style: %s
  # Guess the language of unlabelled code fences.
  detect_language: false
  # Heading levels included in the table of contents.
  toc_min: %d
  toc_max: %d
`,
		DefaultTemplateHeader(),
		DefaultLocale,
		DefaultTimezone,
		DefaultDateFormat,
		DefaultArticlesDir,
		DefaultAboutFile,
		DefaultTagsFile,
		DefaultOutput,
		DefaultHighlightStyle,
		DefaultTOCMin,
		DefaultTOCMax,
	)
}
