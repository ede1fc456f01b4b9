package logging

// Field names for structured log entries.
const (
	FieldError  = "error"
	FieldPath   = "path"
	FieldFiles  = "files"
	FieldOutput = "output"
	FieldBackup = "backup"

	// Build inputs.
	FieldArticlesDir = "articles_dir"
	FieldAboutFile   = "about_file"
	FieldTagsFile    = "tags_file"
	FieldConfig      = "config"
	FieldDryRun      = "dry_run"

	// Build results.
	FieldID       = "id"
	FieldTag      = "tag"
	FieldArticles = "articles"
	FieldTags     = "tags"
	FieldYears    = "years"
	FieldBytes    = "bytes"
	FieldWritten  = "written"
	FieldDuration = "duration"

	// Settings.
	FieldLocale     = "locale"
	FieldTimezone   = "timezone"
	FieldDateFormat = "date_format"

	// Version.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
