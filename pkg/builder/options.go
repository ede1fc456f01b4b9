// Package builder runs the build: it reads the article sources, the about
// page and the tag catalog, and writes the data document.
package builder

import "time"

// Options describes the inputs and output of one run.
type Options struct {
	// ArticlesDir holds the article sources.
	ArticlesDir string

	// AboutFile is the about page source.
	AboutFile string

	// TagsFile is the tag catalog. When it does not exist the catalog is
	// derived from the article tags.
	TagsFile string

	// Output is the path of the data document.
	Output string

	// Indent indents the JSON output. Empty means compact.
	Indent string

	// Extensions, Recursive and Exclude control article discovery.
	Extensions []string
	Recursive  bool
	Exclude    []string

	// DryRun builds and checks the document without writing it.
	DryRun bool

	// Jobs is the number of articles loaded concurrently. Zero or one
	// loads them sequentially.
	Jobs int

	// Backup copies the previous output next to it before overwriting.
	Backup bool
}

func (o Options) discoverOptions() DiscoverOptions {
	return DiscoverOptions{
		Dir:        o.ArticlesDir,
		Extensions: o.Extensions,
		Recursive:  o.Recursive,
		Exclude:    o.Exclude,
		Skip:       []string{o.AboutFile},
	}
}

// Stats summarizes a run.
type Stats struct {
	Articles    int           `json:"articles"`
	Dated       int           `json:"dated"`
	Undated     int           `json:"undated"`
	Tags        int           `json:"tags"`
	UnknownTags int           `json:"unknown_tags"`
	Years       int           `json:"years"`
	Bytes       int           `json:"bytes"`
	Written     bool          `json:"written"`
	Unchanged   bool          `json:"unchanged"`
	DryRun      bool          `json:"dry_run"`
	Duration    time.Duration `json:"duration_ns"`
}
