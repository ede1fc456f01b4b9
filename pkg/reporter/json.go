package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/dcruzf/blog-data/pkg/builder"
)

// jsonVersion is the version of the report layout.
const jsonVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version     string        `json:"version"`
	Output      string        `json:"output"`
	BackupPath  string        `json:"backup,omitempty"`
	Catalog     string        `json:"catalog"`
	UnknownTags []string      `json:"unknownTags"`
	Articles    []JSONArticle `json:"articles"`
	Stats       builder.Stats `json:"stats"`
}

// JSONArticle identifies one article of the build.
type JSONArticle struct {
	ID     string   `json:"id"`
	Source string   `json:"source"`
	Date   *string  `json:"date"`
	Tags   []string `json:"tags"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *builder.Result) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	encoder := json.NewEncoder(r.bw)
	encoder.SetEscapeHTML(false)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(buildOutput(result)); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

func buildOutput(result *builder.Result) *JSONOutput {
	output := &JSONOutput{
		Version:     jsonVersion,
		UnknownTags: []string{},
		Articles:    []JSONArticle{},
	}
	if result == nil {
		return output
	}

	output.Output = result.Output
	output.BackupPath = result.BackupPath
	output.Catalog = string(result.Catalog)
	output.Stats = result.Stats
	if result.UnknownTags != nil {
		output.UnknownTags = result.UnknownTags
	}

	if result.Data == nil {
		return output
	}

	output.Articles = make([]JSONArticle, 0, len(result.Data.Articles))
	for _, a := range result.Data.Articles {
		entry := JSONArticle{
			ID:     a.ID,
			Source: a.Source,
			Tags:   a.Tags,
		}
		if a.Dated() {
			date := a.Date.String()
			entry.Date = &date
		}
		output.Articles = append(output.Articles, entry)
	}

	return output
}
