package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/dcruzf/blog-data/internal/ui/pretty"
	"github.com/dcruzf/blog-data/pkg/builder"
)

// TextReporter prints a styled summary line or block.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *builder.Result) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return nil
	}

	var out string
	if r.opts.ShowSummary {
		out = r.styles.FormatSummary(result)
	} else {
		out = r.styles.FormatSummaryOneLine(result.Stats, result.Output)
	}

	if _, err := r.bw.WriteString(out); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}
