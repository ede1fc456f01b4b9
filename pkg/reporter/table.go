package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/dcruzf/blog-data/internal/ui/pretty"
	"github.com/dcruzf/blog-data/pkg/builder"
)

// TableReporter lists every article in a table, followed by the summary.
type TableReporter struct {
	opts      Options
	styles    *pretty.Styles
	formatter *pretty.TableFormatter
	bw        *bufio.Writer
}

// NewTableReporter creates a new table reporter.
func NewTableReporter(opts Options) *TableReporter {
	styles := pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer))

	width := opts.TermWidth
	if width <= 0 {
		width = pretty.TerminalWidth(opts.Writer)
	}

	return &TableReporter{
		opts:      opts,
		styles:    styles,
		formatter: pretty.NewTableFormatter(styles, width),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TableReporter) Report(_ context.Context, result *builder.Result) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return nil
	}

	if result.Data != nil {
		if _, err := r.bw.WriteString(r.formatter.FormatTable(result.Data.Articles)); err != nil {
			return fmt.Errorf("write table: %w", err)
		}
	}

	var summary string
	if r.opts.ShowSummary {
		summary = r.styles.FormatSummary(result)
	} else {
		summary = r.styles.FormatSummaryOneLine(result.Stats, result.Output)
	}

	if _, err := r.bw.WriteString(summary); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}
