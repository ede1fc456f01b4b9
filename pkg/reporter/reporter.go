// Package reporter writes the outcome of a build.
package reporter

import (
	"context"
	"fmt"

	"github.com/dcruzf/blog-data/pkg/builder"
	"github.com/dcruzf/blog-data/pkg/config"
)

// Reporter formats and writes build results.
type Reporter interface {
	// Report writes formatted output for the given result.
	Report(ctx context.Context, result *builder.Result) error
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = config.FormatText
	}

	switch format {
	case config.FormatJSON:
		return NewJSONReporter(opts), nil
	case config.FormatTable:
		return NewTableReporter(opts), nil
	case config.FormatText:
		return NewTextReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
