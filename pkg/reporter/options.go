package reporter

import (
	"io"
	"os"

	"github.com/dcruzf/blog-data/pkg/config"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// Format specifies the output format.
	Format config.OutputFormat

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// ShowSummary prints a multi-line summary block instead of one line.
	ShowSummary bool

	// Compact uses minified JSON.
	Compact bool

	// TermWidth bounds table output. Zero means detect from Writer.
	TermWidth int
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer: os.Stdout,
		Format: config.FormatText,
		Color:  "auto",
	}
}
