package cli

import (
	"errors"
	"io/fs"

	"github.com/dcruzf/blog-data/internal/configloader"
	"github.com/dcruzf/blog-data/pkg/article"
	"github.com/dcruzf/blog-data/pkg/catalog"
	"github.com/dcruzf/blog-data/pkg/datefmt"
	"github.com/dcruzf/blog-data/pkg/document"
	"github.com/dcruzf/blog-data/pkg/frontmatter"
	"github.com/dcruzf/blog-data/pkg/fsutil"
	"github.com/dcruzf/blog-data/pkg/history"
	"github.com/dcruzf/blog-data/pkg/render"
)

// Exit codes for blog-data, following sysexits.h where one fits.
const (
	// ExitSuccess indicates the document was built.
	ExitSuccess = 0

	// ExitFailure covers everything without a more specific code.
	ExitFailure = 1

	// ExitDataError indicates an input file has invalid content.
	ExitDataError = 65

	// ExitNoInput indicates an input file or directory does not exist.
	ExitNoInput = 66

	// ExitIOError indicates a file could not be read or written.
	ExitIOError = 74

	// ExitConfigError indicates invalid configuration.
	ExitConfigError = 78
)

// ExitError carries the process exit code for a failed command.
// The error has already been reported when it reaches main.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

var dataErrors = []error{
	article.ErrMissingField,
	article.ErrDateFormat,
	article.ErrInvalid,
	frontmatter.ErrMalformed,
	catalog.ErrMalformedCatalog,
	catalog.ErrInvalidTag,
	document.ErrDuplicateID,
	document.ErrSchema,
	document.ErrMissingAbout,
	document.ErrAboutDated,
	document.ErrDuplicateTag,
	document.ErrDuplicateYear,
	history.ErrInvalid,
	render.ErrRender,
}

// ExitCode maps err to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case errors.Is(err, configloader.ErrInvalidConfig),
		errors.Is(err, datefmt.ErrLocaleUnavailable),
		errors.Is(err, datefmt.ErrInvalidFormat):
		return ExitConfigError
	case errors.Is(err, fsutil.ErrNotFound):
		return ExitNoInput
	}

	for _, target := range dataErrors {
		if errors.Is(err, target) {
			return ExitDataError
		}
	}

	var pathErr *fs.PathError
	switch {
	case errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory),
		errors.Is(err, fsutil.ErrNotDirectory),
		errors.As(err, &pathErr):
		return ExitIOError
	}

	return ExitFailure
}
