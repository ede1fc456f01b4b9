package catalog

import (
	"errors"
	"fmt"
)

// ErrMalformedCatalog is matched by MalformedCatalogError.
var ErrMalformedCatalog = errors.New("malformed tag catalog")

// MalformedCatalogError reports a catalog entry that cannot become a Tag.
// Index is -1 when the problem is the document as a whole.
type MalformedCatalogError struct {
	Index  int
	Entry  string
	Reason string
}

func (e *MalformedCatalogError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("malformed tag catalog: %s", e.Reason)
	}
	return fmt.Sprintf("malformed tag catalog entry %d %s: %s", e.Index, e.Entry, e.Reason)
}

// Is matches ErrMalformedCatalog.
func (e *MalformedCatalogError) Is(target error) bool {
	return target == ErrMalformedCatalog
}
