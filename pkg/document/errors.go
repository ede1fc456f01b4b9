package document

import (
	"errors"
	"fmt"
)

// ErrDuplicateID is matched by DuplicateIDError.
var ErrDuplicateID = errors.New("duplicate id")

// DuplicateIDError reports two sources that derive the same id.
type DuplicateIDError struct {
	ID     string
	First  string
	Second string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate id %q: %s and %s", e.ID, e.First, e.Second)
}

// Is matches ErrDuplicateID.
func (e *DuplicateIDError) Is(target error) bool {
	return target == ErrDuplicateID
}
