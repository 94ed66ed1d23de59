package roster

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/student-roster/internal/storage"
)

// ErrNotFound is storage.ErrNotFound re-exported so callers of the roster
// do not need to import the storage package to test for it.
var ErrNotFound = storage.ErrNotFound

// ValidationError reports mandatory fields that are blank or out of
// range. It is returned before any record is built or stored.
type ValidationError struct {
	Fields validator.ValidationErrors
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, fe := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag()))
	}
	return "invalid student: " + strings.Join(parts, ", ")
}

func (e *ValidationError) Unwrap() error { return e.Fields }

// IsValidation reports whether err is (or wraps) a *ValidationError.
func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
