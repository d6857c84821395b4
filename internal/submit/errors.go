package submit

import (
	"errors"
	"fmt"
	"strings"
)

// Submission errors.
var (
	// ErrDuplicateProject is returned when the draft's repository URL is
	// already present in the directory.
	ErrDuplicateProject = errors.New("a project with this repository is already listed")
	// ErrNotAuthorized is returned when the acting user fails the
	// contributor or ownership gate.
	ErrNotAuthorized = errors.New("not authorized: you must be a contributor to the project's repository")
)

// ValidationError reports the required draft fields that are missing.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", "))
}
