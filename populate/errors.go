package populate

import (
	"errors"
	"fmt"
)

var (
	// ErrPathNotFound is returned when a population path segment does not
	// resolve against the schema
	ErrPathNotFound = errors.New("population path not found")

	// ErrUnsupportedDepth is returned when an array field appears below the
	// first level of a population path
	ErrUnsupportedDepth = errors.New("population of deep array fields is not supported")
)

// PathError reports a population path that cannot be compiled. Kind is one
// of ErrPathNotFound or ErrUnsupportedDepth; errors.Is matches both Kind and
// the optional underlying Err.
type PathError struct {
	Kind    error
	Path    string // the full dotted path
	Segment string // the segment that failed
	Model   string // the model the segment was resolved against
	Err     error
}

func (e *PathError) Error() string {
	switch {
	case errors.Is(e.Kind, ErrUnsupportedDepth):
		return fmt.Sprintf("deep array at path %q: %v", e.Path, e.Kind)
	case e.Err != nil:
		return fmt.Sprintf("invalid population path %q: field %q on model %s: %v", e.Path, e.Segment, e.Model, e.Err)
	case e.Model != "":
		return fmt.Sprintf("invalid population path %q: field %q not found on model %s", e.Path, e.Segment, e.Model)
	default:
		return fmt.Sprintf("invalid population path %q: field %q not found", e.Path, e.Segment)
	}
}

func (e *PathError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
