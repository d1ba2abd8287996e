package tree

import "errors"

var (
	// ErrNotADirectory is returned when a path segment that must be descended
	// into names an existing non-directory element
	ErrNotADirectory = errors.New("not a directory")

	// ErrNotFound is returned by lookups for paths with no element
	ErrNotFound = errors.New("no such element")
)

// PathError records the operation and path that failed
type PathError struct {
	Op   string
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *PathError) Unwrap() error {
	return e.Err
}
