package nbheader

import (
	"errors"
	"fmt"

	"github.com/ukaji3/nbheader-go/pkg/nbheader/parser"
)

// ErrFileNotFound indicates the header, the notebook directory or a target does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates a document is not a valid notebook.
var ErrInvalidFormat = parser.ErrInvalidFormat

// ErrUnsupportedVersion indicates a notebook whose nbformat major version is not 4.
var ErrUnsupportedVersion = parser.ErrUnsupportedVersion

// ErrEmptyNotebook indicates a target notebook has no first cell to keep in place.
var ErrEmptyNotebook = errors.New("notebook has no cells")

// NotebookError represents an error while processing one notebook file.
type NotebookError struct {
	Path string
	Op   string // "read", "parse", "inject", "write"
	Err  error
}

func (e *NotebookError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *NotebookError) Unwrap() error {
	return e.Err
}

// NewNotebookError creates a new NotebookError.
func NewNotebookError(path, op string, err error) *NotebookError {
	return &NotebookError{
		Path: path,
		Op:   op,
		Err:  err,
	}
}
