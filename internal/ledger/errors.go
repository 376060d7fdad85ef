package ledger

import (
	"errors"
	"fmt"
)

var (
	// ErrMissing marks a required field that is absent or null.
	ErrMissing = errors.New("missing")
	// ErrNotObject marks a field that must be a JSON object but is not.
	ErrNotObject = errors.New("not an object")
	// ErrNotArray marks a field that must be a JSON array but is not.
	ErrNotArray = errors.New("not an array")
)

// FieldError locates a shape problem inside a ledger record.
// Path uses dotted field names with [i] for list positions,
// e.g. "meta.AffectedNodes[2].DeletedNode.FinalFields.Owner".
type FieldError struct {
	Path string
	Err  error
}

func (e *FieldError) Error() string {
	if e.Path == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

func missing(path string) error {
	return &FieldError{Path: path, Err: ErrMissing}
}
