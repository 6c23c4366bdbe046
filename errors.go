package docmodel

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every error returned by navigation or a typed accessor wraps
// exactly one of the first three; match them with errors.Is.
var (
	// ErrNonExistingField reports a missing key or element on read.
	ErrNonExistingField = errors.New("docmodel: non-existing field")
	// ErrInvalidField reports a path that cannot be walked: a non-document
	// where descent is required, an index on a non-collection, or an append
	// marker in a read path.
	ErrInvalidField = errors.New("docmodel: invalid field")
	// ErrInvalidFieldType reports a typed access to a value that has no
	// defined conversion to the requested type.
	ErrInvalidFieldType = errors.New("docmodel: invalid field type")

	// ErrIndexOutOfRange is attached as the cause of index failures.
	ErrIndexOutOfRange = errors.New("docmodel: index out of range")
	// ErrDuplicateKey is returned when decoded input repeats an object key.
	ErrDuplicateKey = errors.New("docmodel: duplicate key")
)

// FieldError describes a failed path operation.
type FieldError struct {
	Path   string // full field path as given by the caller
	Field  string // segment at which the operation failed
	Kind   error  // one of ErrNonExistingField, ErrInvalidField, ErrInvalidFieldType
	Cause  error  // optional
	Detail string
}

func (e *FieldError) Error() string {
	b := &strings.Builder{}
	b.WriteString(e.Kind.Error())
	fmt.Fprintf(b, ": path %q", e.Path)
	if e.Field != "" && e.Field != e.Path {
		fmt.Fprintf(b, " at %q", e.Field)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	return b.String()
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *FieldError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

func nonExisting(path, field, detail string) error {
	return &FieldError{Path: path, Field: field, Kind: ErrNonExistingField, Detail: detail}
}

func invalidField(path, field, detail string) error {
	return &FieldError{Path: path, Field: field, Kind: ErrInvalidField, Detail: detail}
}

func outOfRange(kind error, path, field string, idx, n int) error {
	return &FieldError{
		Path:   path,
		Field:  field,
		Kind:   kind,
		Cause:  ErrIndexOutOfRange,
		Detail: fmt.Sprintf("index %d outside [0,%d)", idx, n),
	}
}

func invalidType(path string, want string, got Kind) error {
	return &FieldError{
		Path:   path,
		Field:  path,
		Kind:   ErrInvalidFieldType,
		Detail: fmt.Sprintf("%s value does not convert to %s", got, want),
	}
}

// AsFieldError extracts a *FieldError from err.
func AsFieldError(err error) (*FieldError, bool) {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
