package collections

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownCollection = errors.New("collections: unknown collection")
	ErrSchemaViolation   = errors.New("collections: document does not satisfy schema")
	ErrNotValidated      = errors.New("collections: record was not produced by the named schema")
)

// Issue codes reported on SchemaError.
const (
	CodeRequired    = "required"
	CodeInvalidType = "invalid_type"
	CodeInvalidDate = "invalid_date"
)

// Issue describes one missing or mismatched field.
type Issue struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	if i.Message == "" {
		return i.Field
	}
	return fmt.Sprintf("%s: %s", i.Field, i.Message)
}

// SchemaError enumerates every field of a document that failed validation.
type SchemaError struct {
	Collection string
	Path       string
	Issues     []Issue
}

func (e *SchemaError) Error() string {
	var b strings.Builder
	b.WriteString(e.Collection)
	if e.Path != "" {
		b.WriteString(" ")
		b.WriteString(e.Path)
	}
	b.WriteString(": ")
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		parts[i] = issue.String()
	}
	b.WriteString(strings.Join(parts, "; "))
	return b.String()
}

func (e *SchemaError) Unwrap() error {
	return ErrSchemaViolation
}

// Fields returns the names of the failing fields in report order.
func (e *SchemaError) Fields() []string {
	out := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		out[i] = issue.Field
	}
	return out
}

// WithPath returns a copy of the error annotated with the document path.
func (e *SchemaError) WithPath(path string) *SchemaError {
	clone := *e
	clone.Path = path
	clone.Issues = append([]Issue(nil), e.Issues...)
	return &clone
}

// AsSchemaError extracts a *SchemaError from err.
func AsSchemaError(err error) (*SchemaError, bool) {
	var schemaErr *SchemaError
	if errors.As(err, &schemaErr) && schemaErr != nil {
		return schemaErr, true
	}
	return nil, false
}

// coercionError carries the issue code a coercer wants reported.
type coercionError struct {
	code    string
	message string
}

func (e *coercionError) Error() string { return e.message }

func typeError(want string, got any) error {
	return &coercionError{
		code:    CodeInvalidType,
		message: fmt.Sprintf("expected %s, received %s", want, describe(got)),
	}
}

func describe(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return "number"
	case []any:
		return "array"
	case map[string]any, map[any]any:
		return "object"
	default:
		return fmt.Sprintf("%T", value)
	}
}
