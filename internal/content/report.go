package content

import (
	"fmt"
	"strings"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-folio/internal/collections"
)

// CodeSchemaInvalid tags build errors caused by invalid front matter.
const CodeSchemaInvalid = "CONTENT_SCHEMA_INVALID"

// ValidationReport lists every document that failed its collection schema.
type ValidationReport struct {
	Failures []*collections.SchemaError
}

func (r *ValidationReport) Error() string {
	lines := make([]string, len(r.Failures))
	for i, failure := range r.Failures {
		lines[i] = failure.Error()
	}
	return fmt.Sprintf("%d invalid content document(s): %s", len(r.Failures), strings.Join(lines, " | "))
}

func (r *ValidationReport) Unwrap() error {
	return collections.ErrSchemaViolation
}

// Empty reports whether no failure was recorded.
func (r *ValidationReport) Empty() bool {
	return r == nil || len(r.Failures) == 0
}

// FieldErrors flattens the report into path#field entries.
func (r *ValidationReport) FieldErrors() goerrors.ValidationErrors {
	var out goerrors.ValidationErrors
	for _, failure := range r.Failures {
		for _, issue := range failure.Issues {
			out = append(out, goerrors.FieldError{
				Field:   failure.Path + "#" + issue.Field,
				Message: issue.Message,
			})
		}
	}
	return out
}

func (r *ValidationReport) add(err *collections.SchemaError) {
	r.Failures = append(r.Failures, err)
}

// asError categorises the report for command and CLI boundaries.
func (r *ValidationReport) asError() error {
	if r.Empty() {
		return nil
	}
	wrapped := goerrors.Wrap(r, goerrors.CategoryValidation, "content validation failed").
		WithTextCode(CodeSchemaInvalid)
	wrapped.ValidationErrors = r.FieldErrors()
	return wrapped
}
