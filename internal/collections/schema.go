package collections

import (
	"errors"
	"maps"
	"time"
)

// Schema is an ordered set of field declarations for one collection.
type Schema struct {
	Name   string
	Fields []Field
}

// Record is a validated document with every declared field coerced. Only
// Schema.Validate produces non-empty records.
type Record struct {
	collection string
	values     map[string]any
}

// Validate applies every field of the schema to doc and reports all failures
// together. Keys the schema does not declare are ignored. On failure the
// returned record is empty.
func (s Schema) Validate(doc map[string]any) (Record, error) {
	values := make(map[string]any, len(s.Fields))
	var issues []Issue

	for _, field := range s.Fields {
		raw, present := doc[field.Name]
		if !present || raw == nil {
			if field.Required {
				issues = append(issues, Issue{Field: field.Name, Code: CodeRequired, Message: "Required"})
				continue
			}
			if field.Default != nil {
				values[field.Name] = field.Default
			}
			continue
		}

		coerced, err := field.Coerce.Coerce(raw)
		if err != nil {
			issues = append(issues, issueFor(field.Name, err))
			continue
		}
		values[field.Name] = coerced
	}

	if len(issues) > 0 {
		return Record{}, &SchemaError{Collection: s.Name, Issues: issues}
	}
	return Record{collection: s.Name, values: values}, nil
}

// Field returns the declaration named name.
func (s Schema) Field(name string) (Field, bool) {
	for _, field := range s.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

func issueFor(name string, err error) Issue {
	var coerceErr *coercionError
	if errors.As(err, &coerceErr) {
		return Issue{Field: name, Code: coerceErr.code, Message: coerceErr.message}
	}
	return Issue{Field: name, Code: CodeInvalidType, Message: err.Error()}
}

// Collection names the schema that produced the record.
func (r Record) Collection() string { return r.collection }

// IsZero reports whether the record was never validated.
func (r Record) IsZero() bool { return r.values == nil }

// Get returns the coerced value of a field.
func (r Record) Get(name string) (any, bool) {
	v, ok := r.values[name]
	return v, ok
}

// String returns a string field, or "" when absent.
func (r Record) String(name string) string {
	s, _ := r.values[name].(string)
	return s
}

// Bool returns a boolean field, or false when absent.
func (r Record) Bool(name string) bool {
	b, _ := r.values[name].(bool)
	return b
}

// Time returns a date field, or the zero time when absent.
func (r Record) Time(name string) time.Time {
	ts, _ := r.values[name].(time.Time)
	return ts
}

// DateOrLabel returns a date-or-label field.
func (r Record) DateOrLabel(name string) DateOrLabel {
	v, _ := r.values[name].(DateOrLabel)
	return v
}

// Values returns a copy of the coerced fields.
func (r Record) Values() map[string]any {
	return maps.Clone(r.values)
}
