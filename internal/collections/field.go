package collections

import (
	"encoding/json"
	"errors"
	"time"
)

// Coercer converts a raw front matter value into its declared type and
// describes that type as a JSON Schema fragment.
type Coercer interface {
	Coerce(value any) (any, error)
	JSONSchema() map[string]any
}

// Field declares one schema member. Optional fields that are absent take
// Default, which may be nil.
type Field struct {
	Name     string
	Coerce   Coercer
	Required bool
	Default  any
}

// Required declares a mandatory field.
func Required(name string, coerce Coercer) Field {
	return Field{Name: name, Coerce: coerce, Required: true}
}

// Optional declares a field that may be omitted.
func Optional(name string, coerce Coercer, fallback any) Field {
	return Field{Name: name, Coerce: coerce, Default: fallback}
}

type stringCoercer struct{}

func (stringCoercer) Coerce(value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, typeError("string", value)
	}
	return s, nil
}

func (stringCoercer) JSONSchema() map[string]any {
	return map[string]any{"type": "string"}
}

type boolCoercer struct{}

func (boolCoercer) Coerce(value any) (any, error) {
	b, ok := value.(bool)
	if !ok {
		return nil, typeError("boolean", value)
	}
	return b, nil
}

func (boolCoercer) JSONSchema() map[string]any {
	return map[string]any{"type": "boolean"}
}

type dateCoercer struct{}

func (dateCoercer) Coerce(value any) (any, error) {
	return coerceDate(value)
}

func (dateCoercer) JSONSchema() map[string]any {
	return map[string]any{
		"type":        []any{"string", "integer"},
		"description": "date string such as 2006-01-02, or epoch milliseconds",
	}
}

type dateOrLabelCoercer struct{}

func (dateOrLabelCoercer) Coerce(value any) (any, error) {
	ts, err := coerceDate(value)
	if err == nil {
		return DateValue(ts), nil
	}
	if label, ok := value.(string); ok {
		return LabelValue(label), nil
	}
	return nil, typeError("date or string", value)
}

func (dateOrLabelCoercer) JSONSchema() map[string]any {
	return map[string]any{
		"type":        []any{"string", "integer"},
		"description": "date, or a label such as Present for ongoing periods",
	}
}

var (
	// AsString accepts strings only.
	AsString Coercer = stringCoercer{}
	// AsBool accepts booleans only.
	AsBool Coercer = boolCoercer{}
	// AsDate accepts times, date strings and epoch milliseconds.
	AsDate Coercer = dateCoercer{}
	// AsDateOrLabel yields a DateOrLabel: dates when the value parses as one,
	// otherwise the string kept verbatim.
	AsDateOrLabel Coercer = dateOrLabelCoercer{}
)

// Kind tags the case held by a DateOrLabel.
type Kind uint8

const (
	KindDate Kind = iota + 1
	KindLabel
)

func (k Kind) String() string {
	switch k {
	case KindDate:
		return "date"
	case KindLabel:
		return "label"
	default:
		return "unset"
	}
}

// DateOrLabel is either a date or a free-text label such as "Present".
type DateOrLabel struct {
	Kind  Kind
	Date  time.Time
	Label string
}

func DateValue(ts time.Time) DateOrLabel {
	return DateOrLabel{Kind: KindDate, Date: ts}
}

func LabelValue(label string) DateOrLabel {
	return DateOrLabel{Kind: KindLabel, Label: label}
}

// IsDate reports whether the value holds a date.
func (d DateOrLabel) IsDate() bool { return d.Kind == KindDate }

// IsOngoing reports whether the value is a label, i.e. the period has no
// end date yet.
func (d DateOrLabel) IsOngoing() bool { return d.Kind == KindLabel }

// Format renders dates with layout and labels verbatim.
func (d DateOrLabel) Format(layout string) string {
	switch d.Kind {
	case KindDate:
		return d.Date.Format(layout)
	case KindLabel:
		return d.Label
	default:
		return ""
	}
}

var ongoingSortKey = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)

// SortKey orders entries with ongoing periods ahead of any date.
func (d DateOrLabel) SortKey() time.Time {
	if d.Kind == KindLabel {
		return ongoingSortKey
	}
	return d.Date
}

func (d DateOrLabel) MarshalJSON() ([]byte, error) {
	switch d.Kind {
	case KindDate:
		return json.Marshal(d.Date.Format(time.RFC3339))
	case KindLabel:
		return json.Marshal(d.Label)
	default:
		return []byte("null"), nil
	}
}

func (d *DateOrLabel) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.New("collections: date or label must be a JSON string")
	}
	v, err := AsDateOrLabel.Coerce(raw)
	if err != nil {
		return err
	}
	*d = v.(DateOrLabel)
	return nil
}
