package collections

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// dateLayouts lists the front matter date spellings accepted by AsDate, most
// specific first. Values without a zone are read as UTC.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
	"2006-01",
	"2006",
	time.RFC1123Z,
	time.RFC1123,
	time.RFC850,
	time.ANSIC,
	"Mon Jan 2 2006",
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"2 January 2006",
	"2 Jan 2006",
	"January 2006",
	"Jan 2006",
}

// ParseDate parses a date the way front matter authors write them.
func ParseDate(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if ts, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", value)
}

// coerceDate converts a front matter value into a time. Numbers are read as
// milliseconds since the Unix epoch.
func coerceDate(value any) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		if v.IsZero() {
			return time.Time{}, &coercionError{code: CodeInvalidDate, message: "invalid date"}
		}
		return v, nil
	case *time.Time:
		if v == nil {
			return time.Time{}, typeError("date", nil)
		}
		return coerceDate(*v)
	case string:
		ts, err := ParseDate(v)
		if err != nil {
			return time.Time{}, &coercionError{code: CodeInvalidDate, message: "invalid date: " + err.Error()}
		}
		return ts, nil
	case int:
		return time.UnixMilli(int64(v)).UTC(), nil
	case int64:
		return time.UnixMilli(v).UTC(), nil
	case uint64:
		if v > math.MaxInt64 {
			return time.Time{}, &coercionError{code: CodeInvalidDate, message: "invalid date: out of range"}
		}
		return time.UnixMilli(int64(v)).UTC(), nil
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return time.Time{}, &coercionError{code: CodeInvalidDate, message: "invalid date"}
		}
		return time.UnixMilli(int64(v)).UTC(), nil
	default:
		return time.Time{}, typeError("date", value)
	}
}
