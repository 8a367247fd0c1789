package model

import (
	"strings"
	"time"
)

// ExternalRecord is an immutable snapshot of one remote record. The engine
// never mutates a record; it issues create/update calls and receives a fresh
// snapshot back.
type ExternalRecord struct {
	ID         string
	URL        string
	Attributes map[string]any
}

// DateValue is the start/end pair of a date-valued attribute as the remote
// store reports it (ISO 8601 strings, end optional).
type DateValue struct {
	Start string
	End   string
}

// DateAttribute extracts the date value of the named attribute. The second
// return is false when the attribute is missing, not date-shaped, or has no
// start value.
func (r *ExternalRecord) DateAttribute(name string) (DateValue, bool) {
	raw, ok := r.Attributes[name]
	if !ok {
		return DateValue{}, false
	}
	attr, ok := raw.(map[string]any)
	if !ok {
		return DateValue{}, false
	}
	date, ok := attr["date"].(map[string]any)
	if !ok {
		return DateValue{}, false
	}
	start, _ := date["start"].(string)
	if start == "" {
		return DateValue{}, false
	}
	end, _ := date["end"].(string)
	return DateValue{Start: start, End: end}, true
}

// workspace timestamp layouts, longest first
var timestampLayouts = []string{
	"2006-01-02T15:04:05.000-07:00",
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseWorkspaceTime parses an ISO 8601 timestamp as the workspace API emits
// them: full date-times with or without zone offset, or bare dates. A trailing
// "Z" is accepted. The zone is stripped so that comparisons and arithmetic
// operate on the wall-clock value the store displays.
func ParseWorkspaceTime(value string) (time.Time, error) {
	v := strings.TrimSpace(value)
	if strings.HasSuffix(v, "Z") {
		v = strings.TrimSuffix(v, "Z") + "+00:00"
	}
	var lastErr error
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, v)
		if err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// FormatWorkspaceTime renders a timestamp the way the engine writes date
// attributes back: second precision, no zone suffix.
func FormatWorkspaceTime(t time.Time) string {
	return t.Format("2006-01-02T15:04:05")
}
