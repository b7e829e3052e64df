// Package builtin contains the reusable record transformers used by the
// pipeline: type coercion, identity filtering, and de-duplication.
package builtin

import (
	"strconv"
	"strings"
	"time"

	"salesetl/pkg/records"
)

// Coerce converts raw string cells into typed values per the Types map.
// A cell that cannot be converted becomes nil, the null marker; coercion
// never rejects a row or column outright, and malformed values surface only
// as nulls downstream.
type Coerce struct {
	// Types maps field name to one of: "int", "float", "date", "string".
	Types map[string]string

	// Layouts are the date layouts tried in order. When empty, DefaultLayouts
	// is used. Parsed dates are truncated to calendar-day granularity.
	Layouts []string
}

// DefaultLayouts covers the date shapes seen in the source exports.
var DefaultLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"02.01.2006",
	"01/02/2006",
}

func (c Coerce) Apply(in []records.Record) []records.Record {
	if len(c.Types) == 0 {
		return in
	}
	layouts := c.Layouts
	if len(layouts) == 0 {
		layouts = DefaultLayouts
	}
	for _, r := range in {
		for field, typ := range c.Types {
			v, ok := r[field]
			if !ok || v == nil {
				continue
			}
			s, isStr := v.(string)
			if !isStr {
				continue
			}
			s = strings.TrimSpace(s)
			switch typ {
			case "int":
				if i, err := strconv.Atoi(s); err == nil {
					r[field] = i
				} else {
					r[field] = nil
				}
			case "float":
				if f, err := strconv.ParseFloat(s, 64); err == nil {
					r[field] = f
				} else {
					r[field] = nil
				}
			case "date":
				if t, ok := parseDate(s, layouts); ok {
					r[field] = t
				} else {
					r[field] = nil
				}
			case "string":
				// already string
			}
		}
	}
	return in
}

// parseDate tries each layout in order and truncates the first match to
// midnight UTC, discarding any time-of-day component.
func parseDate(s string, layouts []string) (time.Time, bool) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}
