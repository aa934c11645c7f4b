// Package timeutil normalizes the timestamp shapes that arrive from stored
// documents and API payloads into time.Time values.
package timeutil

import (
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
)

var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Normalize converts v into a time.Time. Accepted shapes:
//   - time.Time
//   - map with "seconds" or "_seconds" (plus optional "nanoseconds")
//   - ISO-8601 string
//   - epoch milliseconds as a number
//
// Unparsable input logs a warning and substitutes the current time; it
// never fails.
func Normalize(v interface{}) time.Time {
	if t, ok := normalize(v); ok {
		return t
	}
	log.Warn().Interface("value", v).Msg("unparsable timestamp, substituting current time")
	return time.Now().UTC()
}

func normalize(v interface{}) (time.Time, bool) {
	switch x := v.(type) {
	case time.Time:
		return x, true
	case *time.Time:
		if x != nil {
			return *x, true
		}
	case string:
		return parseString(x)
	case map[string]interface{}:
		secs, ok := numberField(x, "seconds")
		if !ok {
			secs, ok = numberField(x, "_seconds")
		}
		if !ok {
			return time.Time{}, false
		}
		nanos, _ := numberField(x, "nanoseconds")
		return time.Unix(int64(secs), int64(nanos)).UTC(), true
	case float64:
		return time.UnixMilli(int64(x)).UTC(), true
	case int64:
		return time.UnixMilli(x).UTC(), true
	case int:
		return time.UnixMilli(int64(x)).UTC(), true
	case json.Number:
		if ms, err := x.Int64(); err == nil {
			return time.UnixMilli(ms).UTC(), true
		}
	}
	return time.Time{}, false
}

func parseString(s string) (time.Time, bool) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func numberField(m map[string]interface{}, key string) (float64, bool) {
	raw, ok := m[key]
	if !ok {
		return 0, false
	}
	switch n := raw.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case json.Number:
		if f, err := n.Float64(); err == nil {
			return f, true
		}
	}
	return 0, false
}
