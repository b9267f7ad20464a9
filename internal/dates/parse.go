// Package dates converts loosely typed date values coming from the notes
// backend into time.Time.
package dates

import (
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Parse converts v into a point in time.
//
// Supported inputs:
//   - time.Time and *time.Time (returned as is when non-zero)
//   - strings in RFC 3339 / ISO-8601 form, or any layout dateparse
//     understands (interpreted in the local zone when no offset is given)
//   - numeric epochs in milliseconds (integer kinds, float64, json.Number)
//
// The second result is false for nil, empty or zero values, unparseable
// strings, NaN/Inf numbers and unsupported types. Parse never panics.
func Parse(v any) (time.Time, bool) {
	switch x := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		return checked(x)
	case *time.Time:
		if x == nil {
			return time.Time{}, false
		}
		return checked(*x)
	case string:
		return parseString(x)
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return fromMillis(float64(i))
		}
		f, err := x.Float64()
		if err != nil {
			return time.Time{}, false
		}
		return fromMillis(f)
	case float64:
		return fromMillis(x)
	case float32:
		return fromMillis(float64(x))
	case int:
		return fromMillis(float64(x))
	case int32:
		return fromMillis(float64(x))
	case int64:
		return fromMillis(float64(x))
	case uint:
		return fromMillis(float64(x))
	case uint32:
		return fromMillis(float64(x))
	case uint64:
		return fromMillis(float64(x))
	default:
		return time.Time{}, false
	}
}

// Format returns t formatted as RFC 3339 with nanoseconds, the form used
// for timestamps synthesized on the client.
func Format(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

func checked(t time.Time) (time.Time, bool) {
	if t.IsZero() {
		return time.Time{}, false
	}
	return t, true
}

var isoLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
}

func parseString(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	t, err := dateparse.ParseLocal(s)
	if err != nil {
		return time.Time{}, false
	}
	return checked(t)
}

// fromMillis treats n as milliseconds since the Unix epoch. Zero is rejected
// along with NaN and infinities.
func fromMillis(n float64) (time.Time, bool) {
	if n == 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return time.Time{}, false
	}
	// Outside of ±8.64e15 ms a date cannot be represented.
	if math.Abs(n) > 8.64e15 {
		return time.Time{}, false
	}
	ms := int64(n)
	return time.UnixMilli(ms), true
}
