package docmap

import "time"

// DateLayout is the canonical blog post date format.
const DateLayout = "2006-01-02"

// TimestampToDateString normalizes a stored date value to YYYY-MM-DD.
// Native timestamps, exported timestamp objects and numeric Unix seconds are
// converted in UTC. Strings ParseDate understands are reformatted; any other
// string is returned unchanged. A missing value yields today's date.
func TimestampToDateString(v interface{}) string {
	return toDateString(v, time.Now)
}

func toDateString(v interface{}, now func() time.Time) string {
	switch t := v.(type) {
	case nil:
		return now().UTC().Format(DateLayout)
	case time.Time:
		if t.IsZero() {
			return now().UTC().Format(DateLayout)
		}
		return t.UTC().Format(DateLayout)
	case *time.Time:
		if t == nil {
			return now().UTC().Format(DateLayout)
		}
		return toDateString(*t, now)
	case string:
		if t == "" {
			return now().UTC().Format(DateLayout)
		}
		if parsed, ok := ParseDate(t); ok {
			return parsed.UTC().Format(DateLayout)
		}
		return t
	case map[string]interface{}:
		if ts, ok := exportedTimestamp(t); ok {
			return ts.UTC().Format(DateLayout)
		}
	}
	if secs, ok := number(v); ok {
		return time.Unix(int64(secs), 0).UTC().Format(DateLayout)
	}
	return now().UTC().Format(DateLayout)
}

// exportedTimestamp reads the {seconds, nanoseconds} object produced when a
// Firestore timestamp is serialized to JSON (admin SDK exports use the
// underscored names).
func exportedTimestamp(m map[string]interface{}) (time.Time, bool) {
	secs, ok := number(m["seconds"])
	if !ok {
		if secs, ok = number(m["_seconds"]); !ok {
			return time.Time{}, false
		}
	}
	nanos, ok := number(m["nanoseconds"])
	if !ok {
		nanos, _ = number(m["_nanoseconds"])
	}
	return time.Unix(int64(secs), int64(nanos)), true
}

func number(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	}
	return 0, false
}

// ParseDate parses the date strings found on blog posts. It returns false for
// values that cannot be ordered.
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range []string{DateLayout, time.RFC3339Nano, "2006-01-02 15:04:05", "January 2, 2006", "Jan 2, 2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
