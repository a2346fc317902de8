package export

import (
	"strings"
	"time"
)

const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// FileName derives the output file name for an export made at t: the UTC
// ISO-8601 timestamp with millisecond precision, colons replaced by dashes.
// Two exports within the same millisecond get the same name.
func FileName(t time.Time) string {
	ts := t.UTC().Format(isoMillis)
	return strings.ReplaceAll(ts, ":", "-") + ".json"
}
