package listview

import (
	"strings"
	"time"
)

// InvalidDate is rendered for timestamps that cannot be parsed.
const InvalidDate = "Invalid Date"

// DateLayout is the display form, e.g. "Jan 12, 2023".
const DateLayout = "Jan 2, 2006"

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
}

// FormatDate renders an ISO-8601 timestamp as a short date. The API omits the
// UTC marker on creation times, so one is appended when missing and the date
// is rendered in UTC.
func FormatDate(ts string) string {
	if !strings.HasSuffix(ts, "Z") {
		ts += "Z"
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, ts); err == nil {
			return t.UTC().Format(DateLayout)
		}
	}
	return InvalidDate
}
