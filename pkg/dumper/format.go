package dumper

import (
	"bytes"
	"sort"
	"time"

	"github.com/yndnr/metricsdump/pkg/metrics"
)

// TimestampLayout is the time.Format layout of the leading line field.
const TimestampLayout = "2006-01-02 15:04:05.000"

// entry is one metric read for the current line.
type entry struct {
	name    string
	reading metrics.Reading
}

// readSorted reads every metric of snapshot in ascending name order.
func readSorted(snapshot map[string]metrics.Metric) []entry {
	names := make([]string, 0, len(snapshot))
	for name, m := range snapshot {
		if m.Valid() {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	entries := make([]entry, len(names))
	for i, name := range names {
		entries[i] = entry{name: name, reading: snapshot[name].Read()}
	}
	return entries
}

// appendLine renders one complete, newline-terminated dump line.
func appendLine(buf *bytes.Buffer, ts time.Time, entries []entry) {
	buf.WriteString(ts.Format(TimestampLayout))
	for _, e := range entries {
		buf.WriteByte(' ')
		buf.WriteString(e.reading.FormatPair(e.name))
	}
	buf.WriteByte('\n')
}
