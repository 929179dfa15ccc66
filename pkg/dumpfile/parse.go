package dumpfile

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimestampLayout matches the leading field of every dump line.
const TimestampLayout = "2006-01-02 15:04:05.000"

var (
	// ErrSyntax is wrapped by every parse failure.
	ErrSyntax = errors.New("dumpfile: syntax error")
)

// Sample is one `"name" value` pair.
type Sample struct {
	Name string
	// Raw is the value exactly as written.
	Raw string
	// Value is Raw parsed as a float64.
	Value float64
}

// Integer reports whether the value was written as an unsigned integer,
// the way counters are.
func (s Sample) Integer() bool {
	_, err := strconv.ParseUint(s.Raw, 10, 64)
	return err == nil
}

// Record is one decoded dump line.
type Record struct {
	Time    time.Time
	Samples []Sample
}

// Lookup returns the sample named name.
func (r Record) Lookup(name string) (Sample, bool) {
	for _, s := range r.Samples {
		if s.Name == name {
			return s, true
		}
	}
	return Sample{}, false
}

// ParseLine decodes line, interpreting the timestamp in loc. A nil loc
// means time.Local.
func ParseLine(line string, loc *time.Location) (Record, error) {
	if loc == nil {
		loc = time.Local
	}
	line = strings.TrimRight(line, "\r\n")

	if len(line) < len(TimestampLayout) {
		return Record{}, fmt.Errorf("%w: line too short for timestamp", ErrSyntax)
	}
	ts, err := time.ParseInLocation(TimestampLayout, line[:len(TimestampLayout)], loc)
	if err != nil {
		return Record{}, fmt.Errorf("%w: timestamp: %v", ErrSyntax, err)
	}

	rec := Record{Time: ts}
	rest := line[len(TimestampLayout):]
	for rest != "" {
		var s Sample
		s, rest, err = parseSample(rest)
		if err != nil {
			return Record{}, err
		}
		rec.Samples = append(rec.Samples, s)
	}
	return rec, nil
}

// parseSample consumes ` "name" value` from the front of s.
func parseSample(s string) (Sample, string, error) {
	if !strings.HasPrefix(s, ` "`) {
		return Sample{}, "", fmt.Errorf("%w: expected ` \"` before name at %q", ErrSyntax, s)
	}
	s = s[2:]

	end := strings.IndexByte(s, '"')
	if end < 0 {
		return Sample{}, "", fmt.Errorf("%w: unterminated name", ErrSyntax)
	}
	name := s[:end]
	s = s[end+1:]

	if !strings.HasPrefix(s, " ") {
		return Sample{}, "", fmt.Errorf("%w: missing value for %q", ErrSyntax, name)
	}
	s = s[1:]

	raw := s
	rest := ""
	if i := strings.IndexByte(s, ' '); i >= 0 {
		raw, rest = s[:i], s[i:]
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return Sample{}, "", fmt.Errorf("%w: value of %q: %v", ErrSyntax, name, err)
	}
	return Sample{Name: name, Raw: raw, Value: v}, rest, nil
}
