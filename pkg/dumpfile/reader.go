package dumpfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"time"
)

// Reader decodes records from a dump file one line at a time.
type Reader struct {
	sc   *bufio.Scanner
	loc  *time.Location
	line int
	rec  Record
	err  error
}

// NewReader returns a Reader over r. Timestamps are interpreted in loc;
// nil means time.Local.
func NewReader(r io.Reader, loc *time.Location) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	return &Reader{sc: sc, loc: loc}
}

// Next advances to the next record. It returns false at the end of input
// or on the first error, which Err then reports. Blank lines are skipped.
func (r *Reader) Next() bool {
	if r.err != nil {
		return false
	}
	for r.sc.Scan() {
		r.line++
		text := r.sc.Text()
		if text == "" {
			continue
		}
		rec, err := ParseLine(text, r.loc)
		if err != nil {
			r.err = fmt.Errorf("line %d: %w", r.line, err)
			return false
		}
		r.rec = rec
		return true
	}
	r.err = r.sc.Err()
	return false
}

// Record returns the record read by the last successful Next.
func (r *Reader) Record() Record { return r.rec }

// Err returns the first error encountered, if any.
func (r *Reader) Err() error { return r.err }

// ReadAll decodes every record of r.
func ReadAll(r io.Reader, loc *time.Location) ([]Record, error) {
	var records []Record
	rd := NewReader(r, loc)
	for rd.Next() {
		records = append(records, rd.Record())
	}
	return records, rd.Err()
}

// ReadFile decodes every record of the file at path.
func ReadFile(path string, loc *time.Location) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dump file %s: %w", path, err)
	}
	defer f.Close()
	return ReadAll(f, loc)
}

// Total is the accumulated value of one metric over a set of records.
type Total struct {
	Name    string  `json:"name" yaml:"name"`
	Sum     float64 `json:"sum" yaml:"sum"`
	Samples int     `json:"samples" yaml:"samples"`
	Last    float64 `json:"last" yaml:"last"`
}

// Summary describes a set of records.
type Summary struct {
	Records int       `json:"records" yaml:"records"`
	First   time.Time `json:"first" yaml:"first"`
	Last    time.Time `json:"last" yaml:"last"`
	Totals  []Total   `json:"totals" yaml:"totals"`
}

// Totals sums every metric over records. Since each line holds the change
// since the previous one, the sum is the total over the covered period.
// Totals are sorted by name.
func Totals(records []Record) Summary {
	sum := Summary{Records: len(records)}
	if len(records) == 0 {
		return sum
	}
	sum.First = records[0].Time
	sum.Last = records[len(records)-1].Time

	byName := make(map[string]*Total)
	for _, rec := range records {
		for _, s := range rec.Samples {
			t, ok := byName[s.Name]
			if !ok {
				t = &Total{Name: s.Name}
				byName[s.Name] = t
			}
			t.Sum += s.Value
			t.Samples++
			t.Last = s.Value
		}
	}

	sum.Totals = make([]Total, 0, len(byName))
	for _, t := range byName {
		sum.Totals = append(sum.Totals, *t)
	}
	sort.Slice(sum.Totals, func(i, j int) bool { return sum.Totals[i].Name < sum.Totals[j].Name })
	return sum
}
