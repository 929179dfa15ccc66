package dumpfile

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    []Sample
		wantErr bool
	}{
		{
			name: "timestamp only",
			line: "2024-03-09 14:05:07.042",
		},
		{
			name: "counter and gauge",
			line: `2024-03-09 14:05:07.042 "cpu" 0.97 "errors" 8`,
			want: []Sample{
				{Name: "cpu", Raw: "0.97", Value: 0.97},
				{Name: "errors", Raw: "8", Value: 8},
			},
		},
		{
			name: "name with spaces",
			line: `2024-03-09 14:05:07.042 "HTTP requests RPS" 62` + "\n",
			want: []Sample{{Name: "HTTP requests RPS", Raw: "62", Value: 62}},
		},
		{
			name: "negative and exponent",
			line: `2024-03-09 14:05:07.042 "a" -1.5 "b" 1e+21`,
			want: []Sample{
				{Name: "a", Raw: "-1.5", Value: -1.5},
				{Name: "b", Raw: "1e+21", Value: 1e21},
			},
		},
		{name: "empty", line: "", wantErr: true},
		{name: "bad timestamp", line: "2024-13-09 14:05:07.042", wantErr: true},
		{name: "unquoted name", line: `2024-03-09 14:05:07.042 cpu 1`, wantErr: true},
		{name: "unterminated name", line: `2024-03-09 14:05:07.042 "cpu 1`, wantErr: true},
		{name: "missing value", line: `2024-03-09 14:05:07.042 "cpu"`, wantErr: true},
		{name: "bad value", line: `2024-03-09 14:05:07.042 "cpu" high`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := ParseLine(tt.line, time.UTC)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseLine(%q) error = nil, want error", tt.line)
				}
				if !errors.Is(err, ErrSyntax) {
					t.Errorf("ParseLine() error = %v, want ErrSyntax", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLine() error = %v", err)
			}

			wantTime := time.Date(2024, 3, 9, 14, 5, 7, 42_000_000, time.UTC)
			if !rec.Time.Equal(wantTime) {
				t.Errorf("Time = %v, want %v", rec.Time, wantTime)
			}
			if len(rec.Samples) != len(tt.want) {
				t.Fatalf("Samples = %+v, want %+v", rec.Samples, tt.want)
			}
			for i, s := range rec.Samples {
				if s != tt.want[i] {
					t.Errorf("Samples[%d] = %+v, want %+v", i, s, tt.want[i])
				}
			}
		})
	}
}

func TestParseLine_SpecialFloats(t *testing.T) {
	rec, err := ParseLine(`2024-03-09 14:05:07.042 "a" +Inf "b" NaN`, time.UTC)
	if err != nil {
		t.Fatalf("ParseLine() error = %v", err)
	}
	if !math.IsInf(rec.Samples[0].Value, 1) {
		t.Errorf("a = %v, want +Inf", rec.Samples[0].Value)
	}
	if !math.IsNaN(rec.Samples[1].Value) {
		t.Errorf("b = %v, want NaN", rec.Samples[1].Value)
	}
}

func TestSample_Integer(t *testing.T) {
	tests := map[string]bool{
		"8":    true,
		"0":    true,
		"0.97": false,
		"-1":   false,
		"1e3":  false,
	}
	for raw, want := range tests {
		if got := (Sample{Raw: raw}).Integer(); got != want {
			t.Errorf("Sample{Raw: %q}.Integer() = %v, want %v", raw, got, want)
		}
	}
}

func TestRecord_Lookup(t *testing.T) {
	rec, err := ParseLine(`2024-03-09 14:05:07.042 "cpu" 0.5 "errors" 2`, nil)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Time.Location() != time.Local {
		t.Errorf("nil location should mean time.Local, got %v", rec.Time.Location())
	}

	s, ok := rec.Lookup("errors")
	if !ok || s.Value != 2 {
		t.Errorf("Lookup(errors) = %+v, %v", s, ok)
	}
	if _, ok := rec.Lookup("missing"); ok {
		t.Error("Lookup(missing) should fail")
	}
}

func TestReader(t *testing.T) {
	input := strings.Join([]string{
		`2024-03-09 14:05:07.000 "errors" 3 "cpu" 0.5`,
		``,
		`2024-03-09 14:05:08.000 "errors" 4 "cpu" 0.25`,
		`2024-03-09 14:05:09.000 "errors" 0`,
	}, "\n") + "\n"

	records, err := ReadAll(strings.NewReader(input), time.UTC)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("ReadAll() got %d records, want 3", len(records))
	}

	sum := Totals(records)
	if sum.Records != 3 {
		t.Errorf("Records = %d, want 3", sum.Records)
	}
	if got := sum.Last.Sub(sum.First); got != 2*time.Second {
		t.Errorf("span = %v, want 2s", got)
	}
	want := []Total{
		{Name: "cpu", Sum: 0.75, Samples: 2, Last: 0.25},
		{Name: "errors", Sum: 7, Samples: 3, Last: 0},
	}
	if len(sum.Totals) != len(want) {
		t.Fatalf("Totals = %+v, want %+v", sum.Totals, want)
	}
	for i := range want {
		if sum.Totals[i] != want[i] {
			t.Errorf("Totals[%d] = %+v, want %+v", i, sum.Totals[i], want[i])
		}
	}
}

func TestReader_ErrorHasLineNumber(t *testing.T) {
	input := "2024-03-09 14:05:07.000\n\ngarbage\n"

	rd := NewReader(strings.NewReader(input), time.UTC)
	if !rd.Next() {
		t.Fatalf("first Next() = false, err = %v", rd.Err())
	}
	if rd.Next() {
		t.Fatal("second Next() = true, want false")
	}
	err := rd.Err()
	if !errors.Is(err, ErrSyntax) {
		t.Fatalf("Err() = %v, want ErrSyntax", err)
	}
	if !strings.HasPrefix(err.Error(), "line 3:") {
		t.Errorf("Err() = %q, want line 3 prefix", err)
	}
	if rd.Next() {
		t.Error("Next() after error should stay false")
	}
}

func TestTotals_Empty(t *testing.T) {
	sum := Totals(nil)
	if sum.Records != 0 || len(sum.Totals) != 0 || !sum.First.IsZero() {
		t.Errorf("Totals(nil) = %+v", sum)
	}
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(t.TempDir()+"/missing.log", time.UTC)
	if err == nil {
		t.Fatal("ReadFile() error = nil, want error")
	}
}
