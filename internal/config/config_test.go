package config

import (
	"errors"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Dump.Path != DefaultDumpPath {
		t.Errorf("Dump.Path = %q, want %q", cfg.Dump.Path, DefaultDumpPath)
	}
	if cfg.Dump.Interval != DefaultDumpInterval {
		t.Errorf("Dump.Interval = %v, want %v", cfg.Dump.Interval, DefaultDumpInterval)
	}
	if cfg.Log.Level != DefaultLogLevel {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, DefaultLogLevel)
	}
	if cfg.Log.Format != DefaultLogFormat {
		t.Errorf("Log.Format = %q, want %q", cfg.Log.Format, DefaultLogFormat)
	}
	if !cfg.Workload.Enabled || cfg.Workload.Workers != DefaultWorkers {
		t.Errorf("Workload = %+v", cfg.Workload)
	}

	if err := Verify(cfg); err != nil {
		t.Errorf("Verify(Default()) = %v", err)
	}
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{name: "default", modify: func(*Config) {}},
		{name: "empty path", modify: func(c *Config) { c.Dump.Path = "" }, wantErr: true},
		{name: "zero interval", modify: func(c *Config) { c.Dump.Interval = 0 }, wantErr: true},
		{name: "negative interval", modify: func(c *Config) { c.Dump.Interval = -time.Second }, wantErr: true},
		{name: "utc location", modify: func(c *Config) { c.Dump.Location = "UTC" }},
		{name: "empty location", modify: func(c *Config) { c.Dump.Location = "" }},
		{name: "bad location", modify: func(c *Config) { c.Dump.Location = "Mars/Olympus" }, wantErr: true},
		{name: "bad level", modify: func(c *Config) { c.Log.Level = "verbose" }, wantErr: true},
		{name: "json format", modify: func(c *Config) { c.Log.Format = "json" }},
		{name: "bad format", modify: func(c *Config) { c.Log.Format = "xml" }, wantErr: true},
		{name: "negative workers", modify: func(c *Config) { c.Workload.Workers = -1 }, wantErr: true},
		{name: "zero tick", modify: func(c *Config) { c.Workload.Tick = 0 }, wantErr: true},
		{
			name: "zero tick disabled",
			modify: func(c *Config) {
				c.Workload.Enabled = false
				c.Workload.Tick = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := Verify(cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Verify() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalid) {
				t.Errorf("Verify() error = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestDumpSection_TimeLocation(t *testing.T) {
	for _, name := range []string{"", "local", "Local"} {
		loc, err := (&DumpSection{Location: name}).TimeLocation()
		if err != nil || loc != time.Local {
			t.Errorf("TimeLocation(%q) = %v, %v; want Local", name, loc, err)
		}
	}

	loc, err := (&DumpSection{Location: "UTC"}).TimeLocation()
	if err != nil || loc != time.UTC {
		t.Errorf("TimeLocation(UTC) = %v, %v", loc, err)
	}
}

func TestNormalize(t *testing.T) {
	cfg := Default()
	cfg.Dump.Path = "  ./out//metrics.log "
	cfg.Log.Level = " DEBUG"
	cfg.Log.Format = "JSON"

	n := Normalize(cfg)

	if n.Dump.Path != "out/metrics.log" {
		t.Errorf("Dump.Path = %q", n.Dump.Path)
	}
	if n.Log.Level != "debug" || n.Log.Format != "json" {
		t.Errorf("Log = %+v", n.Log)
	}
	if cfg.Log.Level != " DEBUG" {
		t.Error("Normalize must not modify its argument")
	}
	if err := Verify(n); err != nil {
		t.Errorf("Verify(Normalize()) = %v", err)
	}
}
