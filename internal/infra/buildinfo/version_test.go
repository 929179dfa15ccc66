package buildinfo

import (
	"runtime"
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	info := Get()

	if info.Version != Version {
		t.Errorf("Version = %q, want %q", info.Version, Version)
	}
	if info.Commit == "" {
		t.Error("Commit should not be empty")
	}
	if info.BuildTime == "" {
		t.Error("BuildTime should not be empty")
	}
	if GoVersion == "unknown" && info.GoVersion != runtime.Version() {
		t.Errorf("GoVersion = %q, want runtime fallback %q", info.GoVersion, runtime.Version())
	}
}

func TestGet_Injected(t *testing.T) {
	saved := [...]string{Version, Commit, BuildTime, GoVersion}
	t.Cleanup(func() {
		Version, Commit, BuildTime, GoVersion = saved[0], saved[1], saved[2], saved[3]
	})

	Version, Commit, BuildTime, GoVersion = "v1.2.3", "abc123", "2024-05-01T12:00:00Z", "go1.24.4"

	want := Info{Version: "v1.2.3", Commit: "abc123", BuildTime: "2024-05-01T12:00:00Z", GoVersion: "go1.24.4"}
	if got := Get(); got != want {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}
	if got := String(); got != "v1.2.3 (abc123) built at 2024-05-01T12:00:00Z with go1.24.4" {
		t.Errorf("String() = %q", got)
	}
}

func TestShortCommit(t *testing.T) {
	tests := map[string]string{
		"":                     "",
		"abc":                  "abc",
		strings.Repeat("a", 40): strings.Repeat("a", 12),
	}
	for in, want := range tests {
		if got := shortCommit(in); got != want {
			t.Errorf("shortCommit(%q) = %q, want %q", in, got, want)
		}
	}
}
