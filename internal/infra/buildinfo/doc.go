// Package buildinfo reports the version of the metricsdump binary.
//
// Values are injected at build time via ldflags:
//
//	go build -ldflags "-X github.com/yndnr/metricsdump/internal/infra/buildinfo.Version=v0.3.0"
//
// Commit, build time and Go version fall back to what the Go toolchain
// embedded in the binary when they were not injected.
package buildinfo
