package dumper

import "errors"

var (
	// ErrClosed is returned by operations on a closed Dumper.
	ErrClosed = errors.New("dumper: closed")

	// ErrInvalidInterval is returned by EnableAutoWrite for a non-positive interval.
	ErrInvalidInterval = errors.New("dumper: interval must be positive")

	// ErrNilRegistry is returned by EnableAutoWrite when no registry is given.
	ErrNilRegistry = errors.New("dumper: nil registry")
)
