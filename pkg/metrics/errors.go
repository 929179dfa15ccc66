package metrics

import "errors"

// ErrTypeMismatch is returned when a registry entry is requested under a
// kind different from the one it was registered with.
var ErrTypeMismatch = errors.New("metrics: type mismatch")
