package dumper

import (
	"fmt"
	"io"
	"os"
)

// sink is the file the dumper owns. *os.File implements it; tests swap in
// failing fakes.
type sink interface {
	io.Writer
	io.Seeker
	Truncate(size int64) error
	Sync() error
	Close() error
}

func openSink(path string, mode os.FileMode) (sink, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode)
	if err != nil {
		return nil, fmt.Errorf("open dump file %s: %w", path, err)
	}
	return f, nil
}

// rollback drops everything after offset so a failed write leaves no
// partial line behind.
func rollback(s sink, offset int64) error {
	if err := s.Truncate(offset); err != nil {
		return err
	}
	_, err := s.Seek(offset, io.SeekStart)
	return err
}
