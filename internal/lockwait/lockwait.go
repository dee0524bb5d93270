// Package lockwait detects when an external writer (the screen recorder)
// releases its hold on a file.
//
// The recording tool keeps the output open exclusively until recording stops;
// once the handle closes, the file becomes openable for read. Detection is a
// fixed-interval polling loop since recording duration is unbounded.
package lockwait

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"
)

var openFile = os.Open

// DefaultPollInterval matches the recorder check cadence of the workflow.
const DefaultPollInterval = time.Second

// IsLocked reports whether path is still exclusively held by a writer. A
// missing file or a permission failure is a different problem, not a lock,
// and is surfaced as an error.
func IsLocked(path string) (bool, error) {
	f, err := openFile(path)
	if err == nil {
		_ = f.Close()
		return false, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("recording vanished: %w", err)
	}
	if errors.Is(err, fs.ErrPermission) {
		return false, fmt.Errorf("recording unreadable: %w", err)
	}
	return true, nil
}

// WaitUntilUnlocked blocks until path is no longer exclusively held,
// re-checking once per interval. There is no upper bound on the wait; the
// context is the only way out before the writer lets go.
func WaitUntilUnlocked(ctx context.Context, path string, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	for {
		locked, err := IsLocked(path)
		if err != nil {
			return err
		}
		if !locked {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
}
