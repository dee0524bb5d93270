package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrExternalTool marks failures reported by an external binary (ffmpeg,
	// ffprobe) that the pipeline treats as best-effort.
	ErrExternalTool = errors.New("external tool error")
	// ErrConfiguration marks unusable configuration discovered at run time.
	ErrConfiguration = errors.New("configuration error")
	// ErrNotFound marks a missing file, directory, or binary.
	ErrNotFound = errors.New("not found")
	// ErrTransient marks failures that resolve themselves on re-poll.
	ErrTransient = errors.New("transient failure")
	// ErrGateCancelled marks an explicit user cancellation at a confirmation
	// gate. It terminates the run but is not a failure.
	ErrGateCancelled = errors.New("cancelled by user")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsCancellation reports whether err represents a user-initiated gate
// cancellation, which callers map to a successful exit.
func IsCancellation(err error) bool {
	return errors.Is(err, ErrGateCancelled)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
