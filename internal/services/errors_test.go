package services_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/mahmoud-drwsh/VideosProcessor/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrExternalTool, "encode", "audio", "ffmpeg failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"encode", "audio", "ffmpeg failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsToTransient(t *testing.T) {
	err := services.Wrap(nil, "titlegate", "", "", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
}

func TestIsCancellation(t *testing.T) {
	direct := services.Wrap(services.ErrGateCancelled, "titlegate", "confirm", "", nil)
	if !services.IsCancellation(direct) {
		t.Fatalf("expected cancellation for %v", direct)
	}
	wrapped := fmt.Errorf("run: %w", direct)
	if !services.IsCancellation(wrapped) {
		t.Fatalf("expected cancellation for wrapped %v", wrapped)
	}
	if services.IsCancellation(errors.New("other")) {
		t.Fatal("unexpected cancellation for unrelated error")
	}
	if services.IsCancellation(nil) {
		t.Fatal("unexpected cancellation for nil")
	}
}
