package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		// Signal-driven cancellation already logged its reason.
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintf(os.Stderr, "videosprocessor: %v\n", err)
		}
		os.Exit(1)
	}
}
