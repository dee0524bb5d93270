// Package logging assembles the structured slog loggers used across the
// pipeline.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes the component-tagging convention the console handler
// promotes into line prefixes. A no-op logger is provided for tests.
//
// Prefer these constructors over hand-rolled slog setup so every stage emits
// lines with the same shape.
package logging
