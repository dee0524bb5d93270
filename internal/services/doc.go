// Package services defines the shared error taxonomy consumed by the
// pipeline stages and external tool wrappers.
//
// Structured error markers plus the Wrap helper keep failure classification
// uniform: external-tool failures stay best-effort, cancellations exit
// cleanly, and configuration problems abort the run.
package services
