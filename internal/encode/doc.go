// Package encode sequences the two work-area transcodes of a run: opus
// voice-track extraction and x265 low-resolution compression.
//
// Both sub-stages follow the same skip/exists/execute pattern and report an
// Outcome instead of aborting the run, preserving the best-effort policy:
// a failed encode leaves no output file, and the next run's existence check
// retries it.
package encode
