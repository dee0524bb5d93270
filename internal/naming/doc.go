// Package naming derives the canonical per-run filename stem and artifact
// paths from the confirmed title and the run date.
//
// All derivations are pure: sanitization of filesystem-reserved characters,
// normalization of human-typed leading dates to a compact YYYYMMDD prefix,
// and the fixed mapping from base name to work-area and destination paths.
// Nothing here touches the filesystem.
package naming
