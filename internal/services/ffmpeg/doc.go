// Package ffmpeg wraps the ffmpeg command-line transcoder behind the two
// fixed invocations this pipeline needs: opus voice-track extraction and
// x265 low-resolution compression.
//
// Argument vectors are part of the external contract and built verbatim by
// AudioArgs and VideoArgs; the CLI client adds binary lookup, partial-file
// output with rename-on-success, and error classification.
package ffmpeg
