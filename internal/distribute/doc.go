// Package distribute files finished artifacts into their destination trees:
// the original recording under a per-date folder of the originals root, and
// the audio and compressed-video artifacts into their flat roots.
//
// Every copy is idempotent and overwrite-free; an existing destination file
// is treated as proof the step already completed. Timestamps are preserved.
package distribute
