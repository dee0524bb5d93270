// Package titlegate blocks a run until the two-line title file is populated
// and a human has confirmed or edited the title/artist pair.
//
// The gate has two states: waiting (fewer than two non-blank lines) and
// confirmed (values approved and rewritten into the file). Waiting combines
// filesystem change notifications with a fixed-interval polling fallback.
// The read-confirm-rewrite handshake runs under an advisory file lock so
// concurrent runs cannot both consume the same title.
package titlegate
