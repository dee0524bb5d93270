// Package pipeline orchestrates one capture session: it waits for the title
// handshake, lets the user pick the recording, waits for the recorder to
// release it, runs the audio and video encodes, and distributes the outputs
// into their destination trees. Stages communicate through paths on disk, so
// any interrupted session can be re-run and only the missing work is redone.
package pipeline
