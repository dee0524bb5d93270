// Package journal persists a best-effort history of pipeline runs to a
// SQLite database: what was processed, with which flags, and how each encode
// ended.
//
// The journal is observability, not state: the pipeline's idempotence comes
// from artifact existence on disk, and a journal failure never fails a run.
package journal
