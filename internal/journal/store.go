package journal

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; users clear the journal database after a bump.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match the
// expected version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// Store manages run-history persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the journal database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
		return nil
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s)", ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

// Begin records a new run and returns its identifier.
func (s *Store) Begin(ctx context.Context, skipAudio, skipVideo, debugMode bool) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, skip_audio, skip_video, debug_mode, status)
         VALUES (?, ?, ?, ?, ?, ?)`,
		id, time.Now().UTC().Format(time.RFC3339Nano),
		boolInt(skipAudio), boolInt(skipVideo), boolInt(debugMode), StatusRunning,
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	return id, nil
}

// Describe fills in the details that only become known mid-run: the
// confirmed record, the derived base name, and the chosen source file.
func (s *Store) Describe(ctx context.Context, id, title, artist, baseName, sourcePath string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE runs SET title = ?, artist = ?, base_name = ?, source_path = ? WHERE id = ?`,
		title, artist, baseName, sourcePath, id,
	)
	if err != nil {
		return fmt.Errorf("describe run: %w", err)
	}
	return nil
}

// SetOutcomes records the per-encode outcomes of a run.
func (s *Store) SetOutcomes(ctx context.Context, id, audioOutcome, videoOutcome string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE runs SET audio_outcome = ?, video_outcome = ? WHERE id = ?`,
		audioOutcome, videoOutcome, id,
	)
	if err != nil {
		return fmt.Errorf("set outcomes: %w", err)
	}
	return nil
}

// Finish stamps the terminal status and finish time of a run.
func (s *Store) Finish(ctx context.Context, id string, status Status) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, finished_at = ? WHERE id = ?`,
		status, time.Now().UTC().Format(time.RFC3339Nano), id,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

// Recent returns the newest runs, most recent first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, finished_at, title, artist, base_name, source_path,
                skip_audio, skip_video, debug_mode, audio_outcome, video_outcome, status
         FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run                   Run
			startedAt             string
			finishedAt            sql.NullString
			skip, skipV, debugInt int
			status                string
		)
		if err := rows.Scan(&run.ID, &startedAt, &finishedAt, &run.Title, &run.Artist,
			&run.BaseName, &run.SourcePath, &skip, &skipV, &debugInt,
			&run.AudioOutcome, &run.VideoOutcome, &status); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.StartedAt, _ = time.Parse(time.RFC3339Nano, startedAt)
		if finishedAt.Valid {
			run.FinishedAt, _ = time.Parse(time.RFC3339Nano, finishedAt.String)
		}
		run.SkipAudio = skip != 0
		run.SkipVideo = skipV != 0
		run.DebugMode = debugInt != 0
		run.Status = Status(status)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
