package journal

import "time"

// Status is the terminal state of a recorded run.
type Status string

const (
	// StatusRunning marks a run that started but has not finished; a run
	// that crashed keeps this status forever.
	StatusRunning Status = "running"
	// StatusCompleted marks a run that reached the end of the pipeline.
	StatusCompleted Status = "completed"
	// StatusCancelled marks a run the user cancelled at a gate.
	StatusCancelled Status = "cancelled"
	// StatusFailed marks a run aborted by a stage error.
	StatusFailed Status = "failed"
)

// Run is one pipeline execution's journal row.
type Run struct {
	ID           string
	StartedAt    time.Time
	FinishedAt   time.Time
	Title        string
	Artist       string
	BaseName     string
	SourcePath   string
	SkipAudio    bool
	SkipVideo    bool
	DebugMode    bool
	AudioOutcome string
	VideoOutcome string
	Status       Status
}
