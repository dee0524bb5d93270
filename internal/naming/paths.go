package naming

import (
	"path/filepath"
	"time"
)

const (
	// AudioExt is the extension of the extracted audio artifact.
	AudioExt = ".opus"
	// VideoExt is the extension of the compressed video artifact.
	VideoExt = ".mp4"
)

// Layout holds the four destination roots every run distributes into.
type Layout struct {
	WorkDir       string
	OriginalsDir  string
	CompressedDir string
	AudioDir      string
}

// Artifacts is the fixed set of output paths for one run, computed once from
// the base name and never mutated afterwards.
type Artifacts struct {
	BaseName string

	// Work-area outputs.
	WorkAudio    string
	WorkVideo    string
	WorkOriginal string

	// Final destinations.
	DatedDir      string
	FinalOriginal string
	FinalAudio    string
	FinalVideo    string
}

// Plan computes every artifact path for a run. sourceExt is the extension of
// the selected recording (including the dot); the dated originals folder is
// named after the run date, not any date embedded in the title.
func (l Layout) Plan(baseName, sourceExt string, today time.Time) Artifacts {
	datedDir := filepath.Join(l.OriginalsDir, today.Format("2006-01-02"))
	return Artifacts{
		BaseName:      baseName,
		WorkAudio:     filepath.Join(l.WorkDir, baseName+AudioExt),
		WorkVideo:     filepath.Join(l.WorkDir, baseName+VideoExt),
		WorkOriginal:  filepath.Join(l.WorkDir, baseName+sourceExt),
		DatedDir:      datedDir,
		FinalOriginal: filepath.Join(datedDir, baseName+sourceExt),
		FinalAudio:    filepath.Join(l.AudioDir, baseName+AudioExt),
		FinalVideo:    filepath.Join(l.CompressedDir, baseName+VideoExt),
	}
}
