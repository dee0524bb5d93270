// Package prompt implements the human-facing providers over a terminal:
// title confirmation and recording selection.
package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/mahmoud-drwsh/VideosProcessor/internal/titlegate"
)

// videoExtensions are the recording container formats offered by the picker.
var videoExtensions = map[string]struct{}{
	".mp4": {},
	".mkv": {},
	".mov": {},
	".avi": {},
	".flv": {},
}

// maxListed bounds the picker listing to the newest recordings.
const maxListed = 15

// Terminal implements both external providers — title confirmation and file
// picking — as synchronous prompts over a terminal. Each call blocks until
// the human answers or cancels, matching the call/return contract the
// pipeline expects from any provider implementation.
type Terminal struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewTerminal constructs a provider reading answers from in and writing
// prompts to out.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewScanner(in), out: out}
}

// Confirm presents the tentative record for editing and returns the accepted
// values, or a cancellation when the human declines or input ends.
func (t *Terminal) Confirm(_ context.Context, req titlegate.ConfirmRequest) (titlegate.ConfirmResult, error) {
	fmt.Fprintln(t.out)
	fmt.Fprintln(t.out, "Confirm title before processing:")

	title, ok := t.askString("Title", req.Title)
	if !ok {
		return titlegate.ConfirmResult{}, nil
	}
	artist, ok := t.askString("Artist", req.Artist)
	if !ok {
		return titlegate.ConfirmResult{}, nil
	}
	skipAudio, ok := t.askBool("Skip audio", req.SkipAudio)
	if !ok {
		return titlegate.ConfirmResult{}, nil
	}
	skipVideo, ok := t.askBool("Skip video", req.SkipVideo)
	if !ok {
		return titlegate.ConfirmResult{}, nil
	}
	proceed, ok := t.askBool("Proceed", true)
	if !ok || !proceed {
		return titlegate.ConfirmResult{}, nil
	}

	return titlegate.ConfirmResult{
		Accepted:  true,
		Title:     title,
		Artist:    artist,
		SkipAudio: skipAudio,
		SkipVideo: skipVideo,
	}, nil
}

// Pick lists the newest recordings under initialDir and returns the chosen
// path. Empty input picks the newest; "q" cancels. The bool reports whether
// a file was chosen.
func (t *Terminal) Pick(_ context.Context, initialDir string) (string, bool, error) {
	candidates, err := listRecordings(initialDir)
	if err != nil {
		return "", false, err
	}
	if len(candidates) == 0 {
		fmt.Fprintf(t.out, "No video files found in %s\n", initialDir)
		return "", false, nil
	}

	fmt.Fprintln(t.out)
	fmt.Fprintf(t.out, "Recordings in %s (newest first):\n", initialDir)
	for i, candidate := range candidates {
		fmt.Fprintf(t.out, "  %2d) %s\n", i+1, filepath.Base(candidate))
	}

	for {
		fmt.Fprintf(t.out, "Select recording [1], or q to quit: ")
		if !t.in.Scan() {
			return "", false, nil
		}
		answer := strings.TrimSpace(t.in.Text())
		if answer == "" {
			return candidates[0], true, nil
		}
		if strings.EqualFold(answer, "q") {
			return "", false, nil
		}
		index, err := strconv.Atoi(answer)
		if err == nil && index >= 1 && index <= len(candidates) {
			return candidates[index-1], true, nil
		}
		fmt.Fprintf(t.out, "Enter a number between 1 and %d.\n", len(candidates))
	}
}

// askString prompts with a default; empty input keeps the default. The bool
// is false when input ended (treated as cancellation).
func (t *Terminal) askString(label, current string) (string, bool) {
	fmt.Fprintf(t.out, "%s [%s]: ", label, current)
	if !t.in.Scan() {
		return "", false
	}
	answer := strings.TrimSpace(t.in.Text())
	if answer == "" {
		return current, true
	}
	return answer, true
}

func (t *Terminal) askBool(label string, def bool) (bool, bool) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	for {
		fmt.Fprintf(t.out, "%s [%s]: ", label, hint)
		if !t.in.Scan() {
			return false, false
		}
		switch strings.ToLower(strings.TrimSpace(t.in.Text())) {
		case "":
			return def, true
		case "y", "yes":
			return true, true
		case "n", "no":
			return false, true
		}
		fmt.Fprintln(t.out, "Answer y or n.")
	}
}

func listRecordings(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list recordings: %w", err)
	}

	type candidate struct {
		path    string
		modTime int64
	}
	var found []candidate
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if _, ok := videoExtensions[ext]; !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		found = append(found, candidate{
			path:    filepath.Join(dir, entry.Name()),
			modTime: info.ModTime().UnixNano(),
		})
	}
	sort.Slice(found, func(i, j int) bool { return found[i].modTime > found[j].modTime })
	if len(found) > maxListed {
		found = found[:maxListed]
	}

	paths := make([]string, len(found))
	for i, c := range found {
		paths[i] = c.path
	}
	return paths, nil
}
